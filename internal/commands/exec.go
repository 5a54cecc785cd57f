package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
	"github.com/dotcommander/shelf/internal/app"
	"github.com/dotcommander/shelf/internal/output"
	"github.com/dotcommander/shelf/internal/render"
	"github.com/dotcommander/shelf/internal/reporter"
)

type printedError struct {
	err error
}

func (e printedError) Error() string {
	// Intentionally hide the original error: the printed response is the output.
	return "error already printed"
}

func (e printedError) Unwrap() error { return e.err }

func cmdErr(err error) error {
	if err == nil {
		return nil
	}
	attrs := []any{"error", err.Error()}
	var re interface{ ErrorCode() string }
	if errors.As(err, &re) {
		attrs = append(attrs, "error_code", re.ErrorCode())
	}
	slog.Error("command error", attrs...)
	return printedError{err: err}
}

// outputFormat resolves --format against SHELF_FORMAT and config.yaml. When
// no format can be resolved the error is printed as a JSON envelope.
func outputFormat(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString("format")
	format, err := app.ResolveFormat(flag)
	if err != nil {
		return "", fail(cmd, app.FormatJSON, err, nil)
	}
	return format, nil
}

// jsonOut writes to the command's stdout, indented when SHELF_PRETTY_JSON is set.
func jsonOut(cmd *cobra.Command) output.Config {
	cfg := output.Config{Writer: cmd.OutOrStdout()}
	if e, err := app.LoadEnv(); err == nil {
		cfg.Pretty = e.PrettyJSON
	}
	return cfg
}

// fail prints err in the requested format, logs it, and returns printedError.
// data, when non-nil, rides along in the JSON envelope.
func fail(cmd *cobra.Command, format string, err error, data any) error {
	if format == app.FormatText {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), failureView(err))
	} else {
		_ = output.PrintWith(jsonOut(cmd), output.ErrorWithData(err, data))
	}
	return cmdErr(err)
}

func failureView(err error) string {
	var se *reporter.StatusError
	if errors.As(err, &se) {
		return render.Failure(se.Failure)
	}
	var ve *actions.ValidationError
	if errors.As(err, &ve) {
		return render.Invalid(err)
	}
	return render.Error(err)
}

// emit prints data as a success envelope, or the text view for --format text.
func emit(cmd *cobra.Command, format string, data any, text func() (string, error)) error {
	if format != app.FormatText {
		return output.PrintWith(jsonOut(cmd), output.Success(data))
	}
	view, err := text()
	if err != nil {
		return fail(cmd, format, err, nil)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), view)
	return err
}

// newReporter builds a reporter from the resolved host and route configuration.
func newReporter() (*reporter.Reporter, error) {
	cfg, err := app.ReporterConfig()
	if err != nil {
		return nil, err
	}
	cfg.UserAgent = "shelf/" + buildVersion
	return reporter.New(cfg, nil, reporter.WithLogger(slog.Default()))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// submission is one form submit: build the operation, send it, show the outcome.
type submission struct {
	cmd    *cobra.Command
	format string
	routes reporter.Routes
	rep    *reporter.Reporter
}

// begin resolves the output format and reporter. Errors are already printed.
func begin(cmd *cobra.Command) (*submission, error) {
	format, err := outputFormat(cmd)
	if err != nil {
		return nil, err
	}
	rep, err := newReporter()
	if err != nil {
		return nil, fail(cmd, format, err, nil)
	}
	return &submission{cmd: cmd, format: format, routes: rep.Routes(), rep: rep}, nil
}

// invalid reports a validation error without sending anything.
func (s *submission) invalid(err error) error {
	return fail(s.cmd, s.format, err, nil)
}

// send executes op once. A Failure is printed and returned as printedError.
func (s *submission) send(op reporter.Operation) (*reporter.Success, error) {
	op.RequestID = resolveRequestID(s.cmd)
	switch o := s.rep.Execute(commandContext(s.cmd), op).(type) {
	case *reporter.Success:
		return o, nil
	case *reporter.Failure:
		return nil, fail(s.cmd, s.format, reporter.AsError(o), o)
	default:
		return nil, cmdErr(fmt.Errorf("unexpected outcome %T", o))
	}
}

// run sends op and prints the success view: the description for writes, or
// view's rendering of the payload when view is non-nil.
func (s *submission) run(op reporter.Operation, view func(*reporter.Success) (string, error)) error {
	res, err := s.send(op)
	if err != nil {
		return err
	}
	return emit(s.cmd, s.format, res, func() (string, error) {
		if view == nil {
			return render.Success(res), nil
		}
		return view(res)
	})
}
