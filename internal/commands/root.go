package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/app"
	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/output"
)

// buildVersion is the version passed to Execute; it tags the User-Agent.
var buildVersion = "dev"

// logLevel backs the default slog handler so --debug can lower it after flags parse.
var logLevel = new(slog.LevelVar)

// Execute runs the CLI application.
func Execute(version string) error {
	buildVersion = version
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	root := NewRootCmd(version)
	err := root.Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "shelf",
		Short:         "Admin console for the book and author catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintWith(jsonOut(cmd), output.Success(resp{Version: version}))
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logLevel.Set(slog.LevelDebug)
			}
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}

			// Wire --host into the app-level resolver.
			if host, err := cmd.Flags().GetString("host"); err == nil && host != "" {
				app.SetHostOverride(host)
			}
			return nil
		},
	}

	root.PersistentFlags().String("host", "", "Catalog API base URL (default: $SHELF_HOST, config.yaml, then http://127.0.0.1:5000/)")
	root.PersistentFlags().String("format", "", "Output format: json|text")
	enumFlag(root.PersistentFlags(), "format", app.FormatJSON, app.FormatText)
	root.PersistentFlags().String("request-id", "", "Correlation id sent as X-Request-ID (default: $SHELF_REQUEST_ID, else generated)")
	root.PersistentFlags().Bool("debug", false, "Log request lifecycle to stderr")
	root.Flags().BoolP("version", "v", false, "version for shelf")

	for _, kind := range models.Kinds() {
		root.AddCommand(NewResourceCmd(kind))
	}
	root.AddCommand(NewSearchCmd())
	root.AddCommand(markMutating(NewScrapeCmd()))
	root.AddCommand(NewRankCmd())
	root.AddCommand(NewStatusCmd())
	root.AddCommand(NewSchemaCmd(root))
	return root
}
