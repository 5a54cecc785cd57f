package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
	"github.com/dotcommander/shelf/internal/app"
	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/render"
)

type rankResult struct {
	Kind    models.ResourceKind `json:"kind"`
	TopK    int                 `json:"top_k"`
	Records []models.Record     `json:"records"`
	Charts  []string            `json:"charts,omitempty"`
}

// NewRankCmd creates the rank command.
func NewRankCmd() *cobra.Command {
	var (
		top     int
		pngPath string
		svgPath string
	)
	cmd := &cobra.Command{
		Use:       "rank <book|author>",
		Short:     "Chart the highest-rated books or authors",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{models.KindBook.String(), models.KindAuthor.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			if len(args) != 1 {
				return s.invalid(&actions.ValidationError{Field: "kind", Reason: "expected book or author"})
			}
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return s.invalid(&actions.ValidationError{Field: "kind", Reason: err.Error()})
			}
			topK := top
			if topK == 0 {
				if topK, err = app.RankTopK(actions.DefaultTopK); err != nil {
					return s.invalid(err)
				}
			}
			op, err := actions.Rank(s.routes, kind, topK)
			if err != nil {
				return s.invalid(err)
			}

			res, err := s.send(op)
			if err != nil {
				return err
			}
			result := rankResult{Kind: kind, TopK: topK, Records: actions.TopRated(kind, res.Payload, topK)}
			for _, c := range []struct {
				path   string
				format render.ChartFormat
			}{{pngPath, render.ChartPNG}, {svgPath, render.ChartSVG}} {
				if c.path == "" {
					continue
				}
				if err := writeChartFile(c.path, c.format, kind, result.Records); err != nil {
					return fail(cmd, s.format, err, nil)
				}
				result.Charts = append(result.Charts, c.path)
			}
			return emit(cmd, s.format, result, func() (string, error) {
				return render.Ranking(kind, result.Records), nil
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, fmt.Sprintf("Number of records to chart, %d-%d (default: $SHELF_RANK_TOP_K, config.yaml, then %d)", actions.MinTopK, actions.MaxTopK, actions.DefaultTopK))
	cmd.Flags().StringVar(&pngPath, "png", "", "Also write the chart as a PNG image to this path")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Also write the chart as an SVG image to this path")
	return cmd
}

func writeChartFile(path string, format render.ChartFormat, kind models.ResourceKind, records []models.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := render.WriteChart(f, format, kind, records); err != nil {
		return fmt.Errorf("write %s chart: %w", format, err)
	}
	return nil
}
