package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
	"github.com/dotcommander/shelf/internal/app"
	"github.com/dotcommander/shelf/internal/reporter"
	"github.com/dotcommander/shelf/internal/render"
)

type statusResult struct {
	Version    string          `json:"version"`
	Host       string          `json:"host"`
	HostSource string          `json:"host_source"`
	Routes     reporter.Routes `json:"routes"`
	Format     string          `json:"format"`
	RankTopK   int             `json:"rank_top_k"`
	ConfigDir  string          `json:"config_dir"`
}

// NewStatusCmd creates the status command, which reports the effective configuration.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective catalog endpoints and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			res, err := collectStatus(format)
			if err != nil {
				return fail(cmd, format, err, nil)
			}
			return emit(cmd, format, res, func() (string, error) {
				return render.Summary("shelf "+res.Version, [][2]string{
					{"host", res.Host},
					{"host source", res.HostSource},
					{"book route", res.Routes.Book},
					{"author route", res.Routes.Author},
					{"books route", res.Routes.Books},
					{"authors route", res.Routes.Authors},
					{"search route", res.Routes.Search},
					{"scrape route", res.Routes.Scrape},
					{"format", res.Format},
					{"rank top k", strconv.Itoa(res.RankTopK)},
					{"config dir", res.ConfigDir},
				}), nil
			})
		},
	}
}

func collectStatus(format string) (statusResult, error) {
	host, source, err := app.ResolveHostDetailed()
	if err != nil {
		return statusResult{}, err
	}
	cfg, err := app.ReporterConfig()
	if err != nil {
		return statusResult{}, err
	}
	topK, err := app.RankTopK(actions.DefaultTopK)
	if err != nil {
		return statusResult{}, err
	}
	dir, err := app.ConfigDir()
	if err != nil {
		return statusResult{}, err
	}
	return statusResult{
		Version:    buildVersion,
		Host:       host,
		HostSource: source,
		Routes:     cfg.Routes,
		Format:     format,
		RankTopK:   topK,
		ConfigDir:  dir,
	}, nil
}
