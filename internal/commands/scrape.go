package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	var req actions.ScrapeRequest
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Ask the catalog API to scrape new books and authors from goodreads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			op, err := actions.Scrape(s.routes, req)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, nil)
		},
	}
	cmd.Flags().IntVar(&req.MaxBook, "max-book", 0, "Maximum number of books to scrape (0-2000)")
	cmd.Flags().IntVar(&req.MaxAuthor, "max-author", 0, "Maximum number of authors to scrape (0-2000)")
	cmd.Flags().StringVar(&req.StartURL, "start-url", "", "Goodreads book page to start from (required)")
	requiredFlag(cmd.Flags(), "start-url")
	return cmd
}
