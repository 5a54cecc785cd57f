package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
	"github.com/dotcommander/shelf/internal/query"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var (
		q     string
		unit1 string
		logic string
		unit2 string
		page  int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search books or authors with the catalog query language",
		Long: `Search the catalog. Give a whole query with --query, or build one from parts:

  shelf search --query 'book.rating_value : > 4.6'
  shelf search --unit1 'author.author_name : "Robert C. Martin"' --logic OR --unit2 'author.rating_value : > 4.5'

A unit is <book|author>.<attribute> : [>|<|NOT] <value>. Exact and NOT values are double-quoted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			text, err := searchText(q, unit1, logic, unit2)
			if err != nil {
				return s.invalid(err)
			}
			op, parsed, err := actions.Search(s.routes, text)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, recordsView(parsed.Kind(), page))
		},
	}
	cmd.Flags().StringVar(&q, "query", "", "Full query string")
	cmd.Flags().StringVar(&unit1, "unit1", "", "First query unit")
	cmd.Flags().StringVar(&logic, "logic", "", "Logic joining the units: AND|OR")
	enumFlag(cmd.Flags(), "logic", string(query.LogicAnd), string(query.LogicOr))
	cmd.Flags().StringVar(&unit2, "unit2", "", "Second query unit")
	cmd.Flags().IntVar(&page, "page", 0, "Show only the Nth result (1-based)")
	return cmd
}

// searchText picks --query or composes the unit flags; giving both is an error.
func searchText(q, unit1, logic, unit2 string) (string, error) {
	parts := strings.TrimSpace(unit1 + logic + unit2)
	switch {
	case strings.TrimSpace(q) != "" && parts != "":
		return "", &actions.ValidationError{Field: "query", Reason: "use --query or --unit1/--logic/--unit2, not both"}
	case strings.TrimSpace(q) != "":
		return q, nil
	}
	text, err := query.Compose(unit1, query.Logic(strings.ToUpper(strings.TrimSpace(logic))), unit2)
	if err != nil {
		return "", &actions.ValidationError{Field: "query", Reason: err.Error()}
	}
	return text, nil
}
