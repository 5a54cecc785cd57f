package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/shelf/internal/actions"
	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/render"
	"github.com/dotcommander/shelf/internal/reporter"
)

// NewResourceCmd creates the command group for one resource kind ("book" or "author").
func NewResourceCmd(kind models.ResourceKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Manage %s records", kind),
	}

	cmd.AddCommand(newResourceGetCmd(kind))
	cmd.AddCommand(markMutating(newResourceCreateCmd(kind)))
	cmd.AddCommand(markMutating(newResourceUploadCmd(kind)))
	cmd.AddCommand(markMutating(newResourceUpdateCmd(kind)))
	cmd.AddCommand(markMutating(newResourceDeleteCmd(kind)))
	return cmd
}

func newResourceGetCmd(kind models.ResourceKind) *cobra.Command {
	var (
		id   string
		page int
	)
	cmd := &cobra.Command{
		Use:   "get",
		Short: fmt.Sprintf("Fetch a %s by _id", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			op, err := actions.Lookup(s.routes, kind, id)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, recordsView(kind, page))
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record _id (required)")
	requiredFlag(cmd.Flags(), "id")
	cmd.Flags().IntVar(&page, "page", 0, "Show only the Nth record of the result (1-based)")
	return cmd
}

func newResourceCreateCmd(kind models.ResourceKind) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create one %s from attribute values", kind),
		Long: fmt.Sprintf("Create one %s. Pass --field name=value once per attribute; _id is required.\n"+
			"Unset attributes are sent as null. List attributes take a JSON array.\n\nAttributes: %s",
			kind, strings.Join(kind.Attrs(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			form, err := parseFields(fields)
			if err != nil {
				return s.invalid(err)
			}
			op, err := actions.Create(s.routes, kind, form)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, nil)
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Attribute value as name=value (repeatable)")
	return cmd
}

// parseFields splits name=value pairs. A name given twice keeps the last value.
func parseFields(pairs []string) (map[string]string, error) {
	form := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &actions.ValidationError{Field: "field", Reason: fmt.Sprintf("expected name=value, got %q", p)}
		}
		form[name] = value
	}
	return form, nil
}

func newResourceUploadCmd(kind models.ResourceKind) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "upload",
		Short: fmt.Sprintf("Create %s from a JSON file (object or array)", kind.Plural()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(file) == "" {
				return s.invalid(&actions.ValidationError{Field: "file", Reason: "a JSON file is required"})
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return s.invalid(&actions.ValidationError{Field: "file", Reason: err.Error()})
			}
			records, err := actions.DecodeRecords(data)
			if err != nil {
				return s.invalid(err)
			}
			op, err := actions.Upload(s.routes, kind, records)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, nil)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to a JSON file (required)")
	requiredFlag(cmd.Flags(), "file")
	return cmd
}

func newResourceUpdateCmd(kind models.ResourceKind) *cobra.Command {
	var (
		id  string
		set string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: fmt.Sprintf("Update attributes of a %s", kind),
		Long: fmt.Sprintf("Update a %s. --set takes a JSON object of attributes to change, e.g.\n"+
			"  shelf %s update --id 3735293 --set '{\"rating_value\": 4.4}'\nThe _id itself cannot be changed.", kind, kind),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			op, err := actions.Update(s.routes, kind, id, set)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, nil)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record _id (required)")
	requiredFlag(cmd.Flags(), "id")
	cmd.Flags().StringVar(&set, "set", "", "JSON object of attributes to change (required)")
	requiredFlag(cmd.Flags(), "set")
	return cmd
}

func newResourceDeleteCmd(kind models.ResourceKind) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: fmt.Sprintf("Remove a %s by _id", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := begin(cmd)
			if err != nil {
				return err
			}
			op, err := actions.Delete(s.routes, kind, id)
			if err != nil {
				return s.invalid(err)
			}
			return s.run(op, nil)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record _id (required)")
	requiredFlag(cmd.Flags(), "id")
	return cmd
}

// recordsView renders a lookup or search payload as records of kind.
func recordsView(kind models.ResourceKind, page int) func(*reporter.Success) (string, error) {
	return func(res *reporter.Success) (string, error) {
		return render.Records(models.RecordsFromPayload(kind, res.Payload), page)
	}
}
