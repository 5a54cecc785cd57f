package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dotcommander/shelf/internal/output"
)

// mutatesAnnotation marks commands that change catalog data.
const mutatesAnnotation = "shelf/mutates"

func markMutating(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[mutatesAnnotation] = "true"
	return cmd
}

// NewSchemaCmd creates the schema command. root is used to collect command schemas.
func NewSchemaCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect command schemas for scripting",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newSchemaCommandsCmd(root))
	return cmd
}

func newSchemaCommandsCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Show command argument schemas with mutation hints",
		RunE: func(cmd *cobra.Command, args []string) error {
			type resp struct {
				Commands []commandArgSchema `json:"commands"`
			}
			schemas := make([]commandArgSchema, 0)
			collectCommandSchemas(root, &schemas)
			return output.PrintWith(jsonOut(cmd), output.Success(resp{Commands: schemas}))
		},
	}
}

type commandArgSchema struct {
	Command     string         `json:"command"`
	Description string         `json:"description,omitempty"`
	Mutates     bool           `json:"mutates"`
	ArgsSchema  map[string]any `json:"args_schema"`
}

// collectCommandSchemas walks the tree depth-first, skipping the root, the
// schema command, hidden commands and pure groups.
func collectCommandSchemas(cmd *cobra.Command, out *[]commandArgSchema) {
	if cmd.HasParent() && cmd.Name() != "schema" && !cmd.Hidden && cmd.Runnable() {
		*out = append(*out, buildCommandSchema(cmd))
	}
	if cmd.Name() == "schema" {
		return
	}
	for _, child := range cmd.Commands() {
		collectCommandSchemas(child, out)
	}
}

func buildCommandSchema(cmd *cobra.Command) commandArgSchema {
	properties := map[string]any{}
	required := make([]string, 0)

	addFlag := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if _, ok := properties[f.Name]; ok {
			return
		}
		properties[f.Name] = flagSchema(f)
		if flagAnnotated(f, requiredAnnotation) {
			required = append(required, f.Name)
		}
	}
	cmd.InheritedFlags().VisitAll(addFlag)
	cmd.NonInheritedFlags().VisitAll(addFlag)

	argsSchema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		argsSchema["required"] = required
	}
	return commandArgSchema{
		Command:     cmd.CommandPath(),
		Description: cmd.Short,
		Mutates:     cmd.Annotations[mutatesAnnotation] == "true",
		ArgsSchema:  argsSchema,
	}
}

// Flag annotations read by the schema. Commands still check these themselves
// so that a missing value comes back as a validation envelope.
const (
	requiredAnnotation = "shelf/required"
	enumAnnotation     = "shelf/enum"
)

func requiredFlag(fs *pflag.FlagSet, name string) {
	_ = fs.SetAnnotation(name, requiredAnnotation, []string{"true"})
}

func enumFlag(fs *pflag.FlagSet, name string, values ...string) {
	_ = fs.SetAnnotation(name, enumAnnotation, values)
}

func flagAnnotated(f *pflag.Flag, key string) bool {
	vals, ok := f.Annotations[key]
	return ok && len(vals) > 0
}

// schemaTypes maps the pflag value types shelf declares to JSON schema types.
var schemaTypes = map[string]string{
	"int":         "integer",
	"bool":        "boolean",
	"stringArray": "array",
}

func flagSchema(f *pflag.Flag) map[string]any {
	typ, ok := schemaTypes[f.Value.Type()]
	if !ok {
		typ = "string"
	}
	out := map[string]any{
		"type":        typ,
		"description": f.Usage,
	}
	if def, ok := flagDefault(typ, f.DefValue); ok {
		out["default"] = def
	}
	if flagAnnotated(f, enumAnnotation) {
		out["enum"] = f.Annotations[enumAnnotation]
	}
	return out
}

// flagDefault converts a flag's printed default to its schema type. Empty
// strings and empty arrays have no default.
func flagDefault(typ, raw string) (any, bool) {
	switch typ {
	case "integer":
		n, err := strconv.Atoi(raw)
		return n, err == nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		return b, err == nil
	case "array":
		return nil, false
	default:
		return raw, raw != ""
	}
}
