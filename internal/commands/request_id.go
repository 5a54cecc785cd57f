package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// resolveRequestID returns --request-id, then $SHELF_REQUEST_ID. Empty means
// the reporter generates one.
func resolveRequestID(cmd *cobra.Command) string {
	if v, err := cmd.Flags().GetString("request-id"); err == nil && v != "" {
		return v
	}
	return os.Getenv("SHELF_REQUEST_ID")
}
