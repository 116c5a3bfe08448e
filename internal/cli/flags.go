package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Filter flags become pointers only when the user set them, so an explicit
// --page 0 is still sent and an absent flag is omitted.

func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &value
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &value
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("limit", 0, "Page size")
}

func addDateRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
}

// readPayload decodes a JSON document from path, or stdin when path is "-".
func readPayload(cmd *cobra.Command, path string, into any) error {
	var source io.Reader
	if path == "-" {
		source = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open payload: %w", err)
		}
		defer file.Close()
		source = file
	}

	if err := json.NewDecoder(source).Decode(into); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
