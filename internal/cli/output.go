package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sportify-admin/internal/model"
	"sportify-admin/pkg/apierror"
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// printPage renders a list as a table plus a pagination footer, or as the
// normalized page in JSON mode.
func printPage[T any](rt *runtime, w io.Writer, page model.Page[T], headers []string, row func(T) []string) error {
	if rt.output == outputJSON {
		return printJSON(w, page)
	}

	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, row(item))
	}
	if err := printTable(w, headers, rows); err != nil {
		return err
	}

	p := page.Pagination
	if p.TotalPages > 0 {
		fmt.Fprintf(w, "\npage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
	return nil
}

// printResult prints the data of a detail or mutation envelope. In table
// mode a backend message, when present, is printed instead of the data.
func printResult[T any](rt *runtime, w io.Writer, envelope *model.Envelope[T]) error {
	if rt.output == outputTable && envelope.Message != "" {
		_, err := fmt.Fprintln(w, envelope.Message)
		return err
	}
	return printJSON(w, envelope.Data)
}

func describe(err error) string {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	message := fmt.Sprintf("%s (%s", apiErr.Message, apiErr.Code)
	if apiErr.StatusCode != 0 {
		message += fmt.Sprintf(", HTTP %d", apiErr.StatusCode)
	}
	message += ")"
	if apiErr.Details != nil {
		if detail, jsonErr := json.Marshal(apiErr.Details); jsonErr == nil {
			message += ": " + string(detail)
		}
	}
	return message
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
