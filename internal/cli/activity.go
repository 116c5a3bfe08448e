package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sportify-admin/internal/api"
	"sportify-admin/internal/model"
)

func newNotificationsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification"},
		Short:   "Read admin notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := rt.stack.API.Notifications.List(cmd.Context(), api.NotificationFilters{
				Page:   intFlag(cmd, "page"),
				Limit:  intFlag(cmd, "limit"),
				Status: stringFlag(cmd, "status"),
			})
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page,
				[]string{"ID", "TYPE", "TITLE", "STATUS", "CREATED"},
				func(n model.Notification) []string {
					return []string{n.ID, n.Type, n.Title, n.Status, n.CreatedAt}
				})
		},
	}
	addPageFlags(list)
	list.Flags().String("status", "", "Filter by status (read, unread)")

	read := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rt.stack.API.Notifications.MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", args[0])
			return nil
		},
	}

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := rt.stack.API.Notifications.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked all notifications as read")
			return nil
		},
	}

	cmd.AddCommand(list, read, readAll)
	return cmd
}

func newAuditLogsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audit-logs",
		Aliases: []string{"audit"},
		Short:   "Search the audit trail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := rt.stack.API.AuditLogs.List(cmd.Context(), api.AuditLogFilters{
				Page:      intFlag(cmd, "page"),
				Limit:     intFlag(cmd, "limit"),
				UserID:    stringFlag(cmd, "user"),
				Action:    stringFlag(cmd, "action"),
				Resource:  stringFlag(cmd, "resource"),
				StartDate: stringFlag(cmd, "from"),
				EndDate:   stringFlag(cmd, "to"),
			})
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page,
				[]string{"TIME", "USER", "ACTION", "RESOURCE", "RESOURCE ID"},
				func(l model.AuditLog) []string {
					return []string{l.CreatedAt, orDash(l.UserName), l.Action, l.Resource, orDash(l.ResourceID)}
				})
		},
	}

	addPageFlags(cmd)
	addDateRangeFlags(cmd)
	cmd.Flags().String("user", "", "Filter by user ID")
	cmd.Flags().String("action", "", "Filter by action")
	cmd.Flags().String("resource", "", "Filter by resource")
	return cmd
}

func newAnalyticsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show platform analytics",
	}

	filters := func(cmd *cobra.Command) api.AnalyticsFilters {
		return api.AnalyticsFilters{
			StartDate: stringFlag(cmd, "from"),
			EndDate:   stringFlag(cmd, "to"),
		}
	}

	overview := &cobra.Command{
		Use:   "overview",
		Short: "Headline numbers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envelope, err := rt.stack.API.Analytics.Overview(cmd.Context(), filters(cmd))
			if err != nil {
				return err
			}
			if rt.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), envelope.Data)
			}

			o := envelope.Data
			return printTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, [][]string{
				{"total users", fmt.Sprint(o.TotalUsers)},
				{"active users", fmt.Sprint(o.ActiveUsers)},
				{"total exercises", fmt.Sprint(o.TotalExercises)},
				{"total workouts", fmt.Sprint(o.TotalWorkouts)},
				{"user growth", fmt.Sprintf("%.1f%%", o.UserGrowth.Growth)},
			})
		},
	}
	addDateRangeFlags(overview)

	charts := &cobra.Command{
		Use:   "charts",
		Short: "Chart series as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envelope, err := rt.stack.API.Analytics.Charts(cmd.Context(), filters(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}
	addDateRangeFlags(charts)

	cmd.AddCommand(overview, charts)
	return cmd
}
