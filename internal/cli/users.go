package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sportify-admin/internal/api"
	"sportify-admin/internal/model"
)

func newUsersCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage user accounts",
	}

	cmd.AddCommand(
		newUsersListCommand(rt),
		newUsersGetCommand(rt),
		newUsersStatsCommand(rt),
		newUsersCreateCommand(rt),
		newUsersUpdateCommand(rt),
		newUsersResetPasswordCommand(rt),
		newUsersActionCommand("suspend", "Suspend a user", rt.suspendUser),
		newUsersActionCommand("activate", "Reactivate a suspended user", rt.activateUser),
		newUsersDeleteCommand(rt),
		newUsersActionCommand("restore", "Restore a soft-deleted user", rt.restoreUser),
		newUsersAssignRolesCommand(rt),
	)
	return cmd
}

func userRow(u model.User) []string {
	status := u.Status
	if status == "" {
		status = strconv.FormatBool(u.IsActive)
	}
	return []string{u.ID, u.Email, orDash(u.DisplayName()), u.Role, orDash(status)}
}

var userHeaders = []string{"ID", "EMAIL", "NAME", "ROLE", "STATUS"}

func newUsersListCommand(rt *runtime) *cobra.Command {
	var deleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := api.UserFilters{
				Page:   intFlag(cmd, "page"),
				Limit:  intFlag(cmd, "limit"),
				Search: stringFlag(cmd, "search"),
				Role:   stringFlag(cmd, "role"),
				Status: stringFlag(cmd, "status"),
			}

			users := rt.stack.API.Users
			list := users.List
			if deleted {
				list = users.ListDeleted
			}

			page, err := list(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page, userHeaders, userRow)
		},
	}

	addPageFlags(cmd)
	cmd.Flags().String("search", "", "Search by name or email")
	cmd.Flags().String("role", "", "Filter by role")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "List soft-deleted users")
	return cmd
}

func newUsersGetCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}
}

func newUsersStatsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show workout statistics for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Users.Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}
}

func newUsersCreateCommand(rt *runtime) *cobra.Command {
	var payload model.CreateUserPayload

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if payload.Email == "" {
				return fmt.Errorf("--email is required")
			}
			payload.SendInvitation = boolFlag(cmd, "invite")

			envelope, err := rt.stack.API.Users.Create(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}

	cmd.Flags().StringVar(&payload.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&payload.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&payload.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&payload.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&payload.Role, "role", "", "Role (default user)")
	cmd.Flags().Bool("invite", false, "Send an invitation email")
	return cmd
}

func newUsersUpdateCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := model.UpdateUserPayload{
				Email:     stringFlag(cmd, "email"),
				FirstName: stringFlag(cmd, "first-name"),
				LastName:  stringFlag(cmd, "last-name"),
				Role:      stringFlag(cmd, "role"),
				IsActive:  boolFlag(cmd, "active"),
			}

			envelope, err := rt.stack.API.Users.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}

	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("role", "", "Role")
	cmd.Flags().Bool("active", true, "Active flag")
	return cmd
}

func newUsersResetPasswordCommand(rt *runtime) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password <id>",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			envelope, err := rt.stack.API.Users.ResetPassword(cmd.Context(), args[0], model.ResetPasswordPayload{NewPassword: password})
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}

type userAction func(cmd *cobra.Command, id string) error

func (rt *runtime) suspendUser(cmd *cobra.Command, id string) error {
	envelope, err := rt.stack.API.Users.Suspend(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printResult(rt, cmd.OutOrStdout(), envelope)
}

func (rt *runtime) activateUser(cmd *cobra.Command, id string) error {
	envelope, err := rt.stack.API.Users.Activate(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printResult(rt, cmd.OutOrStdout(), envelope)
}

func (rt *runtime) restoreUser(cmd *cobra.Command, id string) error {
	envelope, err := rt.stack.API.Users.Restore(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printResult(rt, cmd.OutOrStdout(), envelope)
}

func newUsersActionCommand(use string, short string, action userAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cmd, args[0])
		},
	}
}

func newUsersDeleteCommand(rt *runtime) *cobra.Command {
	var permanent bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user (soft by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users := rt.stack.API.Users
			remove := users.Delete
			if permanent {
				remove = users.DeletePermanently
			}

			envelope, err := remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if envelope.Message == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
				return nil
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}

	cmd.Flags().BoolVar(&permanent, "permanent", false, "Delete irreversibly")
	return cmd
}

func newUsersAssignRolesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "assign-roles <id> <role>...",
		Short: "Replace the roles of a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := make([]string, 0, len(args)-1)
			for _, role := range args[1:] {
				roles = append(roles, strings.TrimSpace(role))
			}

			envelope, err := rt.stack.API.Users.AssignRoles(cmd.Context(), args[0], model.AssignRolesPayload{RoleNames: roles})
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
}
