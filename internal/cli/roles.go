package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sportify-admin/internal/model"
)

func newRolesCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Manage roles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := rt.stack.API.Roles.List(cmd.Context())
			if err != nil {
				return err
			}
			return printPage(rt, cmd.OutOrStdout(), page,
				[]string{"ID", "NAME", "SYSTEM", "PERMISSIONS"},
				func(r model.Role) []string {
					return []string{r.ID, r.Name, strconv.FormatBool(r.IsSystem), strconv.Itoa(len(r.Permissions))}
				})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one role with its permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Roles.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), envelope.Data)
		},
	}

	var createPayload model.CreateRolePayload
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if createPayload.Name == "" {
				return fmt.Errorf("--name is required")
			}
			envelope, err := rt.stack.API.Roles.Create(cmd.Context(), createPayload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	create.Flags().StringVar(&createPayload.Name, "name", "", "Role name")
	create.Flags().StringVar(&createPayload.Description, "description", "", "Description")
	create.Flags().StringSliceVar(&createPayload.PermissionNames, "permission", nil, "Permission name (repeatable)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := model.UpdateRolePayload{
				Name:        stringFlag(cmd, "name"),
				Description: stringFlag(cmd, "description"),
			}
			if cmd.Flags().Changed("permission") {
				names, err := cmd.Flags().GetStringSlice("permission")
				if err != nil {
					return err
				}
				payload.PermissionNames = names
			}

			envelope, err := rt.stack.API.Roles.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	update.Flags().String("name", "", "Role name")
	update.Flags().String("description", "", "Description")
	update.Flags().StringSlice("permission", nil, "Permission name (repeatable, replaces the set)")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rt.stack.API.Roles.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted role %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}

func newPermissionsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permissions",
		Aliases: []string{"permission"},
		Short:   "Manage permissions",
	}

	var grouped bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List permissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !grouped {
				page, err := rt.stack.API.Roles.Permissions(cmd.Context())
				if err != nil {
					return err
				}
				return printPage(rt, out, page,
					[]string{"ID", "NAME", "RESOURCE", "ACTION"},
					func(p model.Permission) []string {
						return []string{p.ID, p.Name, p.Resource, p.Action}
					})
			}

			envelope, err := rt.stack.API.Roles.GroupedPermissions(cmd.Context())
			if err != nil {
				return err
			}
			if rt.output == outputJSON {
				return printJSON(out, envelope.Data)
			}

			resources := make([]string, 0, len(envelope.Data))
			for resource := range envelope.Data {
				resources = append(resources, resource)
			}
			sort.Strings(resources)

			rows := make([][]string, 0, len(resources))
			for _, resource := range resources {
				actions := make([]string, 0, len(envelope.Data[resource]))
				for _, permission := range envelope.Data[resource] {
					actions = append(actions, permission.Action)
				}
				rows = append(rows, []string{resource, strings.Join(actions, ", ")})
			}
			return printTable(out, []string{"RESOURCE", "ACTIONS"}, rows)
		},
	}
	list.Flags().BoolVar(&grouped, "grouped", false, "Group by resource")

	var createPayload model.CreatePermissionPayload
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a permission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if createPayload.Resource == "" || createPayload.Action == "" {
				return fmt.Errorf("--resource and --action are required")
			}
			if createPayload.Name == "" {
				createPayload.Name = createPayload.Resource + ":" + createPayload.Action
			}
			envelope, err := rt.stack.API.Roles.CreatePermission(cmd.Context(), createPayload)
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	create.Flags().StringVar(&createPayload.Name, "name", "", "Permission name (default resource:action)")
	create.Flags().StringVar(&createPayload.Resource, "resource", "", "Resource")
	create.Flags().StringVar(&createPayload.Action, "action", "", "Action")
	create.Flags().StringVar(&createPayload.Description, "description", "", "Description")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a permission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := rt.stack.API.Roles.UpdatePermission(cmd.Context(), args[0], model.UpdatePermissionPayload{
				Name:        stringFlag(cmd, "name"),
				Resource:    stringFlag(cmd, "resource"),
				Action:      stringFlag(cmd, "action"),
				Description: stringFlag(cmd, "description"),
			})
			if err != nil {
				return err
			}
			return printResult(rt, cmd.OutOrStdout(), envelope)
		},
	}
	update.Flags().String("name", "", "Permission name")
	update.Flags().String("resource", "", "Resource")
	update.Flags().String("action", "", "Action")
	update.Flags().String("description", "", "Description")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a permission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rt.stack.API.Roles.DeletePermission(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted permission %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}
