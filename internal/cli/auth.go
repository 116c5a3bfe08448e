package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sportify-admin/internal/model"
	"sportify-admin/internal/session"
)

const passwordEnv = "SPORTIFY_PASSWORD"

func newLoginCommand(rt *runtime) *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with an admin account. The password is taken from --password,
then from --password-stdin, then from $SPORTIFY_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			resp, err := rt.stack.API.Auth.Login(cmd.Context(), model.LoginCredentials{Email: email, Password: password})
			if err != nil {
				return err
			}

			if rt.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), resp.User)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.User.DisplayName(), resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.stack.API.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"me"},
		Short:   "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			snapshot := rt.stack.Session.Snapshot()
			if !snapshot.IsAuthenticated {
				return session.ErrNotAuthenticated
			}

			user := snapshot.User
			if !local {
				envelope, err := rt.stack.API.Auth.Me(cmd.Context())
				if err != nil {
					return err
				}
				user = &envelope.Data
			}

			if rt.output == outputJSON {
				return printJSON(out, user)
			}

			if user != nil {
				fmt.Fprintf(out, "%s <%s>\nrole: %s\n", user.DisplayName(), user.Email, user.Role)
			}
			// Token expiry is read without verification, for display only.
			if expiry, ok := session.TokenExpiry(rt.stack.Session.AccessToken()); ok {
				fmt.Fprintf(out, "access token expires: %s\n", expiry.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Show the stored user without calling the API")
	return cmd
}

func newRefreshCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := rt.stack.API.Auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session refreshed")
			return nil
		},
	}
}

func newConfigCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the build-time application config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), model.AppConfig{
				Name:       rt.cfg.AppName,
				Version:    rt.cfg.AppVersion,
				APIBaseURL: rt.cfg.APIBaseURL,
			})
		},
	}
}
