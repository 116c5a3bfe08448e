package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/app"
	"sportify-admin/internal/config"
	"sportify-admin/internal/logger"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// Options lets tests inject configuration and the session backend. Zero
// values mean config.Load and the store selected by SESSION_STORE.
type Options struct {
	Config *config.Config
	Stack  app.StackOptions

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// runtime is shared by every command of one invocation.
type runtime struct {
	opts   Options
	cfg    *config.Config
	stack  *app.Stack
	apiURL string
	output string
}

func NewRootCommand(opts Options) *cobra.Command {
	return newRootCommand(&runtime{opts: opts})
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "sportifyctl",
		Short: "Administer a SportifyLife backend",
		Long: `sportifyctl drives the SportifyLife admin API from a terminal.

The session is persisted between invocations (SESSION_STORE selects a
file, Redis or PostgreSQL) and expired access tokens are refreshed
transparently. When the refresh token is rejected the session is cleared
and you are asked to log in again.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
		PersistentPostRun: func(*cobra.Command, []string) { rt.close() },
	}
	if rt.opts.In != nil {
		root.SetIn(rt.opts.In)
	}
	if rt.opts.Out != nil {
		root.SetOut(rt.opts.Out)
	}
	if rt.opts.Err != nil {
		root.SetErr(rt.opts.Err)
	}

	root.PersistentFlags().StringVar(&rt.apiURL, "api-url", "", "API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().StringVarP(&rt.output, "output", "o", outputTable, "Output format (table, json)")

	root.AddCommand(
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newRefreshCommand(rt),
		newUsersCommand(rt),
		newExercisesCommand(rt),
		newWorkoutsCommand(rt),
		newNotificationsCommand(rt),
		newAuditLogsCommand(rt),
		newAnalyticsCommand(rt),
		newRolesCommand(rt),
		newPermissionsCommand(rt),
		newConfigCommand(rt),
	)

	return root
}

// Execute runs the CLI and reports a non-nil error on stderr.
func Execute(ctx context.Context, args []string, opts Options) error {
	rt := &runtime{opts: opts}
	defer rt.close()

	root := newRootCommand(rt)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", describe(err))
	}
	return err
}

func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	if rt.output != outputTable && rt.output != outputJSON {
		return fmt.Errorf("unknown output format %q", rt.output)
	}

	cfg := rt.opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if rt.apiURL != "" {
		cfg.APIBaseURL = rt.apiURL
	}
	rt.cfg = cfg

	errOut := cmd.ErrOrStderr()
	slog.SetDefault(logger.New(errOut, cfg.LogLevel, cfg.LogFormat, errOut == io.Writer(os.Stderr)))

	stackOpts := rt.opts.Stack
	if stackOpts.Redirector == nil {
		stackOpts.Redirector = apiclient.RedirectFunc(func() {
			fmt.Fprintln(errOut, "Your session has expired. Run `sportifyctl login` to sign in again.")
		})
	}

	stack, err := app.NewStack(cmd.Context(), cfg, stackOpts)
	if err != nil {
		return err
	}
	rt.stack = stack
	return nil
}

func (rt *runtime) close() {
	if rt.stack != nil {
		rt.stack.Close()
		rt.stack = nil
	}
}
