package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-tracker/internal/config"
	"task-tracker/internal/logging"
	"task-tracker/internal/repository/sqlite"
	"task-tracker/internal/services"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	version string

	configPath string
	format     string

	config *config.Config
	logger *slog.Logger
	repo   sqlite.Repository
	tasks  services.TaskService

	// openRepository is replaced in tests
	openRepository func(*config.Config) (sqlite.Repository, error)
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(version string) *RootCommand {
	root := &RootCommand{
		version:        version,
		openRepository: config.CreateRepository,
	}

	root.cmd = &cobra.Command{
		Use:     "tasks",
		Short:   "A small task tracking service",
		Version: version,
		Long: `tasks keeps a list of task records and serves them over HTTP.

EXAMPLES:
  tasks serve --addr :8080                 # Serve the HTTP API
  tasks create "Write report" --status pending
  tasks list --output json
  tasks status 1 done
  tasks delete 1

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

    TASKS_SERVER_ADDR                      Listen address (default: :8080)
    TASKS_DB_DIR                           Database directory (default: ~/.tasks)
    TASKS_DB_FILENAME                      Database filename (default: tasks.db)
    TASKS_DB_QUERY_TIMEOUT                 Query timeout (default: 10s)
    TASKS_DB_WRITE_TIMEOUT                 Write timeout (default: 5s)
    TASKS_STRICT_LIST                      Report an empty list as not found (default: false)
    TASKS_LOG_LEVEL                        debug, info, warn or error (default: info)
    TASKS_LOG_FORMAT                       text or json (default: text)
    TASKS_APP_TIMEOUT                      Timeout for admin commands (default: 60s)
    TASKS_ENV                              development, testing or production
    TASKS_DEBUG                            Any value forces debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with a background context
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the database afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments used instead of os.Args[1:]
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output and diagnostics
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configPath, "config", "", "Path to a YAML config file")
	flags.StringVarP(&r.format, "output", "o", FormatTable, "Output format: table, json or csv")

	// Server configuration
	flags.String("addr", "", "HTTP listen address (overrides TASKS_SERVER_ADDR)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TASKS_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TASKS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TASKS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TASKS_DB_WRITE_TIMEOUT)")

	// Task behaviour
	flags.Bool("strict-list", false, "Report an empty task list as not found (overrides TASKS_STRICT_LIST)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TASKS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TASKS_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Admin command timeout (overrides TASKS_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var description, status string

	createCmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var descPtr, statusPtr *string
			if cmd.Flags().Changed("description") {
				descPtr = &description
			}
			if cmd.Flags().Changed("status") {
				statusPtr = &status
			}
			return r.run(cmd, args, func(app *App) Command {
				return NewCreateCommand(app, descPtr, statusPtr)
			})
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	createCmd.Flags().StringVarP(&status, "status", "s", "", "Initial status")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, func(app *App) Command { return NewListCommand(app) })
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, func(app *App) Command { return NewGetCommand(app) })
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, func(app *App) Command { return NewStatusCommand(app) })
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, args, func(app *App) Command { return NewDeleteCommand(app) })
		},
	}

	r.cmd.AddCommand(
		r.newServeCommand(),
		createCmd,
		listCmd,
		getCmd,
		statusCmd,
		deleteCmd,
	)
}

// run executes a task command under the application timeout
func (r *RootCommand) run(cmd *cobra.Command, args []string, build func(*App) Command) error {
	printer, err := NewPrinter(cmd.OutOrStdout(), r.format)
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	tasks, err := r.service()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	return build(NewApp(tasks, printer)).Execute(ctx, args)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// loadConfig runs the configuration cascade and builds the logger
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	overrides, err := overridesFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader(r.configPath).LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	r.config = cfg
	r.logger = logger
	logging.Debugf("config: db=%s addr=%s strict_list=%t\n", cfg.GetDatabasePath(), cfg.Server.Addr, cfg.Tasks.StrictList)
	return nil
}

// service opens the repository on first use
func (r *RootCommand) service() (services.TaskService, error) {
	if r.tasks != nil {
		return r.tasks, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	repo, err := r.openRepository(r.config)
	if err != nil {
		return nil, err
	}
	r.repo = repo
	r.tasks = services.NewTaskService(repo, services.Options{
		StrictList: r.config.Tasks.StrictList,
		Logger:     r.logger,
	})
	return r.tasks, nil
}

func (r *RootCommand) close() {
	if r.repo != nil {
		r.repo.Close()
		r.repo = nil
		r.tasks = nil
	}
}

// overridesFromFlags collects only the flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) (*config.ConfigOverrides, error) {
	o := &config.ConfigOverrides{}

	stringFlags := map[string]**string{
		"addr":        &o.Addr,
		"db-dir":      &o.DBDir,
		"db-filename": &o.DBFilename,
		"log-level":   &o.LogLevel,
		"log-format":  &o.LogFormat,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*dst = &v
	}

	durationFlags := map[string]**time.Duration{
		"db-query-timeout": &o.DBQueryTimeout,
		"db-write-timeout": &o.DBWriteTimeout,
		"app-timeout":      &o.Timeout,
	}
	for name, dst := range durationFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetDuration(name)
		if err != nil {
			return nil, err
		}
		*dst = &v
	}

	if flags.Changed("strict-list") {
		v, err := flags.GetBool("strict-list")
		if err != nil {
			return nil, err
		}
		o.StrictList = &v
	}

	return o, nil
}
