package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-tracker/internal/api"
	"task-tracker/internal/server"
)

const defaultShutdownTimeout = 10 * time.Second

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task HTTP API",
		Long: `Serve the task HTTP API until interrupted.

Routes:
  POST   /api/tasks          create a task
  GET    /api/tasks          list tasks
  GET    /api/tasks/{id}     fetch a task
  PUT    /api/tasks/{id}     change a task's status
  DELETE /api/tasks/{id}     delete a task
  GET    /healthz            liveness and version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := r.service()
			if err != nil {
				return err
			}

			h := &api.Handlers{
				Tasks:   tasks,
				Logger:  r.logger,
				Version: r.version,
			}
			srv := server.New(r.config.Server, h, r.logger)

			r.logger.Info("starting tasks",
				slog.String("version", r.version),
				slog.String("db", r.config.GetDatabasePath()),
				slog.Bool("strict_list", r.config.Tasks.StrictList),
			)
			return runServer(cmd.Context(), srv, r.config.Server.ShutdownTimeout, r.logger)
		},
	}
}

// runServer serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func runServer(ctx context.Context, srv *server.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
