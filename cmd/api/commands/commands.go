package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmaster/questionbank/internal/adapters/repository"
	"github.com/taskmaster/questionbank/internal/application/services"
	"github.com/taskmaster/questionbank/internal/infrastructure/config"
	"github.com/taskmaster/questionbank/internal/infrastructure/datafile"
	"github.com/taskmaster/questionbank/internal/infrastructure/logger"
	"github.com/taskmaster/questionbank/internal/infrastructure/metrics"
	"github.com/taskmaster/questionbank/internal/infrastructure/server"
)

// Build information, set with -ldflags at release time
var (
	Version   = "1.0.0"
	GitCommit = "development"
)

// NewRootCommand creates the questionbank command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "questionbank",
		Short:        "QuestionBank record store",
		Long:         `QuestionBank stores arithmetic quiz questions with their answers and distractors in a flat file and serves them over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("file", "", "Question file, overrides store.path")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewRecordsCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the QuestionBank API server",
		Long:  "Load the question file and serve the record endpoints until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print QuestionBank version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "QuestionBank %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

// loadConfig reads the configuration named by the root flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.Store.Path = file
	}
	return cfg, nil
}

// session bundles what every command that touches the store needs
type session struct {
	cfg     *config.Config
	logger  *logger.Logger
	store   *repository.RecordStore
	service *services.RecordService
}

func openSession(cmd *cobra.Command, observer services.OperationObserver) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := repository.NewRecordStore(cfg.Store.Path)
	if err != nil {
		if repository.IsNotExist(err) {
			appLogger.Warnw("Question file not found, create it with 'records init'", "path", cfg.Store.Path)
		}
		appLogger.Close()
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	return &session{
		cfg:     cfg,
		logger:  appLogger,
		store:   store,
		service: services.NewRecordService(store, observer, appLogger),
	}, nil
}

func (sess *session) Close() {
	_ = sess.logger.Close()
}

func runServer(cmd *cobra.Command) error {
	// The gauge is only read on scrape, after svc is set.
	var svc *services.RecordService
	m := metrics.New(func() int { return svc.Count() })

	sess, err := openSession(cmd, m)
	if err != nil {
		return err
	}
	defer sess.Close()
	svc = sess.service

	srv := server.New(sess.cfg, sess.service, datafile.New(sess.cfg.Store), m, sess.logger)

	errCh := make(chan error, 1)
	go func() {
		sess.logger.Infow("Starting QuestionBank API server",
			"address", sess.cfg.Server.Address(),
			"environment", sess.cfg.App.Environment,
			"store", sess.store.Path(),
			"records", sess.service.Count(),
		)
		errCh <- srv.Start(sess.cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	sess.logger.Infow("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), sess.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	sess.logger.Infow("Server exited gracefully")
	return nil
}
