// Package commands wires the CLI surface: every command builds one session
// (config, logger, cookie store, API client) and calls a typed service.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abyxtask/taskctl/internal/api"
	"github.com/abyxtask/taskctl/internal/infrastructure/config"
	"github.com/abyxtask/taskctl/internal/infrastructure/logger"
	"github.com/abyxtask/taskctl/internal/infrastructure/storage"
)

// session is the explicitly constructed context every command runs against.
// It replaces the process-wide singletons the mobile client used.
type session struct {
	cfg    *config.Config
	logger *logger.Logger
	client *api.Client
}

func newSession() *session {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store := storage.NewStore(cfg.Storage.Dir, "session.json")
	client, err := api.New(cfg.API, api.NewCookieJar(store), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize API client", "error", err)
	}

	return &session{
		cfg:    cfg,
		logger: appLogger,
		client: client,
	}
}

func (s *session) close() {
	s.logger.Close()
}

// openUserCache opens the local sqlite cache of the signed-in user.
func (s *session) openUserCache() (*storage.UserCache, error) {
	return storage.OpenUserCache(filepath.Join(s.cfg.Storage.Dir, "user.db"))
}

// fail prints the user-displayable form of err and exits. Backend responses
// carry their translated message; transport failures map to the fixed
// advisory strings.
func fail(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		log.Fatal(apiErr.Message)
	}
	log.Fatal(api.Advice(err))
}

func background() context.Context {
	return context.Background()
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print taskctl version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
			fmt.Printf("API: %s\n", cfg.API.BaseURL)
		},
	}
}
