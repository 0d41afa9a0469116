package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/spf13/viper"

	"github.com/bnema/userdir-cli/internal/adapters/directory"
	"github.com/bnema/userdir-cli/internal/adapters/tokenfile"
	"github.com/bnema/userdir-cli/internal/adapters/transport"
	"github.com/bnema/userdir-cli/internal/application"
	"github.com/bnema/userdir-cli/internal/ports"
	"github.com/bnema/userdir-cli/internal/session"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".userdir"

	baseURLKey       = "api.base_url"
	credentialsKey   = "credentials.path"
	gracePeriodMsKey = "auth.grace_period_ms"
)

type app struct {
	service   *application.Service
	directory *directory.Client
	sessions  *session.Store
	tokens    ports.TokenStore
	confirm   *promptConfirmer
	logger    *slog.Logger
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(baseURLKey, "http://localhost:5000")
	cfg.SetDefault(credentialsKey, filepath.Join(homeDir, configDir, "credentials.toml"))
	cfg.SetDefault(gracePeriodMsKey, 5000)
	cfg.SetEnvPrefix("UA")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	sessions := session.NewStore(evbus.New(), ports.SystemClock{})
	tokens := tokenfile.NewStore(cfg.GetString(credentialsKey))

	roundTripper, err := transport.NewBearerRoundTripper(http.DefaultTransport, sessions, transport.Options{
		Logger:      logger,
		GracePeriod: time.Duration(cfg.GetInt(gracePeriodMsKey)) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("wire bearer transport: %w", err)
	}

	client := directory.NewClient(cfg.GetString(baseURLKey), &http.Client{Transport: roundTripper})

	// Pick up a persisted credential from a previous run; a missing or
	// unreadable token just means the user has to log in again.
	if token, err := tokens.GetToken(context.Background()); err == nil {
		if err := sessions.Restore(token); err != nil {
			logger.Warn("ignoring persisted token", "error", err)
		}
	}

	confirm := &promptConfirmer{in: os.Stdin, out: os.Stderr}
	service := application.NewService(client, sessions, confirm, logger)

	return &app{
		service:   service,
		directory: client,
		sessions:  sessions,
		tokens:    tokens,
		confirm:   confirm,
		logger:    logger,
	}, nil
}
