package tokenfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/userdir-cli/internal/domain"
	"github.com/bnema/userdir-cli/internal/ports"
)

const (
	storeDirMode  = 0o700
	storeFileMode = 0o600
)

// Store persists the bearer credential in a TOML file so sessions survive
// process restarts.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

type credentialsFile struct {
	Token   string    `toml:"token"`
	SavedAt time.Time `toml:"saved_at"`
}

func (s *Store) GetToken(ctx context.Context) (domain.Token, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("read credentials file: %w", err)
	}

	var creds credentialsFile
	if err := toml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("decode credentials file: %w", err)
	}
	if creds.Token == "" {
		return "", domain.ErrTokenNotFound
	}

	return domain.Token(creds.Token), nil
}

func (s *Store) SetToken(ctx context.Context, token domain.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return errors.New("token is empty")
	}

	data, err := toml.Marshal(credentialsFile{
		Token:   string(token),
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode credentials file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, storeFileMode); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}

	return nil
}

func (s *Store) ClearToken(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credentials file: %w", err)
	}

	return nil
}
