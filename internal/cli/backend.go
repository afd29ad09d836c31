package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/easel/internal/config"
	"github.com/aretw0/easel/pkg/adapters/file"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/adapters/redis"
	"github.com/aretw0/easel/pkg/adapters/sqlite"
	"github.com/aretw0/easel/pkg/persistence/middleware"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/session"
)

// Backend is the snapshot store selected by configuration, plus its locker.
type Backend struct {
	Store  ports.SnapshotStore
	Locker ports.DistributedLocker

	closers []io.Closer
}

// OpenBackend opens the store named by cfg.Store.Driver.
// Redis also provides a distributed locker. A configured encryption key wraps
// the store in the encryption middleware.
func OpenBackend(cfg config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		b.Store = memory.NewStore()
	case config.DriverFile:
		b.Store = file.New(cfg.Store.Path)
	case config.DriverSQLite:
		path := cfg.Store.Path
		if path != ":memory:" && filepath.Ext(path) == "" {
			path = filepath.Join(path, "sessions.db")
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		b.Store = s
		b.closers = append(b.closers, s)
	case config.DriverRedis:
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(prefix),
		)
		b.Store = s
		b.Locker = redis.NewLocker(s.Client(), prefix)
		b.closers = append(b.closers, s)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.Store.EncryptionKey)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("invalid store.encryption_key: %w", err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Store = middleware.Chain(b.Store, mw)
	}

	logger.Debug("snapshot store ready", "driver", cfg.Store.Driver, "encrypted", cfg.Store.EncryptionKey != "")
	return b, nil
}

// Manager creates a session manager over the backend.
func (b *Backend) Manager(opts ...session.Option) *session.Manager {
	if b.Locker != nil {
		opts = append([]session.Option{session.WithLocker(b.Locker)}, opts...)
	}
	return session.NewManager(b.Store, opts...)
}

// Close releases every connection the backend opened.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
