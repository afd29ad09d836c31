package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/easel/internal/config"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(driver string) config.Config {
	return config.Config{
		Store: config.StoreConfig{Driver: driver},
		Log:   config.LogConfig{Level: "info"},
	}
}

func roundTrip(t *testing.T, b *Backend) {
	t.Helper()
	ctx := context.Background()
	mgr := b.Manager()

	_, err := mgr.Create(ctx, "s1", []any{[]any{}})
	require.NoError(t, err)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestOpenBackend_Drivers(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	cases := map[string]func() config.Config{
		"memory": func() config.Config { return baseConfig(config.DriverMemory) },
		"file": func() config.Config {
			c := baseConfig(config.DriverFile)
			c.Store.Path = filepath.Join(dir, "files")
			return c
		},
		"sqlite": func() config.Config {
			c := baseConfig(config.DriverSQLite)
			c.Store.Path = filepath.Join(dir, "db")
			return c
		},
		"redis": func() config.Config {
			c := baseConfig(config.DriverRedis)
			c.Redis.Addr = mr.Addr()
			return c
		},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := OpenBackend(cfg(), logging.NewNop())
			require.NoError(t, err)
			defer b.Close()

			if name == "redis" {
				assert.NotNil(t, b.Locker)
			} else {
				assert.Nil(t, b.Locker)
			}
			roundTrip(t, b)
		})
	}

	assert.FileExists(t, filepath.Join(dir, "db", "sessions.db"))
}

func TestOpenBackend_Encryption(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	cfg := baseConfig(config.DriverMemory)
	cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString(key)

	b, err := OpenBackend(cfg, logging.NewNop())
	require.NoError(t, err)
	roundTrip(t, b)

	snap, err := b.Store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{}}, snap.Collection)

	cfg.Store.EncryptionKey = "not base64!"
	_, err = OpenBackend(cfg, logging.NewNop())
	assert.ErrorContains(t, err, "encryption_key")

	cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = OpenBackend(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestOpenBackend_EncryptedAtRest(t *testing.T) {
	key := bytes.Repeat([]byte{1}, 32)
	raw := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	require.NoError(t, err)

	b := &Backend{Store: middleware.Chain(raw, mw)}
	roundTrip(t, b)

	sealed, err := raw.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Contains(t, sealed.Collection, middleware.EncryptedKey)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{Level: "warn", JSON: true}, false)
	logger.Info("hidden")
	logger.Warn("shown", "error", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"err":"boom"`)

	buf.Reset()
	NewLogger(&buf, config.LogConfig{Level: "warn"}, true).Debug("debug forced")
	assert.Contains(t, buf.String(), "debug forced")
}

type fakeWatchable struct {
	*memory.Loader
	changes chan struct{}
	fail    bool
}

func (f *fakeWatchable) Watch(ctx context.Context) (<-chan struct{}, error) {
	if f.fail {
		return nil, errors.New("no watcher")
	}
	return f.changes, nil
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	loader := &fakeWatchable{
		Loader:  memory.NewLoader("Quiz", []any{[]any{}}),
		changes: make(chan struct{}, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, loader, logging.NewNop(), func(d *domain.Deck) error {
			calls++
			assert.Equal(t, "Quiz", d.Title)
			if calls == 2 {
				cancel()
			}
			return nil
		})
	}()

	loader.changes <- struct{}{}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Equal(t, 2, calls)
}

func TestWatch_CallbackErrorStops(t *testing.T) {
	loader := &fakeWatchable{
		Loader:  memory.NewLoader("Quiz", []any{}),
		changes: make(chan struct{}),
	}
	boom := errors.New("boom")

	err := Watch(context.Background(), loader, logging.NewNop(), func(*domain.Deck) error { return boom })
	assert.ErrorIs(t, err, boom)

	loader.fail = true
	err = Watch(context.Background(), loader, logging.NewNop(), func(*domain.Deck) error { return nil })
	assert.ErrorContains(t, err, "failed to watch deck")
}
