package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/persistence/middleware"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func secretDeck() []any {
	return []any{[]any{map[string]any{
		"type":  "RadioGroup",
		"props": map[string]any{"correctAnswers": []any{"B"}, "score": 4},
	}}}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	ports.RunSnapshotStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	secure := mw(underlying)

	ctx := context.Background()
	snap := domain.NewSnapshot("quiz", secretDeck())
	snap.Version = 3
	require.NoError(t, secure.Save(ctx, snap))

	stored, err := underlying.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stored.Version, "envelope keeps the version visible")
	sealed, ok := stored.Collection.(map[string]any)
	require.True(t, ok, "underlying store must only see the envelope")
	assert.Contains(t, sealed, middleware.EncryptedKey)
	assert.NotContains(t, sealed[middleware.EncryptedKey], "correctAnswers")

	loaded, err := secure.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Equal(t, secretDeck(), loaded.Collection)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	mwOld, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)
	secureOld := mwOld(underlying)
	require.NoError(t, secureOld.Save(ctx, domain.NewSnapshot("rotation", secretDeck())))

	mwNew, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	require.NoError(t, err)
	secureNew := mwNew(underlying)

	loaded, err := secureNew.Load(ctx, "rotation")
	require.NoError(t, err, "fallback key must open old snapshots")
	assert.Equal(t, secretDeck(), loaded.Collection)

	require.NoError(t, secureNew.Save(ctx, loaded))

	_, err = secureOld.Load(ctx, "rotation")
	assert.Error(t, err, "old key alone cannot open snapshots sealed with the new key")
}

func TestEncryptionMiddleware_PlainSnapshotRejected(t *testing.T) {
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(context.Background(), domain.NewSnapshot("plain", secretDeck())))

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	_, err = mw(underlying).Load(context.Background(), "plain")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.SnapshotStore) ports.SnapshotStore {
			order = append(order, name)
			return next
		}
	}
	middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	assert.Equal(t, []string{"inner", "outer"}, order)
}
