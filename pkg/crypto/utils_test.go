package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	key, err := NewRandomKey()
	require.NoError(t, err)
	sig, err := NewRandomKey()
	require.NoError(t, err)

	sealed, err := Seal([]byte(`[{"id":"1"}]`), key, sig)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(sealed, "."))

	plain, err := Open(sealed, key, sig)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(plain))
}

func TestOpenWrongSignatureKey(t *testing.T) {
	key := strings.Repeat("k", 32)
	sealed, err := Seal([]byte("hello"), key, strings.Repeat("s", 32))
	require.NoError(t, err)

	_, err = Open(sealed, key, strings.Repeat("x", 32))
	assert.True(t, errors.Is(err, ErrSignature))

	_, err = Open("garbage", key, strings.Repeat("s", 32))
	assert.True(t, errors.Is(err, ErrSignature))
}

func TestKeysMustDiffer(t *testing.T) {
	// distinct long keys must not collapse to the same derived key
	a, err := toKey(strings.Repeat("a", 40) + "1")
	require.NoError(t, err)
	b, err := toKey(strings.Repeat("a", 40) + "2")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	z, err := toKey(strings.Repeat("z", 32))
	require.NoError(t, err)
	assert.NotEqual(t, [32]byte{}, *z)
}

func TestShortKey(t *testing.T) {
	_, err := Seal([]byte("x"), "short", strings.Repeat("s", 32))
	assert.True(t, errors.Is(err, ErrKey))
}
