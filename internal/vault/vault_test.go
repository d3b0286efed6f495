package vault

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
)

var testKey = []byte("thisis32byteslongsecretkey123456")

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New(testKey)
	require.NoError(t, err)
	return v
}

func TestRoundTrip(t *testing.T) {
	v := newTestVault(t)
	for _, s := range []string{
		"",
		"Hello, Vault!",
		"пароль с юникодом ✓ 🔐",
		strings.Repeat("x", 1<<16),
		"a:b:c",
	} {
		blob, err := v.Encrypt(s)
		require.NoError(t, err)
		got, err := v.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestEncrypt_FreshIV(t *testing.T) {
	v := newTestVault(t)
	a, err := v.Encrypt("same")
	require.NoError(t, err)
	b, err := v.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, strings.SplitN(a, ":", 2)[0], strings.SplitN(b, ":", 2)[0])
}

func TestEncrypt_Format(t *testing.T) {
	v := newTestVault(t)
	blob, err := v.Encrypt("secret")
	require.NoError(t, err)
	parts := strings.Split(blob, ":")
	require.Len(t, parts, 2)
	iv, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, iv, ivLen)
	_, err = hex.DecodeString(parts[1])
	assert.NoError(t, err)
}

func TestDecrypt_Malformed(t *testing.T) {
	v := newTestVault(t)
	good, err := v.Encrypt("secret")
	require.NoError(t, err)
	iv := strings.SplitN(good, ":", 2)[0]

	cases := map[string]string{
		"no separator":   "not-a-valid-blob",
		"three segments": "aa:bb:cc",
		"non-hex iv":     "zz:" + strings.SplitN(good, ":", 2)[1],
		"short iv":       "0011:" + strings.SplitN(good, ":", 2)[1],
		"non-hex body":   iv + ":xyz",
		"short body":     iv + ":00",
		"empty":          "",
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := v.Decrypt(blob)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, common.ErrDecryptionFailed), "got %v", err)
			assert.Equal(t, common.KindCrypto, common.KindOf(err))
		})
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	v := newTestVault(t)
	blob, err := v.Encrypt("secret")
	require.NoError(t, err)
	b := []byte(blob)
	last := b[len(b)-1]
	if last == '0' {
		b[len(b)-1] = '1'
	} else {
		b[len(b)-1] = '0'
	}
	_, err = v.Decrypt(string(b))
	assert.True(t, errors.Is(err, common.ErrDecryptionFailed))
}

func TestDecrypt_WrongKey(t *testing.T) {
	v1 := newTestVault(t)
	v2, err := New([]byte("another32byteslongsecretkey65432"))
	require.NoError(t, err)

	blob, err := v1.Encrypt("secret")
	require.NoError(t, err)
	_, err = v2.Decrypt(blob)
	assert.True(t, errors.Is(err, common.ErrDecryptionFailed))
}

func TestNew_InvalidKey(t *testing.T) {
	_, err := New([]byte("shortkey"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = New(nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseKey(t *testing.T) {
	raw := make([]byte, KeyLen)
	for i := range raw {
		raw[i] = byte(i)
	}
	k, err := ParseKey(hex.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, k)

	k, err = ParseKey(string(testKey))
	require.NoError(t, err)
	assert.Equal(t, testKey, k)

	_, err = ParseKey("")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = ParseKey("too-short")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
