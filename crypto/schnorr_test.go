package crypto

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	secret, id, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("hello chain"))
	sig, err := Sign(DefaultRand, secret, msgHash)
	require.NoError(t, err)

	assert.True(t, Verify(id, msgHash, sig))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	secret, id, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("original"))
	sig, err := Sign(DefaultRand, secret, msgHash)
	require.NoError(t, err)

	tampered := sha256.Sum256([]byte("tampered"))
	assert.False(t, Verify(id, tampered, sig))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	secret1, _, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)
	_, id2, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("hello"))
	sig, err := Sign(DefaultRand, secret1, msgHash)
	require.NoError(t, err)

	assert.False(t, Verify(id2, msgHash, sig))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	_, id, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("hello"))
	assert.False(t, Verify(id, msgHash, Signature{raw: []byte{1, 2, 3}}))
}

func TestIdentityTextRoundTrip(t *testing.T) {
	_, id, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	text := id.Text()
	parsed, err := IdentityFromText(text)
	require.NoError(t, err)
	assert.True(t, id.Equal(parsed))
}

func TestIdentityFromTextRejectsGarbage(t *testing.T) {
	_, err := IdentityFromText("not hex at all !!")
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	_, err = IdentityFromText("aabbcc")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestSecretBytesRoundTrip(t *testing.T) {
	secret, id, err := GenerateKeypair(DefaultRand)
	require.NoError(t, err)

	raw := secret.Bytes()
	restored, err := SecretFromBytes(raw, id)
	require.NoError(t, err)

	msgHash := sha256.Sum256([]byte("payload"))
	sig, err := Sign(DefaultRand, restored, msgHash)
	require.NoError(t, err)
	assert.True(t, Verify(id, msgHash, sig))
}
