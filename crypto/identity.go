package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
)

// Identity is an opaque, byte-comparable P-256 public key. Its zero value
// is not a valid identity; construct one via GenerateKeypair,
// IdentityFromText or IdentityFromBytes.
type Identity struct {
	raw []byte // compressed point encoding, curve elliptic.P256()
}

// Bytes returns the canonical byte view of the identity — the compressed
// P-256 point encoding. This is the value folded into H_sig.
func (id Identity) Bytes() []byte {
	out := make([]byte, len(id.raw))
	copy(out, id.raw)
	return out
}

// Text returns the canonical textual form used as a storage key and as the
// host-facing identity string. Two identities are Equal iff their Text
// forms match byte for byte.
func (id Identity) Text() string {
	return hex.EncodeToString(id.raw)
}

// Equal reports whether id and other are the same public key.
func (id Identity) Equal(other Identity) bool {
	return id.Text() == other.Text()
}

// IsZero reports whether id is the unconstructed zero value.
func (id Identity) IsZero() bool {
	return len(id.raw) == 0
}

// IdentityFromText parses the canonical textual form produced by Text.
// A malformed string or a string that does not decode to a point on
// P-256 returns ErrInvalidIdentity — never a panic.
func IdentityFromText(text string) (Identity, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return Identity{}, ErrInvalidIdentity
	}
	return identityFromBytes(raw)
}

// IdentityFromBytes parses the canonical compressed-point byte form
// produced by Bytes.
func IdentityFromBytes(raw []byte) (Identity, error) {
	return identityFromBytes(raw)
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := IdentityFromText(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func identityFromBytes(raw []byte) (Identity, error) {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, raw)
	if x == nil || y == nil {
		return Identity{}, ErrInvalidIdentity
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return Identity{raw: out}, nil
}

func identityFromPublicKey(pub *ecdsa.PublicKey) Identity {
	raw := elliptic.MarshalCompressed(pub.Curve, pub.X, pub.Y)
	return Identity{raw: raw}
}

// publicKey recovers the *ecdsa.PublicKey this identity encodes. Returns
// ErrInvalidIdentity instead of panicking on malformed internal state —
// in practice this only happens for an Identity not built by this
// package's constructors, such as the zero value.
func (id Identity) publicKey() (*ecdsa.PublicKey, error) {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, id.raw)
	if x == nil || y == nil {
		return nil, ErrInvalidIdentity
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
