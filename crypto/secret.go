package crypto

import (
	"crypto/elliptic"
	"encoding/hex"
	"math/big"
)

// Secret is a P-256 private key paired with one Identity. It is opaque:
// serializable only for local persistence (Bytes/SecretFromBytes). The
// host façade never exposes it; its account operations return only the
// identity text, including at account creation.
type Secret struct {
	d  *big.Int
	id Identity
}

// Identity returns the public Identity paired with this Secret.
func (s Secret) Identity() Identity {
	return s.id
}

// Bytes returns the big-endian scalar encoding of the private key, for
// local persistence only.
func (s Secret) Bytes() []byte {
	return s.d.FillBytes(make([]byte, 32))
}

// SecretFromBytes reconstructs a Secret from its persisted scalar bytes and
// the Identity it was paired with. The identity is not re-derived from the
// scalar on every load — the pairing is trusted because both values came
// from the same persisted record.
func SecretFromBytes(raw []byte, id Identity) (Secret, error) {
	if len(raw) == 0 || len(raw) > 32 {
		return Secret{}, ErrInvalidSecret
	}
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(raw)
	if d.Sign() <= 0 || d.Cmp(curve.Params().N) >= 0 {
		return Secret{}, ErrInvalidSecret
	}
	return Secret{d: d, id: id}, nil
}

// Text returns a hex export of the raw scalar. No caller in this module
// uses it; the host façade does not return secrets.
func (s Secret) Text() string {
	return hex.EncodeToString(s.Bytes())
}
