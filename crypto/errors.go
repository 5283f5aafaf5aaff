package crypto

import "errors"

var (
	// ErrInvalidIdentity is returned when an Identity's canonical bytes do
	// not decode to a point on the curve. Per the decision recorded in
	// DESIGN.md, a malformed Identity is never a panic — it surfaces as a
	// decode error here, and as a failed verification one layer up in
	// package chain.
	ErrInvalidIdentity = errors.New("crypto: invalid identity encoding")

	// ErrInvalidSecret is returned when a Secret's persisted bytes do not
	// decode to a valid P-256 scalar.
	ErrInvalidSecret = errors.New("crypto: invalid secret encoding")

	// ErrInvalidSignature is returned when a Signature's bytes are too
	// short or malformed to contain a challenge and response scalar.
	ErrInvalidSignature = errors.New("crypto: invalid signature encoding")
)
