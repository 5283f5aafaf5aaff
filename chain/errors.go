package chain

import "errors"

var (
	// ErrInvalidHash is returned when a MessageHash fails to parse from
	// its textual or byte form — never from a well-formed computed hash.
	ErrInvalidHash = errors.New("chain: invalid message hash encoding")
)
