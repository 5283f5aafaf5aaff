package chain

import "encoding/hex"

// MessageHash is a fixed 32-byte hash value.
type MessageHash [32]byte

// ZeroHash is the sentinel "no predecessor" hash — the previous_hash of
// every root message.
var ZeroHash MessageHash

// IsZero reports whether h is the all-zero sentinel.
func (h MessageHash) IsZero() bool {
	return h == ZeroHash
}

// Text returns the lowercase hex form used in persistence keys and in the
// host-facing JSON representation. See DESIGN.md for why this
// implementation standardizes on hex rather than the source's decimal
// byte-array debug form.
func (h MessageHash) Text() string {
	return hex.EncodeToString(h[:])
}

// MessageHashFromText parses the hex form produced by Text.
func MessageHashFromText(text string) (MessageHash, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return MessageHash{}, ErrInvalidHash
	}
	return MessageHashFromBytes(raw)
}

// MessageHashFromBytes copies a 32-byte slice into a MessageHash.
func MessageHashFromBytes(raw []byte) (MessageHash, error) {
	var h MessageHash
	if len(raw) != len(h) {
		return MessageHash{}, ErrInvalidHash
	}
	copy(h[:], raw)
	return h, nil
}

// MarshalText implements encoding.TextMarshaler, used by encoding/json to
// render a MessageHash as its canonical hex string.
func (h MessageHash) MarshalText() ([]byte, error) {
	return []byte(h.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *MessageHash) UnmarshalText(text []byte) error {
	parsed, err := MessageHashFromText(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// le32 is the 4-byte little-endian encoding of a 32-bit unsigned integer,
// used verbatim by H_sig.
func le32(v uint32) []byte {
	return []byte{
		byte(v),
		byte(v >> 8),
		byte(v >> 16),
		byte(v >> 24),
	}
}
