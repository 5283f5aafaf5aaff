package crypto

import "encoding/hex"

// Signature is an opaque byte string produced by Sign: the concatenation
// of the 32-byte big-endian challenge e and the 32-byte big-endian
// response s of a Schnorr signature over P-256. It round-trips through
// the persistence serializer and exposes a canonical byte view used when
// computing H_sig.
type Signature struct {
	raw []byte
}

const signatureLen = 64 // 32 (e) + 32 (s)

// Bytes returns the canonical byte view folded into H_sig.
func (sig Signature) Bytes() []byte {
	out := make([]byte, len(sig.raw))
	copy(out, sig.raw)
	return out
}

// Text returns a hex encoding, used for persistence round-tripping.
func (sig Signature) Text() string {
	return hex.EncodeToString(sig.raw)
}

// SignatureFromBytes parses the canonical byte form produced by Bytes.
func SignatureFromBytes(raw []byte) (Signature, error) {
	if len(raw) != signatureLen {
		return Signature{}, ErrInvalidSignature
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return Signature{raw: out}, nil
}

// SignatureFromText parses the hex form produced by Text.
func SignatureFromText(text string) (Signature, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return Signature{}, ErrInvalidSignature
	}
	return SignatureFromBytes(raw)
}

// MarshalText implements encoding.TextMarshaler.
func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (sig *Signature) UnmarshalText(text []byte) error {
	parsed, err := SignatureFromText(string(text))
	if err != nil {
		return err
	}
	*sig = parsed
	return nil
}
