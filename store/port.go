package store

import "encoding/json"

// Port is the capability a host provides: a durable, synchronous mapping
// of string to string. It is the only shared state in this library.
type Port interface {
	// Read returns the value for key and true, or "", false if absent.
	// A backend read failure degrades to "", false — never an error —
	// per spec.md §7: "Persistence read failures degrade to None;
	// callers treat missing state as empty."
	Read(key string) (string, bool)

	// Write unconditionally overwrites the value for key.
	Write(key, value string) error
}

// Clearer is implemented by Ports that can wipe their entire namespace.
// The host façade's `clear` operation uses it, and does nothing on a Port
// that does not implement it.
type Clearer interface {
	Clear() error
}

// Get reads key and JSON-decodes it into a T. A missing key, or a value
// that fails to decode, both return (zero, false) — never an error — per
// spec.md §4.2: "parse failure returns None, never an error".
func Get[T any](p Port, key string) (T, bool) {
	var out T
	raw, ok := p.Read(key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false
	}
	return out, true
}

// Set JSON-encodes value and writes it under key.
//
// Unlike the rust source this is grounded on, Set propagates both
// serialization and backend errors to the caller instead of silently
// dropping them — the fix DESIGN.md records for the "latent data-loss
// bug" noted in spec.md §9.
func Set[T any](p Port, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.Write(key, string(raw))
}
