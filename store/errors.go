package store

import "errors"

// ErrClearFailed wraps a backend error from Clear, as returned by the
// host-facing `clear` operation (spec.md §6).
var ErrClearFailed = errors.New("store: failed to clear persistence namespace")
