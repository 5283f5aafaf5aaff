package account

import "errors"

// ErrDuplicateIdentity is returned when key generation keeps colliding
// with an already-persisted account's Identity. In practice this is only
// reachable with a broken entropy source — see maxDuplicateRetries.
var ErrDuplicateIdentity = errors.New("account: generated identity collides with an existing account")
