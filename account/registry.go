// Package account implements the account registry (C2): an ordered list
// of (Identity, Secret) pairs plus a current-index cursor.
package account

import (
	"encoding/hex"
	"io"

	"go.uber.org/zap"

	"github.com/ahon/webmessage/crypto"
	"github.com/ahon/webmessage/store"
)

// maxDuplicateRetries bounds the §9-recommended duplicate-identity
// rejection: regenerate rather than insert a colliding Identity. A
// collision on P-256 keypairs is cryptographically negligible; this only
// guards against a starved or broken entropy source looping forever.
const maxDuplicateRetries = 8

// persistedAccount is the on-disk shape of one registry entry.
type persistedAccount struct {
	Identity string `json:"identity"`
	Secret   string `json:"secret"`
}

// Registry is the account registry (C2), persisted under
// store.AccountsKey / store.AccountIdxKey.
type Registry struct {
	port store.Port
	rnd  io.Reader
	log  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithRand overrides the entropy source used for key generation — tests
// inject a deterministic reader; production code leaves the default.
func WithRand(rnd io.Reader) Option {
	return func(r *Registry) { r.rnd = rnd }
}

// WithLogger attaches a logger (massifs/logdircache.go convention).
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry returns a Registry over port.
func NewRegistry(port store.Port, opts ...Option) *Registry {
	r := &Registry{port: port, rnd: crypto.DefaultRand, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) load() ([]persistedAccount, int) {
	accounts, _ := store.Get[[]persistedAccount](r.port, store.AccountsKey)
	idx, ok := store.Get[int](r.port, store.AccountIdxKey)
	if !ok {
		idx = 0
	}
	return accounts, idx
}

func (r *Registry) persist(accounts []persistedAccount, idx int) error {
	if err := store.Set(r.port, store.AccountsKey, accounts); err != nil {
		r.log.Warn("failed to persist account list", zap.Error(err))
		return err
	}
	if err := store.Set(r.port, store.AccountIdxKey, idx); err != nil {
		r.log.Warn("failed to persist current account index", zap.Error(err))
		return err
	}
	return nil
}

// EnsureInitialized returns the current account, generating and
// persisting a fresh one if the registry is empty.
func (r *Registry) EnsureInitialized() (crypto.Identity, crypto.Secret, error) {
	accounts, idx := r.load()
	if len(accounts) > 0 {
		return r.decode(accounts, idx)
	}

	id, secret, entry, err := r.generateUnique(accounts)
	if err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	accounts = append(accounts, entry)
	if err := r.persist(accounts, 0); err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	return id, secret, nil
}

// All returns every known Identity, preserving insertion order.
func (r *Registry) All() []crypto.Identity {
	accounts, _ := r.load()
	out := make([]crypto.Identity, 0, len(accounts))
	for _, a := range accounts {
		id, err := crypto.IdentityFromText(a.Identity)
		if err != nil {
			r.log.Warn("skipping corrupt identity record", zap.Error(err))
			continue
		}
		out = append(out, id)
	}
	return out
}

// NewAccount generates a fresh keypair, appends it, and sets it current.
//
// Per spec.md §4.3 the new current_index equals the pre-append length
// (which equals the post-append len-1): the index is computed before the
// append and only then is the slice extended.
func (r *Registry) NewAccount() (crypto.Identity, crypto.Secret, error) {
	accounts, _ := r.load()

	newIndex := len(accounts)
	id, secret, entry, err := r.generateUnique(accounts)
	if err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	accounts = append(accounts, entry)
	if err := r.persist(accounts, newIndex); err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	return id, secret, nil
}

// SetCurrent points the cursor at the first account whose Identity equals
// id. A no-op if id is unknown.
func (r *Registry) SetCurrent(id crypto.Identity) error {
	accounts, _ := r.load()
	for i, a := range accounts {
		if a.Identity == id.Text() {
			return r.persist(accounts, i)
		}
	}
	return nil
}

// Current returns the account at the cursor, or ok=false if the registry
// is empty or the cursor is out of range.
func (r *Registry) Current() (crypto.Identity, crypto.Secret, bool) {
	accounts, idx := r.load()
	if idx < 0 || idx >= len(accounts) {
		return crypto.Identity{}, crypto.Secret{}, false
	}
	id, secret, err := r.decode(accounts, idx)
	if err != nil {
		r.log.Warn("current account record is corrupt", zap.Error(err))
		return crypto.Identity{}, crypto.Secret{}, false
	}
	return id, secret, true
}

// Delete removes the account with the given Identity, if present, and
// adjusts the cursor per spec.md §4.3's saturating rule.
func (r *Registry) Delete(id crypto.Identity) error {
	accounts, idx := r.load()
	k := -1
	for i, a := range accounts {
		if a.Identity == id.Text() {
			k = i
			break
		}
	}
	if k < 0 {
		return nil
	}

	accounts = append(accounts[:k], accounts[k+1:]...)

	switch {
	case idx == k:
		idx = idx - 1
		if idx < 0 {
			idx = 0
		}
	case idx > k:
		idx = idx - 1
	}

	return r.persist(accounts, idx)
}

func (r *Registry) decode(accounts []persistedAccount, idx int) (crypto.Identity, crypto.Secret, error) {
	a := accounts[idx]
	id, err := crypto.IdentityFromText(a.Identity)
	if err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	rawSecret, err := hex.DecodeString(a.Secret)
	if err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	secret, err := crypto.SecretFromBytes(rawSecret, id)
	if err != nil {
		return crypto.Identity{}, crypto.Secret{}, err
	}
	return id, secret, nil
}

// generateUnique generates a fresh keypair, retrying on an Identity
// collision with any already-persisted account (spec.md §9 open
// question: "Implementers SHOULD reject insertion of a duplicate
// identity").
func (r *Registry) generateUnique(existing []persistedAccount) (crypto.Identity, crypto.Secret, persistedAccount, error) {
	for attempt := 0; attempt < maxDuplicateRetries; attempt++ {
		secret, id, err := crypto.GenerateKeypair(r.rnd)
		if err != nil {
			return crypto.Identity{}, crypto.Secret{}, persistedAccount{}, err
		}
		if !containsIdentity(existing, id) {
			entry := persistedAccount{Identity: id.Text(), Secret: hex.EncodeToString(secret.Bytes())}
			return id, secret, entry, nil
		}
		r.log.Warn("generated identity collided with an existing account, retrying", zap.Int("attempt", attempt))
	}
	return crypto.Identity{}, crypto.Secret{}, persistedAccount{}, ErrDuplicateIdentity
}

func containsIdentity(accounts []persistedAccount, id crypto.Identity) bool {
	text := id.Text()
	for _, a := range accounts {
		if a.Identity == text {
			return true
		}
	}
	return false
}
