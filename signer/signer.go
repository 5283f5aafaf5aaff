// Package signer implements the signer (C6): given a group and a payload,
// it consults the current account and the group's tip and produces the
// next SignedMessage in the chain. It does not persist — that is the
// writer's job.
package signer

import (
	"errors"
	"io"

	"github.com/ahon/webmessage/account"
	"github.com/ahon/webmessage/chain"
	"github.com/ahon/webmessage/chainstore"
	"github.com/ahon/webmessage/crypto"
)

// ErrNoCurrentAccount indicates a call to Sign with no current account
// set. Per spec.md §4.5, the caller is responsible for initialization;
// this is a fatal misuse, not an admission error.
var ErrNoCurrentAccount = errors.New("signer: no current account")

// Signer is the signer (C6).
type Signer struct {
	accounts *account.Registry
	store    *chainstore.Store
	rnd      io.Reader
}

// Option configures a Signer.
type Option func(*Signer)

// WithRand overrides the entropy source used for nonce generation.
func WithRand(rnd io.Reader) Option {
	return func(s *Signer) { s.rnd = rnd }
}

// New returns a Signer consulting accounts and store.
func New(accounts *account.Registry, store *chainstore.Store, opts ...Option) *Signer {
	s := &Signer{accounts: accounts, store: store, rnd: crypto.DefaultRand}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sign builds and signs the next SignedMessage in groupID's chain under
// the current account, extending the existing tip if one exists or
// starting a new root chain otherwise. It does not persist the result.
func (s *Signer) Sign(groupID string, data []byte) (chain.SignedMessage, error) {
	id, secret, ok := s.accounts.Current()
	if !ok {
		return chain.SignedMessage{}, ErrNoCurrentAccount
	}

	_, tip, ok := s.store.Latest(groupID)
	if !ok {
		return chain.NewRoot(s.rnd, id, secret, data)
	}
	return chain.NewChild(s.rnd, id, secret, data, tip)
}
