package chainstore

import (
	"go.uber.org/zap"

	"github.com/ahon/webmessage/chain"
	"github.com/ahon/webmessage/store"
)

// Store is the chain store (C5): per-group persistence of messages keyed
// by H_sig, plus the latest-hash tip pointer.
type Store struct {
	port store.Port
	log  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger (massifs/logdircache.go convention).
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore returns a Store over port.
func NewStore(port store.Port, opts ...Option) *Store {
	s := &Store{port: port, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the stored SignedMessage for hash h in group groupID, or
// ok=false if it is not present (or the stored record is corrupt). It
// always reads through to the port: a Store is constructed fresh on
// every process/page load (e.g. a browser reload against local storage,
// or each webmessagectl invocation against its FilePort), so there is no
// in-memory state that could safely short-circuit a lookup.
func (s *Store) Get(groupID string, h chain.MessageHash) (chain.SignedMessage, bool) {
	sm, ok := store.Get[chain.SignedMessage](s.port, store.MessageKey(groupID, h))
	if !ok {
		return chain.SignedMessage{}, false
	}
	return sm, true
}

// LatestHash returns the tip pointer for groupID, or ok=false if the
// group's chain is empty.
func (s *Store) LatestHash(groupID string) (chain.MessageHash, bool) {
	return store.Get[chain.MessageHash](s.port, store.LatestHashKey(groupID))
}

// Latest joins LatestHash and Get.
func (s *Store) Latest(groupID string) (chain.MessageHash, chain.SignedMessage, bool) {
	h, ok := s.LatestHash(groupID)
	if !ok {
		return chain.MessageHash{}, chain.SignedMessage{}, false
	}
	sm, ok := s.Get(groupID, h)
	if !ok {
		return chain.MessageHash{}, chain.SignedMessage{}, false
	}
	return h, sm, true
}

// Save unconditionally writes sm under H_sig(sm) and overwrites the tip
// pointer for groupID, returning the computed hash.
//
// Per spec.md §5, the per-message key is written before the tip pointer:
// a crash between the two writes leaves the tip pointing at the previous
// valid head, which is recoverable (the chain still verifies).
func (s *Store) Save(groupID string, sm chain.SignedMessage) (chain.MessageHash, error) {
	h := chain.HSig(sm)

	if err := store.Set(s.port, store.MessageKey(groupID, h), sm); err != nil {
		s.log.Warn("failed to persist message", zap.String("group", groupID), zap.Error(err))
		return chain.MessageHash{}, err
	}

	if err := store.Set(s.port, store.LatestHashKey(groupID), h); err != nil {
		s.log.Warn("failed to persist tip pointer", zap.String("group", groupID), zap.Error(err))
		return h, err
	}
	return h, nil
}

// Iter returns the chain for groupID, tip to root. It silently truncates
// at the first hash it cannot find in storage — unlike VerifyAll, a
// dangling reference here is not treated as an error, per spec.md §4.4.
func (s *Store) Iter(groupID string) []chain.SignedMessage {
	var out []chain.SignedMessage
	h, ok := s.LatestHash(groupID)
	for ok {
		sm, found := s.Get(groupID, h)
		if !found {
			break
		}
		out = append(out, sm)
		if sm.Message.PreviousHash.IsZero() {
			break
		}
		h = sm.Message.PreviousHash
	}
	return out
}

// VerifyAll reports whether the entire chain for groupID is consistent,
// signed and rooted, per the algorithm in spec.md §4.4.
func (s *Store) VerifyAll(groupID string) bool {
	_, tip, ok := s.Latest(groupID)
	if !ok {
		return true // empty chain is valid
	}
	if !chain.Verify(tip) {
		return false
	}

	cur := tip
	for {
		parent, found := s.Get(groupID, cur.Message.PreviousHash)
		if !found {
			return chain.IsRoot(cur)
		}
		if !chain.IsValidParentOf(parent, cur) {
			return false
		}
		cur = parent
	}
}

// Export returns the chain for groupID, tip to root — the same order as
// Iter/host `messages`. Supplemented per SPEC_FULL.md §4 for diagnostics;
// introduces no new persisted state.
func (s *Store) Export(groupID string) []chain.SignedMessage {
	return s.Iter(groupID)
}

// Import passes each message in msgs (expected root-to-tip order) to
// admit, stopping at and returning the first error. It runs no check of
// its own; host.Host.ImportMessages supplies an admit that calls
// writer.WriteWithValidation. Supplemented per SPEC_FULL.md §4 for
// diagnostics/testing.
func (s *Store) Import(groupID string, msgs []chain.SignedMessage, admit func(chain.SignedMessage) error) error {
	for _, sm := range msgs {
		if err := admit(sm); err != nil {
			return err
		}
	}
	return nil
}
