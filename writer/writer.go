// Package writer implements the writer/admission component (C7): the
// trusted path used by the signer, and the untrusted admission path used
// for foreign messages.
package writer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ahon/webmessage/chain"
	"github.com/ahon/webmessage/chainstore"
	"github.com/ahon/webmessage/group"
)

// Kind identifies the reason an untrusted message was rejected, mapped
// 1:1 to the error strings in spec.md §7.
type Kind int

const (
	// KindInvalidSignature means chain.Verify(sm) failed.
	KindInvalidSignature Kind = iota
	// KindWrongSequence means sm.Seq did not match the expected next seq.
	KindWrongSequence
	// KindWrongPreviousHash means sm.Message.PreviousHash did not match
	// the expected tip hash.
	KindWrongPreviousHash
)

// Message returns the exact host-facing error string for k, per spec.md §7.
func (k Kind) Message() string {
	switch k {
	case KindInvalidSignature:
		return "fail to validate message"
	case KindWrongSequence:
		return "wrong message sequence"
	case KindWrongPreviousHash:
		return "wrong previous hash"
	default:
		return "admission rejected"
	}
}

// AdmissionError is returned by WriteWithValidation when sm fails the
// admission predicate.
type AdmissionError struct {
	Kind Kind
}

func (e *AdmissionError) Error() string {
	return e.Kind.Message()
}

// Writer is the writer/admission component (C7).
type Writer struct {
	store  *chainstore.Store
	groups *group.Registry
	log    *zap.Logger
	mu     sync.Mutex
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger attaches a logger (massifs/logdircache.go convention).
func WithLogger(log *zap.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// New returns a Writer over store and groups.
func New(store *chainstore.Store, groups *group.Registry, opts ...Option) *Writer {
	w := &Writer{store: store, groups: groups, log: zap.NewNop()}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Write is the trusted path used by the signer: it persists sm and
// registers groupID, without running the admission predicate. The
// caller (signer.Sign + this) is assumed to have already built sm
// correctly on top of the current tip.
func (w *Writer) Write(groupID string, sm chain.SignedMessage) (chain.MessageHash, error) {
	h, err := w.store.Save(groupID, sm)
	if err != nil {
		return chain.MessageHash{}, err
	}
	if err := w.groups.Add(groupID); err != nil {
		return h, err
	}
	return h, nil
}

// WriteWithValidation is the untrusted path used for foreign messages.
// It runs the full admission predicate from spec.md §4.6 before any
// persistence write, then calls Write.
//
// Per spec.md §5, validation must complete fully before any persistence
// write; the Writer additionally serializes this whole check-then-write
// sequence under a mutex (spec.md §5's explicit "MAY add a single
// in-process mutex" allowance), so two concurrent admissions for the
// same group cannot race past the tip check.
func (w *Writer) WriteWithValidation(groupID string, sm chain.SignedMessage) (chain.MessageHash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !chain.Verify(sm) {
		w.log.Info("rejected message: invalid signature", zap.String("group", groupID))
		return chain.MessageHash{}, &AdmissionError{Kind: KindInvalidSignature}
	}

	expectedPrevHash := chain.ZeroHash
	var expectedSeq uint32
	if h, tip, ok := w.store.Latest(groupID); ok {
		expectedPrevHash = h
		expectedSeq = tip.Seq + 1
	}

	if sm.Seq != expectedSeq {
		w.log.Info("rejected message: wrong sequence",
			zap.String("group", groupID), zap.Uint32("got", sm.Seq), zap.Uint32("want", expectedSeq))
		return chain.MessageHash{}, &AdmissionError{Kind: KindWrongSequence}
	}
	if sm.Message.PreviousHash != expectedPrevHash {
		w.log.Info("rejected message: wrong previous hash", zap.String("group", groupID))
		return chain.MessageHash{}, &AdmissionError{Kind: KindWrongPreviousHash}
	}

	return w.Write(groupID, sm)
}
