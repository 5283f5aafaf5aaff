// Package host implements the host-facing façade (§6): the fixed symbol
// table a scripting runtime binds to, wired over the account registry,
// group registry, chain store, signer and writer. Every operation is
// synchronous and completes before returning, per spec.md §5's
// single-threaded cooperative scheduling model.
package host

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahon/webmessage/account"
	"github.com/ahon/webmessage/chain"
	"github.com/ahon/webmessage/chainstore"
	"github.com/ahon/webmessage/crypto"
	"github.com/ahon/webmessage/group"
	"github.com/ahon/webmessage/signer"
	"github.com/ahon/webmessage/store"
	"github.com/ahon/webmessage/writer"
)

// Error strings surfaced to the host, verbatim per spec.md §7. They are
// returned as plain strings (not wrapped errors) from AddSignedMessage
// and ImportMessages, to preserve the existing host contract.
const (
	errFailToValidate = "fail to validate message"
	errWrongSequence  = "wrong message sequence"
	errWrongPrevious  = "wrong previous hash"
	errFailToParse    = "Fail to parse"
)

// AccountView is the host-facing rendering of one account registry
// entry. Label is a supplemented, display-only field (SPEC_FULL.md §4):
// it is never persisted and carries no semantic weight, so hosts may use
// it for UI purposes (e.g. "Account 1") without affecting equality or
// admission.
type AccountView struct {
	Identity string
	Label    string
}

// Host is the host-facing façade (§6 symbol table).
type Host struct {
	accounts *account.Registry
	groups   *group.Registry
	store    *chainstore.Store
	signer   *signer.Signer
	writer   *writer.Writer
	port     store.Port
	log      *zap.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger attaches a logger (massifs/logdircache.go convention).
func WithLogger(log *zap.Logger) Option {
	return func(h *Host) { h.log = log }
}

// New wires a Host over a single Port: the account registry, group
// registry, chain store, signer and writer are all constructed here so
// the host application only ever deals with one object.
func New(port store.Port, opts ...Option) *Host {
	h := &Host{
		accounts: account.NewRegistry(port),
		groups:   group.NewRegistry(port),
		store:    chainstore.NewStore(port),
		port:     port,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	h.signer = signer.New(h.accounts, h.store)
	h.writer = writer.New(h.store, h.groups)
	return h
}

// requestLogger returns a logger tagged with a fresh correlation id for
// one façade call, matching the teacher's practice of stamping
// operations with a request-scoped identifier for log correlation.
func (h *Host) requestLogger(ctx context.Context, op string) *zap.Logger {
	return h.log.With(zap.String("op", op), zap.String("request_id", uuid.NewString()))
}

// InitAccount ensures at least one account exists, generating one if the
// registry is empty, and returns the current identity text.
func (h *Host) InitAccount(ctx context.Context) (string, error) {
	log := h.requestLogger(ctx, "initAccount")
	id, _, err := h.accounts.EnsureInitialized()
	if err != nil {
		log.Warn("failed to initialize account", zap.Error(err))
		return "", err
	}
	return id.Text(), nil
}

// AllAccounts returns every known account, in insertion order.
func (h *Host) AllAccounts(ctx context.Context) []AccountView {
	ids := h.accounts.All()
	out := make([]AccountView, len(ids))
	for i, id := range ids {
		out[i] = AccountView{Identity: id.Text(), Label: "Account " + strconv.Itoa(i+1)}
	}
	return out
}

// NewAccount generates a fresh keypair, persists it, and sets it current.
func (h *Host) NewAccount(ctx context.Context) (string, error) {
	log := h.requestLogger(ctx, "newAccount")
	id, _, err := h.accounts.NewAccount()
	if err != nil {
		log.Warn("failed to generate account", zap.Error(err))
		return "", err
	}
	return id.Text(), nil
}

// SetCurrentAccount points the cursor at identityText. A no-op if
// identityText does not parse or is unknown.
func (h *Host) SetCurrentAccount(ctx context.Context, identityText string) error {
	log := h.requestLogger(ctx, "setCurrentAccount")
	id, err := crypto.IdentityFromText(identityText)
	if err != nil {
		log.Info("ignoring malformed identity", zap.Error(err))
		return nil
	}
	return h.accounts.SetCurrent(id)
}

// DeleteAccount removes identityText from the registry, adjusting the
// cursor. A no-op if identityText does not parse or is unknown.
func (h *Host) DeleteAccount(ctx context.Context, identityText string) error {
	log := h.requestLogger(ctx, "deleteAccount")
	id, err := crypto.IdentityFromText(identityText)
	if err != nil {
		log.Info("ignoring malformed identity", zap.Error(err))
		return nil
	}
	return h.accounts.Delete(id)
}

// Messages returns groupID's chain, tip-to-root, as host-facing JSON
// documents.
func (h *Host) Messages(ctx context.Context, groupID string) ([][]byte, error) {
	msgs := h.store.Iter(groupID)
	out := make([][]byte, 0, len(msgs))
	for _, sm := range msgs {
		raw, err := chain.EncodeJSON(sm)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// Groups returns every known group, in insertion order.
func (h *Host) Groups(ctx context.Context) []group.Group {
	return h.groups.List()
}

// ValidateMessages reports whether groupID's chain is consistent, signed
// and rooted. An empty group is valid.
func (h *Host) ValidateMessages(ctx context.Context, groupID string) bool {
	return h.store.VerifyAll(groupID)
}

// SignMessage signs data (interpreted as UTF-8 bytes) as the next
// message in groupID's chain under the current account, persists it, and
// registers the group. It returns the host-facing JSON document for the
// new message.
func (h *Host) SignMessage(ctx context.Context, groupID string, data string) ([]byte, error) {
	log := h.requestLogger(ctx, "signMessage")
	sm, err := h.signer.Sign(groupID, []byte(data))
	if err != nil {
		log.Warn("failed to sign message", zap.String("group", groupID), zap.Error(err))
		return nil, err
	}
	if _, err := h.writer.Write(groupID, sm); err != nil {
		log.Warn("failed to persist signed message", zap.String("group", groupID), zap.Error(err))
		return nil, err
	}
	return chain.EncodeJSON(sm)
}

// AddSignedMessage parses jsonMessage, runs it through the admission
// predicate, and on success returns the host-facing hex rendering of its
// H_sig. On a parse or admission failure it returns one of the exact
// error strings from spec.md §7; on a storage failure while persisting
// it returns that error's text.
func (h *Host) AddSignedMessage(ctx context.Context, groupID string, jsonMessage []byte) (string, string) {
	log := h.requestLogger(ctx, "addSignedMessage")
	sm, err := chain.DecodeJSON(jsonMessage)
	if err != nil {
		log.Info("rejected malformed message", zap.String("group", groupID), zap.Error(err))
		return "", errFailToParse
	}

	hash, err := h.writer.WriteWithValidation(groupID, sm)
	if err != nil {
		log.Warn("failed to admit message", zap.String("group", groupID), zap.Error(err))
		return "", admissionErrorString(err)
	}
	return hash.Text(), ""
}

// admissionErrorString maps an error from writer.WriteWithValidation to
// one of the exact host-facing strings from spec.md §7.
func admissionErrorString(err error) string {
	var admErr *writer.AdmissionError
	if errors.As(err, &admErr) {
		switch admErr.Kind {
		case writer.KindInvalidSignature:
			return errFailToValidate
		case writer.KindWrongSequence:
			return errWrongSequence
		case writer.KindWrongPreviousHash:
			return errWrongPrevious
		}
	}
	return err.Error()
}

// ImportMessages admits a batch of foreign jsonSignedMessage documents
// for groupID, in order, via chainstore.Store.Import — stopping at the
// first rejection. It returns the count of messages admitted before any
// failure, and an error string (empty on full success) from the same
// spec.md §7 vocabulary as AddSignedMessage.
//
// This is a diagnostics/bulk-load supplement to the fixed §6 symbol
// table (SPEC_FULL.md §4): useful for seeding a chain from an export
// produced elsewhere, without re-deriving the admission predicate at
// each call site.
func (h *Host) ImportMessages(ctx context.Context, groupID string, jsonMessages [][]byte) (int, string) {
	log := h.requestLogger(ctx, "importMessages")

	msgs := make([]chain.SignedMessage, 0, len(jsonMessages))
	for _, raw := range jsonMessages {
		sm, err := chain.DecodeJSON(raw)
		if err != nil {
			log.Info("rejected malformed message in import batch", zap.String("group", groupID), zap.Error(err))
			return 0, errFailToParse
		}
		msgs = append(msgs, sm)
	}

	admitted := 0
	err := h.store.Import(groupID, msgs, func(sm chain.SignedMessage) error {
		if _, err := h.writer.WriteWithValidation(groupID, sm); err != nil {
			return err
		}
		admitted++
		return nil
	})
	if err != nil {
		log.Warn("import batch stopped early", zap.String("group", groupID), zap.Int("admitted", admitted), zap.Error(err))
		return admitted, admissionErrorString(err)
	}
	return admitted, ""
}

// Clear wipes the entire persistence namespace when the Port implements
// store.Clearer; for any other Port it does nothing and returns nil. A
// backend error from Clearer.Clear is returned wrapped in
// store.ErrClearFailed, per spec.md §9's open-issue resolution recorded
// in SPEC_FULL.md §9.
func (h *Host) Clear(ctx context.Context) error {
	log := h.requestLogger(ctx, "clear")
	clearer, ok := h.port.(store.Clearer)
	if !ok {
		return nil
	}
	if err := clearer.Clear(); err != nil {
		log.Error("failed to clear persistence namespace", zap.Error(err))
		return fmt.Errorf("%w: %v", store.ErrClearFailed, err)
	}
	return nil
}
