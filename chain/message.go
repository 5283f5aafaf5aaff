package chain

import (
	"crypto/sha256"
	"io"

	"github.com/ahon/webmessage/crypto"
)

// Message is the unsigned payload a SignedMessage commits to.
type Message struct {
	PreviousHash MessageHash `json:"previous_hash"`
	Data         []byte      `json:"data"`
}

// SignedMessage is a Message signed by its author, positioned in a chain.
// This is the exact shape serialized to/from the host façade's
// jsonSignedMessage, per spec.md §6.
type SignedMessage struct {
	Message   Message         `json:"message"`
	ID        crypto.Identity `json:"id"`
	Seq       uint32          `json:"seq"`
	Signature crypto.Signature `json:"signature"`
}

// HMsg computes SHA256(previous_hash ‖ data) — the value the signature
// covers. It is not the value used to link children to this message.
func HMsg(m Message) MessageHash {
	h := sha256.New()
	h.Write(m.PreviousHash[:])
	h.Write(m.Data)
	var out MessageHash
	copy(out[:], h.Sum(nil))
	return out
}

// HSig computes SHA256(data ‖ identity_bytes ‖ LE32(seq) ‖ signature_bytes)
// — the hash a child's previous_hash must equal, and the value the tip
// pointer of a group persists.
func HSig(sm SignedMessage) MessageHash {
	h := sha256.New()
	h.Write(sm.Message.Data)
	h.Write(sm.ID.Bytes())
	h.Write(le32(sm.Seq))
	h.Write(sm.Signature.Bytes())
	var out MessageHash
	copy(out[:], h.Sum(nil))
	return out
}

// NewRoot builds and signs a root SignedMessage (seq 0, no predecessor).
func NewRoot(rnd io.Reader, id crypto.Identity, secret crypto.Secret, data []byte) (SignedMessage, error) {
	msg := Message{PreviousHash: ZeroHash, Data: data}
	sig, err := crypto.Sign(rnd, secret, HMsg(msg))
	if err != nil {
		return SignedMessage{}, err
	}
	return SignedMessage{Message: msg, ID: id, Seq: 0, Signature: sig}, nil
}

// NewChild builds and signs a SignedMessage that extends parent.
func NewChild(rnd io.Reader, id crypto.Identity, secret crypto.Secret, data []byte, parent SignedMessage) (SignedMessage, error) {
	msg := Message{PreviousHash: HSig(parent), Data: data}
	sig, err := crypto.Sign(rnd, secret, HMsg(msg))
	if err != nil {
		return SignedMessage{}, err
	}
	return SignedMessage{Message: msg, ID: id, Seq: parent.Seq + 1, Signature: sig}, nil
}

// Verify recomputes H_msg(sm.Message) and checks sm.Signature against it
// under sm.ID. It does not consult any store — it is a pure function of sm.
func Verify(sm SignedMessage) bool {
	return crypto.Verify(sm.ID, HMsg(sm.Message), sm.Signature)
}

// IsValidParentOf reports whether child is a well-formed, signed,
// immediate successor of parent: HSig(parent) == child.Message.PreviousHash,
// parent.Seq+1 == child.Seq, and child's signature verifies. It does not
// verify parent — callers are expected to start from a known-good tip.
func IsValidParentOf(parent, child SignedMessage) bool {
	if HSig(parent) != child.Message.PreviousHash {
		return false
	}
	if parent.Seq+1 != child.Seq {
		return false
	}
	return Verify(child)
}

// IsRoot reports whether sm is a chain root: seq 0 with no predecessor.
func IsRoot(sm SignedMessage) bool {
	return sm.Seq == 0 && sm.Message.PreviousHash == ZeroHash
}
