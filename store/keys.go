package store

import "github.com/ahon/webmessage/chain"

// Keyspace builders for the persistence port. Per DESIGN.md's Open
// Question resolution, hashes are rendered as lowercase hex rather than
// the source's decimal byte-array debug form — spec.md §4.2 explicitly
// allows either, provided the chosen form is stable across a build.

const (
	AccountsKey  = "accs"
	AccountIdxKey = "accidx"
	GroupsKey    = "groups"
)

// MessageKey returns the per-message persistence key for a hash within a
// group.
func MessageKey(groupID string, h chain.MessageHash) string {
	return "msg_" + groupID + "_" + h.Text()
}

// LatestHashKey returns the per-group tip-pointer persistence key.
func LatestHashKey(groupID string) string {
	return "latest_msghash_" + groupID
}
