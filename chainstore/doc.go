// Package chainstore implements the chain store (C5): per-group
// persistence of messages keyed by H_sig, plus the latest-hash tip
// pointer, and the verify_all algorithm that checks an entire chain is
// consistent, signed and rooted.
package chainstore
