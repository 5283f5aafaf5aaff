// Package chain implements the message/signed-message value types, the
// two normative hash functions that link and authenticate them, and the
// is-valid-parent-of relation a verifier walks a stored chain with.
//
// Both H_msg and H_sig are defined with an exact field order and byte
// layout; this package must reproduce them bit for bit to stay compatible
// with anything already persisted.
package chain
