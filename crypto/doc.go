// Package crypto wraps the signing primitive the chain model is built on:
// Schnorr signatures over NIST P-256 with a SHA-256 challenge hash.
//
// Identity, Secret and Signature are deliberately opaque outside of this
// package — callers compare, hash and serialize them, they never reach
// into the curve arithmetic.
package crypto
