// Package store defines the persistence port the rest of this library is
// built on: a durable, synchronous, process-global mapping of string to
// string, supplied by the host, plus a typed Get/Set layer on top of it.
//
// Port has no transactions and no atomic multi-key updates; callers that
// need an ordering guarantee across more than one key (e.g. "write the
// message before the tip pointer") get it by sequencing two Write calls,
// not by any feature of Port itself.
package store
