package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahon/webmessage/chain"
	"github.com/ahon/webmessage/chainstore"
	"github.com/ahon/webmessage/crypto"
	"github.com/ahon/webmessage/group"
	"github.com/ahon/webmessage/store"
)

func newSigner(t *testing.T) (crypto.Identity, crypto.Secret) {
	t.Helper()
	secret, id, err := crypto.GenerateKeypair(crypto.DefaultRand)
	require.NoError(t, err)
	return id, secret
}

func TestWriteTrustedPathPersistsAndRegistersGroup(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("hello"))
	require.NoError(t, err)

	h, err := w.Write("g1", root)
	require.NoError(t, err)

	got, ok := cs.Get("g1", h)
	require.True(t, ok)
	assert.Equal(t, root, got)

	gotGroups := groups.List()
	require.Len(t, gotGroups, 1)
	assert.Equal(t, "g1", gotGroups[0].ID)
}

func TestWriteWithValidationAcceptsValidRoot(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("hello"))
	require.NoError(t, err)

	_, err = w.WriteWithValidation("g1", root)
	require.NoError(t, err)
}

func TestWriteWithValidationAcceptsValidChain(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("one"))
	require.NoError(t, err)
	_, err = w.WriteWithValidation("g1", root)
	require.NoError(t, err)

	child, err := chain.NewChild(crypto.DefaultRand, id, secret, []byte("two"), root)
	require.NoError(t, err)
	_, err = w.WriteWithValidation("g1", child)
	require.NoError(t, err)

	assert.True(t, cs.VerifyAll("g1"))
}

func TestWriteWithValidationRejectsInvalidSignature(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("hello"))
	require.NoError(t, err)
	root.Message.Data = []byte("tampered")

	_, err = w.WriteWithValidation("g1", root)
	require.Error(t, err)
	var admErr *AdmissionError
	require.ErrorAs(t, err, &admErr)
	assert.Equal(t, KindInvalidSignature, admErr.Kind)
	assert.Equal(t, "fail to validate message", admErr.Error())
}

func TestWriteWithValidationRejectsWrongSequence(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("one"))
	require.NoError(t, err)
	_, err = w.WriteWithValidation("g1", root)
	require.NoError(t, err)

	child, err := chain.NewChild(crypto.DefaultRand, id, secret, []byte("two"), root)
	require.NoError(t, err)
	child.Seq = 5
	resigned, err := crypto.Sign(crypto.DefaultRand, secret, chain.HMsg(child.Message))
	require.NoError(t, err)
	child.Signature = resigned

	_, err = w.WriteWithValidation("g1", child)
	require.Error(t, err)
	var admErr *AdmissionError
	require.ErrorAs(t, err, &admErr)
	assert.Equal(t, KindWrongSequence, admErr.Kind)
	assert.Equal(t, "wrong message sequence", admErr.Error())
}

func TestWriteWithValidationRejectsWrongPreviousHash(t *testing.T) {
	port := store.NewMemPort()
	cs := chainstore.NewStore(port)
	groups := group.NewRegistry(port)
	w := New(cs, groups)

	id, secret := newSigner(t)
	root, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("one"))
	require.NoError(t, err)
	_, err = w.WriteWithValidation("g1", root)
	require.NoError(t, err)

	// A child built against a different, unrelated parent: correct seq,
	// wrong previous_hash.
	otherRoot, err := chain.NewRoot(crypto.DefaultRand, id, secret, []byte("other"))
	require.NoError(t, err)
	child, err := chain.NewChild(crypto.DefaultRand, id, secret, []byte("two"), otherRoot)
	require.NoError(t, err)

	_, err = w.WriteWithValidation("g1", child)
	require.Error(t, err)
	var admErr *AdmissionError
	require.ErrorAs(t, err, &admErr)
	assert.Equal(t, KindWrongPreviousHash, admErr.Kind)
	assert.Equal(t, "wrong previous hash", admErr.Error())
}
