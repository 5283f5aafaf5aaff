package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahon/webmessage/crypto"
	"github.com/ahon/webmessage/store"
)

func TestEnsureInitializedGeneratesOnce(t *testing.T) {
	r := NewRegistry(store.NewMemPort())

	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	id2, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	assert.True(t, id1.Equal(id2))
	assert.Len(t, r.All(), 1)
}

func TestNewAccountBecomesCurrent(t *testing.T) {
	r := NewRegistry(store.NewMemPort())

	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	id2, _, err := r.NewAccount()
	require.NoError(t, err)

	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id2))
	assert.False(t, cur.Equal(id1))

	all := r.All()
	require.Len(t, all, 2)
	assert.True(t, all[0].Equal(id1))
	assert.True(t, all[1].Equal(id2))
}

func TestSetCurrentSwitchesAccount(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)
	_, _, err = r.NewAccount()
	require.NoError(t, err)

	require.NoError(t, r.SetCurrent(id1))
	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id1))
}

func TestSetCurrentUnknownIdentityIsNoop(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	other := NewRegistry(store.NewMemPort())
	unknown, _, err := other.EnsureInitialized()
	require.NoError(t, err)

	require.NoError(t, r.SetCurrent(unknown))
	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id1))
}

func TestDeleteCurrentMovesCursorDown(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)
	id2, _, err := r.NewAccount()
	require.NoError(t, err)

	require.NoError(t, r.Delete(id2))
	assert.Equal(t, []string{id1.Text()}, textsOf(r.All()))

	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id1))
}

func TestDeleteBeforeCursorShiftsCursor(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)
	id2, _, err := r.NewAccount()
	require.NoError(t, err)
	id3, _, err := r.NewAccount()
	require.NoError(t, err)

	// current is id3 (index 2); delete id1 (index 0) should shift cursor to 1
	require.NoError(t, r.Delete(id1))

	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id3))
	assert.Equal(t, []string{id2.Text(), id3.Text()}, textsOf(r.All()))
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	other := NewRegistry(store.NewMemPort())
	unknown, _, err := other.EnsureInitialized()
	require.NoError(t, err)

	require.NoError(t, r.Delete(unknown))
	assert.Equal(t, []string{id1.Text()}, textsOf(r.All()))
}

func TestCurrentOnEmptyRegistry(t *testing.T) {
	r := NewRegistry(store.NewMemPort())
	_, _, ok := r.Current()
	assert.False(t, ok)
}

// scenario S6 from spec.md §8
func TestScenarioAccountManagement(t *testing.T) {
	r := NewRegistry(store.NewMemPort())

	id1, _, err := r.EnsureInitialized()
	require.NoError(t, err)

	id2, _, err := r.NewAccount()
	require.NoError(t, err)

	assert.Equal(t, []string{id1.Text(), id2.Text()}, textsOf(r.All()))

	require.NoError(t, r.SetCurrent(id1))
	cur, _, ok := r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id1))

	require.NoError(t, r.Delete(id1))
	assert.Equal(t, []string{id2.Text()}, textsOf(r.All()))

	cur, _, ok = r.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(id2))
}

func textsOf(ids []crypto.Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Text()
	}
	return out
}
