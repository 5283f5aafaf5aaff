package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetRoundTrip(t *testing.T) {
	p := NewMemPort()
	require.NoError(t, Set(p, "w", widget{Name: "a", Count: 3}))

	got, ok := Get[widget](p, "w")
	require.True(t, ok)
	assert.Equal(t, widget{Name: "a", Count: 3}, got)
}

func TestGetMissingKeyReturnsZeroFalse(t *testing.T) {
	p := NewMemPort()
	got, ok := Get[widget](p, "missing")
	assert.False(t, ok)
	assert.Equal(t, widget{}, got)
}

func TestGetCorruptValueReturnsZeroFalse(t *testing.T) {
	p := NewMemPort()
	require.NoError(t, p.Write("bad", "not json"))

	got, ok := Get[widget](p, "bad")
	assert.False(t, ok)
	assert.Equal(t, widget{}, got)
}

func TestMemPortClear(t *testing.T) {
	p := NewMemPort()
	require.NoError(t, p.Write("k", "v"))
	p.Clear()
	_, ok := p.Read("k")
	assert.False(t, ok)
}

func TestFilePortPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.cbor")

	p1, err := NewFilePort(path)
	require.NoError(t, err)
	require.NoError(t, Set(p1, "w", widget{Name: "b", Count: 7}))

	p2, err := NewFilePort(path)
	require.NoError(t, err)
	got, ok := Get[widget](p2, "w")
	require.True(t, ok)
	assert.Equal(t, widget{Name: "b", Count: 7}, got)
}

func TestFilePortMissingFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.cbor")

	p, err := NewFilePort(path)
	require.NoError(t, err)
	_, ok := p.Read("anything")
	assert.False(t, ok)
}
