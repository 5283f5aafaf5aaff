package store

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FilePort is a Port backed by a single local file, deterministically
// CBOR-encoded on every write. It exists for local testing and for the
// cmd/webmessagectl demo CLI — browser hosts provide their own Port over
// local storage, per spec.md §1.
//
// The encoding keeps the teacher's deterministic-CBOR concern
// (massifs/cborcodec.go) alive in this module, even though the
// host-facing wire format for messages/groups is JSON (store.Get/Set).
type FilePort struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

var cborEncMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(err) // fixed, package-level options; cannot fail at runtime
	}
	return mode
}()

// NewFilePort opens (or creates) a CBOR-encoded file at path.
func NewFilePort(path string) (*FilePort, error) {
	p := &FilePort{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return p, nil
	}
	if err := cbor.Unmarshal(raw, &p.data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FilePort) Read(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.data[key]
	return v, ok
}

func (p *FilePort) Write(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = value
	return p.flushLocked()
}

// Clear removes every key and persists the now-empty map.
func (p *FilePort) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = make(map[string]string)
	return p.flushLocked()
}

func (p *FilePort) flushLocked() error {
	raw, err := cborEncMode.Marshal(p.data)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, raw, 0o600)
}
