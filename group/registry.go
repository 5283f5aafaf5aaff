// Package group implements the group registry (C8): an add-only,
// first-seen-timestamped set of group identifiers.
package group

import (
	"go.uber.org/zap"

	"github.com/ahon/webmessage/store"
)

// Group records a group identifier's first-seen time. Equality is on ID
// alone, per spec.md §3.
type Group struct {
	ID        string `json:"id"`
	Timestamp uint64 `json:"timestamp"`
}

// Now is the wall-clock source for first-seen timestamps. Overridable in
// tests; spec.md §1 notes this is a best-effort clock, not a timestamp
// authority.
var Now = func() uint64 { return uint64(nowUnix()) }

// Registry is the group registry (C8), persisted as a single ordered
// list under store.GroupsKey.
type Registry struct {
	port store.Port
	log  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a logger, matching the teacher's
// constructor-injected *zap.Logger convention (massifs/logdircache.go).
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry returns a Registry over port.
func NewRegistry(port store.Port, opts ...Option) *Registry {
	r := &Registry{port: port, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add appends {id, now} iff no existing entry has the same id. Group
// records are add-only; there is no removal API, per spec.md §3.
func (r *Registry) Add(id string) error {
	groups, _ := store.Get[[]Group](r.port, store.GroupsKey)
	for _, g := range groups {
		if g.ID == id {
			return nil
		}
	}
	groups = append(groups, Group{ID: id, Timestamp: Now()})
	if err := store.Set(r.port, store.GroupsKey, groups); err != nil {
		r.log.Warn("failed to persist group registry", zap.String("group", id), zap.Error(err))
		return err
	}
	return nil
}

// List returns every known group, in insertion order.
func (r *Registry) List() []Group {
	groups, _ := store.Get[[]Group](r.port, store.GroupsKey)
	return groups
}
