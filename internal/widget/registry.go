// Package widget tracks live map and chart instances. Every instance is owned
// by exactly one view and is identified by an opaque handle.
package widget

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownHandle is returned for a handle that was never created or is already destroyed
	ErrUnknownHandle = errors.New("unknown widget handle")

	ErrMissingOwner = errors.New("widget needs a view and a target")
)

type Handle string

// Instance is one live widget. Target names the container it is drawn into.
type Instance[T any] struct {
	Handle    Handle    `json:"handle"`
	ViewID    string    `json:"view_id"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	State     T         `json:"state"`
}

// Registry holds instances of one widget type
type Registry[T any] struct {
	mu        sync.Mutex
	instances map[Handle]*Instance[T]
	byView    map[string]map[Handle]struct{}
	now       func() time.Time
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		instances: make(map[Handle]*Instance[T]),
		byView:    make(map[string]map[Handle]struct{}),
		now:       time.Now,
	}
}

// Create registers a new instance for viewID drawn into target. An instance
// the view already has in the same target is destroyed first, and its handle
// is returned as replaced.
func (r *Registry[T]) Create(viewID, target string, state T) (inst Instance[T], replaced Handle, err error) {
	if viewID == "" || target == "" {
		return Instance[T]{}, "", ErrMissingOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for h := range r.byView[viewID] {
		if r.instances[h].Target == target {
			r.destroyLocked(h)
			replaced = h
			break
		}
	}

	created := &Instance[T]{
		Handle:    Handle(uuid.NewString()),
		ViewID:    viewID,
		Target:    target,
		CreatedAt: r.now(),
		State:     state,
	}
	r.instances[created.Handle] = created
	if r.byView[viewID] == nil {
		r.byView[viewID] = make(map[Handle]struct{})
	}
	r.byView[viewID][created.Handle] = struct{}{}

	return *created, replaced, nil
}

// Get returns a copy of the instance. Pointer states are shared; use With to
// read them while colors may change.
func (r *Registry[T]) Get(h Handle) (Instance[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.instances[h]
	if !ok {
		return Instance[T]{}, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return *inst, nil
}

// With runs fn on the instance while holding the registry lock
func (r *Registry[T]) With(h Handle, fn func(*Instance[T]) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.instances[h]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return fn(inst)
}

// Each runs fn on every instance while holding the registry lock
func (r *Registry[T]) Each(fn func(*Instance[T])) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inst := range r.instances {
		fn(inst)
	}
}

// Destroy removes one instance
func (r *Registry[T]) Destroy(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[h]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	r.destroyLocked(h)
	return nil
}

// DestroyView removes every instance owned by viewID and returns their handles
func (r *Registry[T]) DestroyView(viewID string) []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handles := make([]Handle, 0, len(r.byView[viewID]))
	for h := range r.byView[viewID] {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		r.destroyLocked(h)
	}
	return handles
}

// ViewHandles lists the handles owned by viewID
func (r *Registry[T]) ViewHandles(viewID string) []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handles := make([]Handle, 0, len(r.byView[viewID]))
	for h := range r.byView[viewID] {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

// Len returns the number of live instances
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

func (r *Registry[T]) destroyLocked(h Handle) {
	inst := r.instances[h]
	delete(r.instances, h)

	owned := r.byView[inst.ViewID]
	delete(owned, h)
	if len(owned) == 0 {
		delete(r.byView, inst.ViewID)
	}
}
