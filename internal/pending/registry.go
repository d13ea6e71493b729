// Package pending keeps files that wait for the user to pick a destination folder.
//
// State lives only for the lifetime of the process.
package pending

import (
	"TeleCloud/internal/model"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrExpired is returned when a selection is resolved after it was already
// resolved, discarded, or lost on restart.
var ErrExpired = errors.New("pending selection expired")

// Registry holds two independent kinds of pending selections: one single file
// per user and any number of batches keyed by a generated batch key.
type Registry struct {
	mu      sync.Mutex
	singles map[int64]model.FileDescriptor
	batches map[string][]model.FileDescriptor
	newKey  func(groupID string) string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		singles: make(map[int64]model.FileDescriptor),
		batches: make(map[string][]model.FileDescriptor),
		newKey:  batchKey,
	}
}

// batchKey derives a fresh key from the group id. The suffix keeps two batches
// of the same group apart; the whole key must fit into callback data.
func batchKey(groupID string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return groupID + "-" + suffix
}

// PutSingle records a single file for the user, replacing any unresolved one.
func (r *Registry) PutSingle(userID int64, d model.FileDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.singles[userID] = d
}

// ResolveSingle returns and removes the user's pending file.
func (r *Registry) ResolveSingle(userID int64) (model.FileDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.singles[userID]
	if !ok {
		return model.FileDescriptor{}, ErrExpired
	}
	delete(r.singles, userID)
	return d, nil
}

// DiscardSingle drops the user's pending file, if any.
func (r *Registry) DiscardSingle(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.singles, userID)
}

// PutBatch stores a copy of items under a new key and returns the key.
func (r *Registry) PutBatch(groupID string, items []model.FileDescriptor) string {
	cp := make([]model.FileDescriptor, len(items))
	copy(cp, items)

	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.newKey(groupID)
	for {
		if _, taken := r.batches[key]; !taken {
			break
		}
		key = r.newKey(groupID)
	}
	r.batches[key] = cp
	return key
}

// ResolveBatch returns and removes the batch stored under key.
func (r *Registry) ResolveBatch(key string) ([]model.FileDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.batches[key]
	if !ok {
		return nil, ErrExpired
	}
	delete(r.batches, key)
	return items, nil
}

// DiscardBatch drops the batch stored under key, if any.
func (r *Registry) DiscardBatch(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.batches, key)
}

// Len reports how many single and batch selections are pending.
func (r *Registry) Len() (singles, batches int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.singles), len(r.batches)
}
