// Package registry holds the in-memory activity roster store.
package registry

import (
	"context"
	"slices"
	"sync"

	"example.com/roster/internal/domain"
)

// Registry stores activities in memory, keyed by exact activity name.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// New constructs a Registry populated with the default school catalog.
func New() *Registry {
	return NewWith(DefaultCatalog()...)
}

// NewWith constructs a Registry holding exactly the given activities.
func NewWith(activities ...domain.Activity) *Registry {
	r := &Registry{}
	r.Reset(activities...)
	return r
}

// Reset replaces every activity. Later duplicates of a name win.
func (r *Registry) Reset(activities ...domain.Activity) {
	next := make(map[string]domain.Activity, len(activities))
	for _, activity := range activities {
		next[activity.Name] = activity.Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = next
}

// Snapshot implements domain.Registry.
func (r *Registry) Snapshot(ctx context.Context) map[string]domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = activity.Clone()
	}
	return out
}

// Enroll implements domain.Registry. Capacity is not checked.
func (r *Registry) Enroll(ctx context.Context, activityName, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrAlreadySignedUp
	}

	activity.Participants = append(slices.Clip(activity.Participants), email)
	r.activities[activityName] = activity
	return activity.Clone(), nil
}

// Unenroll implements domain.Registry.
func (r *Registry) Unenroll(ctx context.Context, activityName, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return domain.Activity{}, domain.ErrParticipantNotFound
	}

	activity.Participants = slices.Delete(slices.Clone(activity.Participants), idx, idx+1)
	r.activities[activityName] = activity
	return activity.Clone(), nil
}
