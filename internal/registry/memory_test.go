package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/roster/internal/domain"
)

func fixture() *Registry {
	return NewWith(
		domain.Activity{
			Name:            "Basketball",
			Description:     "Team sport focusing on basketball skills and competitive play",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		domain.Activity{
			Name:            "Music Band",
			Description:     "Play instruments and perform in school concerts",
			Schedule:        "Mondays and Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"lucas@mergington.edu", "mia@mergington.edu"},
		},
	)
}

func TestDefaultCatalogSeedsUniqueActivities(t *testing.T) {
	catalog := DefaultCatalog()
	reg := New()

	snapshot := reg.Snapshot(context.Background())
	require.Len(t, snapshot, len(catalog))
	for _, activity := range catalog {
		stored, ok := snapshot[activity.Name]
		require.True(t, ok, "missing %s", activity.Name)
		require.NotEmpty(t, stored.Description)
		require.NotEmpty(t, stored.Schedule)
		require.GreaterOrEqual(t, stored.MaxParticipants, 0)
		require.NotNil(t, stored.Participants)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	snapshot := reg.Snapshot(ctx)
	bb := snapshot["Basketball"]
	bb.Participants[0] = "mallory@mergington.edu"
	delete(snapshot, "Music Band")

	again := reg.Snapshot(ctx)
	require.Equal(t, []string{"alex@mergington.edu"}, again["Basketball"].Participants)
	require.Contains(t, again, "Music Band")
}

func TestEnrollAppendsInSignupOrder(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	updated, err := reg.Enroll(ctx, "Basketball", "new@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"alex@mergington.edu", "new@mergington.edu"}, updated.Participants)

	_, err = reg.Enroll(ctx, "Basketball", "third@mergington.edu")
	require.NoError(t, err)
	require.Equal(t,
		[]string{"alex@mergington.edu", "new@mergington.edu", "third@mergington.edu"},
		reg.Snapshot(ctx)["Basketball"].Participants,
	)
}

func TestEnrollRejectsDuplicateAndUnknown(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	_, err := reg.Enroll(ctx, "Basketball", "alex@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	_, err = reg.Enroll(ctx, "Nonexistent", "alex@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	require.Len(t, reg.Snapshot(ctx)["Basketball"].Participants, 1)
}

func TestEnrollIgnoresCapacity(t *testing.T) {
	ctx := context.Background()
	reg := NewWith(domain.Activity{Name: "Tiny", MaxParticipants: 1, Participants: []string{"a@x"}})

	updated, err := reg.Enroll(ctx, "Tiny", "b@x")
	require.NoError(t, err)
	require.Len(t, updated.Participants, 2)
}

func TestActivityNamesMatchExactly(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	_, err := reg.Enroll(ctx, "music band", "new@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	_, err = reg.Enroll(ctx, "Music Band", "new@mergington.edu")
	require.NoError(t, err)
}

func TestUnenrollRemovesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	updated, err := reg.Unenroll(ctx, "Music Band", "lucas@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"mia@mergington.edu"}, updated.Participants)

	updated, err = reg.Unenroll(ctx, "Music Band", "mia@mergington.edu")
	require.NoError(t, err)
	require.Empty(t, updated.Participants)
	require.NotNil(t, reg.Snapshot(ctx)["Music Band"].Participants)
}

func TestUnenrollErrors(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	_, err := reg.Unenroll(ctx, "Nonexistent", "alex@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	_, err = reg.Unenroll(ctx, "Basketball", "nobody@mergington.edu")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestUnenrollDoesNotDisturbEarlierSnapshots(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	before := reg.Snapshot(ctx)
	_, err := reg.Unenroll(ctx, "Music Band", "lucas@mergington.edu")
	require.NoError(t, err)

	require.Equal(t, []string{"lucas@mergington.edu", "mia@mergington.edu"}, before["Music Band"].Participants)
}

func TestConcurrentEnrollIsNotLost(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	const students = 64
	errs := make(chan error, students)
	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Enroll(ctx, "Basketball", fmt.Sprintf("student-%d@mergington.edu", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, reg.Snapshot(ctx)["Basketball"].Participants, students+1)
}

func TestResetReplacesContents(t *testing.T) {
	ctx := context.Background()
	reg := fixture()

	reg.Reset(domain.Activity{Name: "Chess Club", Participants: []string{}})

	snapshot := reg.Snapshot(ctx)
	require.Len(t, snapshot, 1)
	require.Contains(t, snapshot, "Chess Club")
}
