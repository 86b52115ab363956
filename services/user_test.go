package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubenote-labs/tubenote_api/dto"
	"github.com/tubenote-labs/tubenote_api/model"
)

func newTestUserService(user *model.User, now time.Time) (*UserService, *fakeUserStore) {
	store := &fakeUserStore{user: user}
	clock := newFakeClock(now)
	return &UserService{users: store, now: clock.Now}, store
}

func dateAt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	now := dateAt(2025, 6, 10, 15)
	svc, store := newTestUserService(&model.User{ID: "u1"}, now)

	svc.UpdateStreak("u1")

	require.Len(t, store.updates, 1)
	assert.Equal(t, 1, store.updates[0].currentStreak)
	assert.Equal(t, dateAt(2025, 6, 10, 0), store.updates[0].lastActivityDate)
}

func TestUpdateStreakSameDayIsNoWrite(t *testing.T) {
	now := dateAt(2025, 6, 10, 23)
	earlier := dateAt(2025, 6, 10, 1)
	svc, store := newTestUserService(&model.User{ID: "u1", LastActivityDate: &earlier, CurrentStreak: 4}, now)

	svc.UpdateStreak("u1")

	assert.Empty(t, store.updates)
	assert.Equal(t, 4, store.user.CurrentStreak)
}

func TestUpdateStreakConsecutiveDayIncrements(t *testing.T) {
	now := dateAt(2025, 6, 10, 0)
	yesterday := dateAt(2025, 6, 9, 23)
	svc, store := newTestUserService(&model.User{ID: "u1", LastActivityDate: &yesterday, CurrentStreak: 5}, now)

	svc.UpdateStreak("u1")

	require.Len(t, store.updates, 1)
	assert.Equal(t, 6, store.updates[0].currentStreak)
}

func TestUpdateStreakGapResets(t *testing.T) {
	now := dateAt(2025, 6, 10, 12)
	threeDaysAgo := dateAt(2025, 6, 7, 12)
	svc, store := newTestUserService(&model.User{ID: "u1", LastActivityDate: &threeDaysAgo, CurrentStreak: 10}, now)

	svc.UpdateStreak("u1")

	require.Len(t, store.updates, 1)
	assert.Equal(t, 1, store.updates[0].currentStreak)
}

func TestUpdateStreakFetchFailureIsSwallowed(t *testing.T) {
	svc, store := newTestUserService(nil, dateAt(2025, 6, 10, 12))
	store.getErr = assert.AnError

	svc.UpdateStreak("u1")

	assert.Empty(t, store.updates)
}

func TestSyncUserUpserts(t *testing.T) {
	svc, store := newTestUserService(nil, dateAt(2025, 6, 10, 12))

	user, err := svc.SyncUser("u1", dto.SyncUserRequest{Email: "u1@example.com", Name: "Sam"})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1@example.com", store.user.Email)
	assert.Equal(t, "Sam", store.user.Name)
}
