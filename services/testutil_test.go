package services

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tubenote-labs/tubenote_api/model"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// memKV is an in-memory KeyValueStore with per-call error injection and a
// write counter for throttle assertions.
type memKV struct {
	mu     sync.Mutex
	data   map[string]map[string]string
	writes int

	keysErr error
	getErr  error
	setErr  error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]map[string]string{}}
}

func (kv *memKV) Keys(deviceID string) ([]string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.keysErr != nil {
		return nil, kv.keysErr
	}

	keys := make([]string, 0, len(kv.data[deviceID]))
	for k := range kv.data[deviceID] {
		keys = append(keys, k)
	}
	return keys, nil
}

func (kv *memKV) Get(deviceID, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.getErr != nil {
		return "", false, kv.getErr
	}

	v, ok := kv.data[deviceID][key]
	return v, ok, nil
}

func (kv *memKV) Set(deviceID, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.setErr != nil {
		return kv.setErr
	}

	if kv.data[deviceID] == nil {
		kv.data[deviceID] = map[string]string{}
	}
	kv.data[deviceID][key] = value
	kv.writes++
	return nil
}

func (kv *memKV) Remove(deviceID, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.data[deviceID], key)
	return nil
}

func (kv *memKV) writeCount() int {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.writes
}

func duplicateKeyErr() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// fakeRemoteStore records migrated rows and injects failures per video id.
type fakeRemoteStore struct {
	notes    []*model.Note
	progress []*model.VideoProgress
	settings []*model.UserSettings

	noteErrs     map[string]error
	progressErrs map[string]error
	settingsErr  error
}

func newFakeRemoteStore() *fakeRemoteStore {
	return &fakeRemoteStore{
		noteErrs:     map[string]error{},
		progressErrs: map[string]error{},
	}
}

func (rs *fakeRemoteStore) InsertNote(note *model.Note) error {
	if err := rs.noteErrs[note.VideoID]; err != nil {
		return err
	}
	rs.notes = append(rs.notes, note)
	return nil
}

func (rs *fakeRemoteStore) UpsertProgress(progress *model.VideoProgress) error {
	if err := rs.progressErrs[progress.VideoID]; err != nil {
		return err
	}
	rs.progress = append(rs.progress, progress)
	return nil
}

func (rs *fakeRemoteStore) UpsertSettings(settings *model.UserSettings) error {
	if rs.settingsErr != nil {
		return rs.settingsErr
	}
	rs.settings = append(rs.settings, settings)
	return nil
}

type streakUpdate struct {
	lastActivityDate time.Time
	currentStreak    int
}

// fakeUserStore serves a single user and records streak writes.
type fakeUserStore struct {
	user    *model.User
	getErr  error
	updates []streakUpdate
}

func (us *fakeUserStore) GetUser(userID string) (*model.User, error) {
	if us.getErr != nil {
		return nil, us.getErr
	}
	if us.user == nil || us.user.ID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return us.user, nil
}

func (us *fakeUserStore) UpsertUser(user *model.User) error {
	us.user = user
	return nil
}

func (us *fakeUserStore) UpdateStreak(userID string, lastActivityDate time.Time, currentStreak int) error {
	us.updates = append(us.updates, streakUpdate{lastActivityDate: lastActivityDate, currentStreak: currentStreak})
	us.user.LastActivityDate = &lastActivityDate
	us.user.CurrentStreak = currentStreak
	return nil
}
