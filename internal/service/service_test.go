package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"campushub/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.InvitationCode{},
		&model.Topic{},
		&model.Room{},
		&model.RoomParticipant{},
		&model.Message{},
		&model.PostVote{},
		&model.DirectMessage{},
		&model.MentorProfile{},
		&model.NotificationOutbox{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, paid bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:    username,
		Password:    string(hash),
		Email:       username + "@example.com",
		Name:        username,
		Affiliation: model.AffiliationAlumni,
		IsPaid:      paid,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedAdmin(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := seedUser(t, db, username, false)
	require.NoError(t, db.Model(u).Update("role", 1).Error)
	u.Role = 1
	return u
}

func seedTopic(t *testing.T, db *gorm.DB, slug, name string) *model.Topic {
	t.Helper()
	topic := &model.Topic{Name: name, Slug: &slug}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func seedRoom(t *testing.T, db *gorm.DB, host *model.User, topic *model.Topic, name string) *model.Room {
	t.Helper()
	room := &model.Room{HostID: &host.ID, TopicID: &topic.ID, Name: name, Description: name}
	require.NoError(t, db.Create(room).Error)
	return room
}

// fakeTokenStore is the in-memory TokenStore used where tests need the login
// session behavior without redis.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[uint64]string)}
}

func (f *fakeTokenStore) Add(userID uint64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[userID] = token
	return nil
}

func (f *fakeTokenStore) Get(userID uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[userID]
	if !ok {
		return "", fmt.Errorf("no session for user %d", userID)
	}
	return token, nil
}

func (f *fakeTokenStore) Extend(userID uint64) error { return nil }

func (f *fakeTokenStore) Delete(userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, userID)
	return nil
}
