package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"campushub/internal/handler"
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/router"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func (m *memTokenStore) Add(userID uint64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

func (m *memTokenStore) Get(userID uint64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[userID]
	if !ok {
		return "", fmt.Errorf("no session for user %d", userID)
	}
	return token, nil
}

func (m *memTokenStore) Extend(userID uint64) error { return nil }

func (m *memTokenStore) Delete(userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}

type testApp struct {
	db      *gorm.DB
	engine  *gin.Engine
	tokens  *memTokenStore
	uploads string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
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

	tokens := &memTokenStore{tokens: make(map[uint64]string)}
	domains := []string{"th-deg.de", "stud.th-deg.de"}
	uploads := t.TempDir()
	policy := pkg.UploadPolicy{
		AllowedTypes: []string{"application/pdf"},
		MaxSize:      1 << 20,
		Dir:          uploads,
	}

	userSvc := service.NewUserService(db, tokens, domains)
	roomSvc := service.NewRoomService(db)
	msgSvc := service.NewMessageService(db)
	voteSvc := service.NewVoteService(db, nil)
	dmSvc := service.NewDirectMessageService(db, false)
	mentorSvc := service.NewMentorshipService(db)
	inviteSvc := service.NewInviteService(db, pkg.SMTPConfig{})

	h := router.Handlers{
		User:       handler.NewUserHandler(userSvc, roomSvc, mentorSvc),
		Room:       handler.NewRoomHandler(roomSvc, msgSvc, policy),
		Vote:       handler.NewVoteHandler(voteSvc),
		DM:         handler.NewDirectMessageHandler(dmSvc, userSvc),
		Mentorship: handler.NewMentorshipHandler(mentorSvc),
		Invite:     handler.NewInviteHandler(inviteSvc),
		API:        handler.NewAPIHandler(roomSvc),
	}
	return &testApp{db: db, engine: router.InitRouter(h, tokens), tokens: tokens, uploads: uploads}
}

// doMultipart posts a form with an attached PDF plus regular fields.
func (a *testApp) doMultipart(t *testing.T, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="attachment"; filename="notes.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) uploadedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(a.uploads, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case url.Values:
		reader = bytes.NewReader([]byte(b.Encode()))
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register + login and return the bearer token.
func (a *testApp) loginUser(t *testing.T, username, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/register", "", gin.H{
		"username": username, "password": "secret123", "email": email, "name": username,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["AccessToken"].(string)
}

func (a *testApp) seedTopic(t *testing.T, slug, name string) *model.Topic {
	t.Helper()
	topic := &model.Topic{Name: name, Slug: &slug}
	require.NoError(t, a.db.Create(topic).Error)
	return topic
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/home", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.loginUser(t, "max", "max@th-deg.de")
	w = app.do(t, http.MethodGet, "/home", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a second login replaces the stored session; the first token dies
	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "max@th-deg.de", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	fresh := decode(t, w)["AccessToken"].(string)

	w = app.do(t, http.MethodGet, "/home", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(t, http.MethodGet, "/home", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// logout kills the session
	w = app.do(t, http.MethodGet, "/logout", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/home", fresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAlumniFieldError(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/register", "", gin.H{
		"username": "anna", "password": "secret123", "email": "anna@gmail.com", "name": "Anna",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invitation_code", decode(t, w)["field"])
}

func TestPremiumGateOverHTTP(t *testing.T) {
	app := newTestApp(t)
	premium := app.seedTopic(t, model.PremiumTopicSlug, "Jobs & Referrals")
	app.seedTopic(t, "housing", "Housing & Roommates")

	hostToken := app.loginUser(t, "host", "host@th-deg.de")
	w := app.do(t, http.MethodPost, "/demo/subscribe", hostToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/create-room", hostToken, url.Values{
		"topic":       {fmt.Sprintf("%d", premium.ID)},
		"name":        {"referral thread"},
		"description": {"ask here"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	roomID := decode(t, w)["id"].(float64)

	freeToken := app.loginUser(t, "free", "free@th-deg.de")

	w = app.do(t, http.MethodGet, fmt.Sprintf("/room/%.0f", roomID), freeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/home?topic="+model.PremiumTopicSlug, freeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/home", freeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["room_count"])

	// the JSON API is gated the same way
	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/rooms/%.0f", roomID), freeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// flipping the demo flag opens the door
	w = app.do(t, http.MethodPost, "/demo/subscribe", freeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, fmt.Sprintf("/room/%.0f", roomID), freeToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVoteEndpoint(t *testing.T) {
	app := newTestApp(t)
	topic := app.seedTopic(t, "housing", "Housing & Roommates")
	token := app.loginUser(t, "max", "max@th-deg.de")

	w := app.do(t, http.MethodPost, "/create-room", token, url.Values{
		"topic":       {fmt.Sprintf("%d", topic.ID)},
		"name":        {"a room"},
		"description": {"text"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	roomID := decode(t, w)["id"].(float64)

	w = app.do(t, http.MethodPost, fmt.Sprintf("/room/%.0f/vote", roomID), token,
		url.Values{"direction": {"up"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.EqualValues(t, 1, resp["user_vote"])
	assert.EqualValues(t, 1, resp["score"])

	w = app.do(t, http.MethodPost, fmt.Sprintf("/room/%.0f/vote", roomID), token,
		url.Values{"direction": {"up"}})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.EqualValues(t, 0, resp["user_vote"])
	assert.EqualValues(t, 0, resp["score"])
}

func TestCommentAttachmentRejectedOutsideStudyCategories(t *testing.T) {
	app := newTestApp(t)
	topic := app.seedTopic(t, "housing", "Housing & Roommates")
	token := app.loginUser(t, "max", "max@th-deg.de")

	w := app.do(t, http.MethodPost, "/create-room", token, url.Values{
		"topic":       {fmt.Sprintf("%d", topic.ID)},
		"name":        {"a room"},
		"description": {"text"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomID := decode(t, w)["id"].(float64)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("body", "see attached"))
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="attachment"; filename="notes.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/room/%.0f", roomID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, decode(t, rec)["msg"], "study material")

	// and no comment was written
	var count int64
	require.NoError(t, app.db.Model(&model.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessagesNewDispatch(t *testing.T) {
	app := newTestApp(t)
	token := app.loginUser(t, "max", "max@th-deg.de")
	app.loginUser(t, "anna", "anna@th-deg.de")

	w := app.do(t, http.MethodGet, "/messages/new?q=anna", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	users := decode(t, w)["users"].([]any)
	require.Len(t, users, 1)
}

func TestInviteAdminEndpoints(t *testing.T) {
	app := newTestApp(t)
	memberToken := app.loginUser(t, "member", "member@th-deg.de")
	adminToken := app.loginUser(t, "admin", "admin@th-deg.de")
	require.NoError(t, app.db.Model(&model.User{}).Where("username = ?", "admin").Update("role", 1).Error)

	w := app.do(t, http.MethodPost, "/admin/invites/generate", memberToken, gin.H{"count": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/admin/invites/generate", adminToken, gin.H{"count": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	codes := decode(t, w)["codes"].([]any)
	require.Len(t, codes, 2)

	// a generated code lets an alumnus in
	w = app.do(t, http.MethodPost, "/register", "", gin.H{
		"username": "anna", "password": "secret123", "email": "anna@gmail.com",
		"name": "Anna", "invitation_code": codes[0].(string),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.AffiliationAlumni, decode(t, w)["affiliation"])
}

func TestRejectedCommentLeavesNoUploadBehind(t *testing.T) {
	app := newTestApp(t)
	topic := app.seedTopic(t, "exams-study", "Exams & Study Help")
	token := app.loginUser(t, "max", "max@th-deg.de")

	w := app.do(t, http.MethodPost, "/create-room", token, url.Values{
		"topic":       {fmt.Sprintf("%d", topic.ID)},
		"name":        {"exam prep"},
		"description": {"share notes"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomID := decode(t, w)["id"].(float64)

	// valid PDF in a study-material room, but no comment body: the write is
	// rejected and the stored upload must go with it
	w = app.doMultipart(t, fmt.Sprintf("/room/%.0f", roomID), token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	assert.Empty(t, app.uploadedFiles(t))
	var count int64
	require.NoError(t, app.db.Model(&model.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNonHostUpdateLeavesNoUploadBehind(t *testing.T) {
	app := newTestApp(t)
	topic := app.seedTopic(t, "exams-study", "Exams & Study Help")
	hostToken := app.loginUser(t, "host", "host@th-deg.de")
	otherToken := app.loginUser(t, "other", "other@th-deg.de")

	w := app.do(t, http.MethodPost, "/create-room", hostToken, url.Values{
		"topic":       {fmt.Sprintf("%d", topic.ID)},
		"name":        {"exam prep"},
		"description": {"share notes"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomID := decode(t, w)["id"].(float64)

	w = app.doMultipart(t, fmt.Sprintf("/update-room/%.0f", roomID), otherToken, map[string]string{
		"topic":       fmt.Sprintf("%d", topic.ID),
		"name":        "hijacked",
		"description": "mine now",
	})
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	assert.Empty(t, app.uploadedFiles(t))

	var room model.Room
	require.NoError(t, app.db.First(&room, uint64(roomID)).Error)
	assert.Equal(t, "exam prep", room.Name)
}
