package service

import (
	"errors"
	"strings"

	"campushub/internal/access"
	"campushub/internal/model"
	"campushub/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrTopicNotFound      = errors.New("please select a valid category")
	ErrPremiumRequired    = errors.New("demo paid access is required for this category")
	ErrNotAuthorized      = errors.New("you are not allowed here")
	ErrContentRequired    = errors.New("a title or description is required")
	ErrAttachmentCategory = errors.New("attachments are only allowed in study material categories")
)

// titlePrefixLen is how much of the description becomes the title when no
// title is given.
const titlePrefixLen = 50

type RoomService struct {
	db     *gorm.DB
	rooms  *mysql.RoomRepository
	topics *mysql.TopicRepository
	msgs   *mysql.MessageRepository
	votes  *mysql.VoteRepository
	users  *mysql.UserRepository
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{
		db:     db,
		rooms:  &mysql.RoomRepository{DB: db},
		topics: &mysql.TopicRepository{DB: db},
		msgs:   &mysql.MessageRepository{DB: db},
		votes:  &mysql.VoteRepository{DB: db},
		users:  &mysql.UserRepository{DB: db},
	}
}

// RoomSummary pairs a room with its aggregate vote score for listings.
type RoomSummary struct {
	Room  model.Room
	Score int64
}

// RoomDetail is the single-room page payload.
type RoomDetail struct {
	Room         model.Room
	Messages     []model.Message
	Participants []model.User
	Score        int64
	UserVote     int
}

// DeriveTitle returns the explicit title, or the description truncated to the
// fixed prefix length with an ellipsis marker when it was longer.
func DeriveTitle(name, description string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	description = strings.TrimSpace(description)
	runes := []rune(description)
	if len(runes) > titlePrefixLen {
		return string(runes[:titlePrefixLen]) + "..."
	}
	return description
}

// TopicForWrite resolves the target category for a create/update and applies
// the premium gate: writes into the gated category need the paid flag.
func (s *RoomService) TopicForWrite(userID, topicID uint64) (*model.Topic, error) {
	topic, err := s.topics.FindByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	if topic.IsPremium() {
		user, err := s.users.FindByID(userID)
		if err != nil {
			return nil, err
		}
		if !access.CanAccessPremium(user) {
			return nil, ErrPremiumRequired
		}
	}
	return topic, nil
}

func (s *RoomService) CreateRoom(userID uint64, topic *model.Topic, name, description, attachment string) (*model.Room, error) {
	title := DeriveTitle(name, description)
	if title == "" {
		return nil, ErrContentRequired
	}
	room := &model.Room{
		HostID:      &userID,
		TopicID:     &topic.ID,
		Name:        title,
		Description: description,
		Attachment:  attachment,
	}
	if err := s.rooms.Create(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) UpdateRoom(userID, roomID uint64, topic *model.Topic, name, description, attachment string) (*model.Room, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !access.IsRoomHost(user, room) {
		return nil, ErrNotAuthorized
	}

	title := DeriveTitle(name, description)
	if title == "" {
		return nil, ErrContentRequired
	}
	room.Name = title
	room.TopicID = &topic.ID
	room.Description = description
	if attachment != "" {
		room.Attachment = attachment
	}
	if err := s.rooms.Update(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(userID, roomID uint64) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if !access.IsRoomHost(user, room) {
		return ErrNotAuthorized
	}
	return s.rooms.Delete(roomID)
}

// GetRoom loads the room page. Gated rooms deny non-paid viewers outright.
func (s *RoomService) GetRoom(userID, roomID uint64) (*RoomDetail, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !access.CanAccessRoom(user, room) {
		return nil, ErrPremiumRequired
	}

	messages, err := s.msgs.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	participants, err := s.rooms.ListParticipants(roomID)
	if err != nil {
		return nil, err
	}
	score, err := s.votes.Score(roomID)
	if err != nil {
		return nil, err
	}
	userVote, err := s.votes.UserVote(userID, roomID)
	if err != nil {
		return nil, err
	}
	return &RoomDetail{
		Room:         *room,
		Messages:     messages,
		Participants: participants,
		Score:        score,
		UserVote:     userVote,
	}, nil
}

// ListRooms backs the home page. Requesting the gated category's listing
// without the paid flag is an explicit denial, not an empty page.
func (s *RoomService) ListRooms(userID uint64, query, topicSlug string) ([]RoomSummary, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	paid := access.CanAccessPremium(user)
	if topicSlug == model.PremiumTopicSlug && !paid {
		return nil, ErrPremiumRequired
	}

	rooms, err := s.rooms.List(mysql.RoomListOpts{
		Query:          query,
		TopicSlug:      topicSlug,
		IncludePremium: paid,
	})
	if err != nil {
		return nil, err
	}
	return s.withScores(rooms)
}

// ListRoomsByHost backs the public profile, filtered for the viewer.
func (s *RoomService) ListRoomsByHost(viewerID, hostID uint64) ([]RoomSummary, error) {
	viewer, err := s.users.FindByID(viewerID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.List(mysql.RoomListOpts{
		HostID:         hostID,
		IncludePremium: access.CanAccessPremium(viewer),
	})
	if err != nil {
		return nil, err
	}
	return s.withScores(rooms)
}

func (s *RoomService) withScores(rooms []model.Room) ([]RoomSummary, error) {
	ids := make([]uint64, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	scores, err := s.votes.ScoreMap(ids)
	if err != nil {
		return nil, err
	}
	out := make([]RoomSummary, len(rooms))
	for i, r := range rooms {
		out[i] = RoomSummary{Room: r, Score: scores[r.ID]}
	}
	return out, nil
}

// Topics lists the curated categories, hiding the gated one from non-paid
// viewers.
func (s *RoomService) Topics(userID uint64) ([]model.Topic, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.List()
	if err != nil {
		return nil, err
	}
	return access.FilterTopics(topics, user), nil
}

// Activity is the recent-comments feed, premium filtered.
func (s *RoomService) Activity(userID uint64) ([]model.Message, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return s.msgs.ListRecent(0, access.CanAccessPremium(user), 50)
}

// ActivityByUser lists one author's comments for their public profile.
func (s *RoomService) ActivityByUser(viewerID, authorID uint64) ([]model.Message, error) {
	viewer, err := s.users.FindByID(viewerID)
	if err != nil {
		return nil, err
	}
	return s.msgs.ListRecent(authorID, access.CanAccessPremium(viewer), 50)
}
