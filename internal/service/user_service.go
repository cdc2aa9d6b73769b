package service

import (
	"errors"
	"strings"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("email or password does not exist")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInviteRequired     = errors.New("alumni registration requires an invitation code")
	ErrInviteInvalid      = errors.New("invalid or already used invitation code")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenStore keeps one active access token per user. The redis repository
// implements it in production; tests substitute an in-memory one.
type TokenStore interface {
	Add(userID uint64, token string) error
	Get(userID uint64) (string, error)
	Extend(userID uint64) error
	Delete(userID uint64) error
}

type UserService struct {
	db      *gorm.DB
	repo    *mysql.UserRepository
	invites *mysql.InviteRepository
	tokens  TokenStore

	// email suffixes classifying a registration as STUDENT
	domains []string
}

func NewUserService(db *gorm.DB, tokens TokenStore, domains []string) *UserService {
	return &UserService{
		db:      db,
		repo:    &mysql.UserRepository{DB: db},
		invites: &mysql.InviteRepository{DB: db},
		tokens:  tokens,
		domains: domains,
	}
}

// ClassifyAffiliation returns STUDENT when the email suffix-matches any
// configured institutional domain, ALUMNI otherwise.
func ClassifyAffiliation(email string, domains []string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" && strings.HasSuffix(email, "@"+d) {
			return model.AffiliationStudent
		}
	}
	return model.AffiliationAlumni
}

// Register creates the account. Alumni must present an active, unused
// invitation code; the code's used_at transition happens in the same
// transaction as the user insert, so neither side can apply without the other.
func (s *UserService) Register(username, password, email, name, inviteCode string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	inviteCode = strings.TrimSpace(inviteCode)

	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email and password are required")
	}

	affiliation := ClassifyAffiliation(email, s.domains)
	if affiliation == model.AffiliationAlumni {
		if inviteCode == "" {
			return nil, ErrInviteRequired
		}
		if _, err := s.invites.FindRedeemable(inviteCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInviteInvalid
			}
			return nil, err
		}
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.repo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    username,
		Password:    string(hash),
		Email:       email,
		Name:        name,
		Affiliation: affiliation,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := &mysql.UserRepository{DB: tx}
		if err := userRepo.Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}
		if affiliation == model.AffiliationAlumni {
			inviteRepo := &mysql.InviteRepository{DB: tx}
			affected, err := inviteRepo.MarkUsed(tx, inviteCode, user.ID)
			if err != nil {
				return err
			}
			// zero rows means another registration spent the code first;
			// roll the user back too
			if affected == 0 {
				return ErrInviteInvalid
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(email, password string) (*pkg.Pair, *model.User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if s.tokens != nil {
		if err := s.tokens.Add(user.ID, pair.AccessToken); err != nil {
			return nil, nil, err
		}
	}
	return pair, user, nil
}

func (s *UserService) Logout(userID uint64) error {
	if s.tokens == nil {
		return nil
	}
	return s.tokens.Delete(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if s.tokens != nil {
		if err := s.tokens.Add(claims.UserID, pair.AccessToken); err != nil {
			return nil, err
		}
	}
	return pair, nil
}

func (s *UserService) FindByID(userID uint64) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile edits the caller's own account fields.
func (s *UserService) UpdateProfile(userID uint64, name, username, email, bio, avatar string) (*model.User, error) {
	user, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return nil, errors.New("username and email are required")
	}

	if other, err := s.repo.FindByEmail(email); err == nil && other.ID != userID {
		return nil, ErrEmailTaken
	}
	if other, err := s.repo.FindByUsername(username); err == nil && other.ID != userID {
		return nil, ErrUsernameTaken
	}

	user.Name = name
	user.Username = username
	user.Email = email
	user.Bio = bio
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.repo.UpdateProfile(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPaid flips the demo premium flag; there is no payment step.
func (s *UserService) SetPaid(userID uint64, paid bool) error {
	return s.repo.SetPaid(userID, paid)
}

func (s *UserService) Search(q string, viewerID uint64) ([]model.User, error) {
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}
	return s.repo.Search(q, viewerID, 20)
}
