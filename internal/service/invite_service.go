package service

import (
	"campushub/internal/access"
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const inviteCodeLength = 12

type InviteService struct {
	repo     *mysql.InviteRepository
	users    *mysql.UserRepository
	emailCfg pkg.SMTPConfig
	sendMail func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error
}

func NewInviteService(db *gorm.DB, emailCfg pkg.SMTPConfig) *InviteService {
	return &InviteService{
		repo:     &mysql.InviteRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
		emailCfg: emailCfg,
		sendMail: pkg.SendEmail,
	}
}

func (s *InviteService) requireAdmin(userID uint64) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if !access.IsAdmin(user) {
		return ErrNotAuthorized
	}
	return nil
}

// Generate mints n fresh codes. When sendTo is set the first code is mailed
// to the prospective alumnus.
func (s *InviteService) Generate(adminID uint64, n int, sendTo string) ([]model.InvitationCode, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if n <= 0 || n > 100 {
		n = 1
	}
	codes := make([]model.InvitationCode, 0, n)
	for i := 0; i < n; i++ {
		raw, err := pkg.RandInviteCode(inviteCodeLength)
		if err != nil {
			return nil, err
		}
		code := model.InvitationCode{Code: raw, IsActive: true, CreatedBy: &adminID}
		if err := s.repo.Create(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	// the codes are committed at this point; delivery is best-effort, an
	// error here would make the admin retry and mint duplicates
	if sendTo != "" && s.emailCfg.Host != "" {
		html := pkg.InviteCodeHTML(codes[0].Code)
		if err := s.sendMail(s.emailCfg, sendTo, "Your alumni invitation code", html); err != nil {
			logrus.WithError(err).WithField("to", sendTo).Warn("invitation code email failed")
		}
	}
	return codes, nil
}

func (s *InviteService) List(adminID uint64, page, size int) ([]model.InvitationCode, error) {
	if err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	return s.repo.List((page-1)*size, size)
}

func (s *InviteService) Deactivate(adminID uint64, code string) error {
	if err := s.requireAdmin(adminID); err != nil {
		return err
	}
	return s.repo.Deactivate(code)
}
