package main

import (
	"context"

	"campushub/internal/config"
	"campushub/internal/handler"
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
	"campushub/internal/router"
	"campushub/internal/service"

	"github.com/sirupsen/logrus"
)

// defaultTopics is the curated category set seeded at startup. Slugs are
// stable identifiers; jobs-referrals is the demo paid category.
var defaultTopics = []model.Topic{
	topic("exams-study", "Exams & Study Help"),
	topic("relocation", "Moving & Settling In"),
	topic("jobs-referrals", "Jobs & Referrals"),
	topic("internships", "Internships"),
	topic("housing", "Housing & Roommates"),
	topic("events-clubs", "Events & Clubs"),
	topic("buy-sell", "Buy & Sell"),
	topic("wellbeing", "Wellbeing & Mental Health"),
	topic("admin-paperwork", "Admin & Paperwork"),
	topic("tech-projects", "Tech & Projects"),
	topic("alumni-network", "Alumni Network"),
	topic("other", "Other"),
}

func topic(slug, name string) model.Topic {
	return model.Topic{Name: name, Slug: &slug}
}

func main() {
	cfg := config.Load()
	pkg.SetJWTSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		logrus.WithError(err).Fatal("mysql connect failed")
	}
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logrus.WithError(err).Fatal("redis connect failed")
	}
	defer redis.Close()

	if err := mysql.DB.AutoMigrate(
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
	); err != nil {
		logrus.WithError(err).Fatal("migrate failed")
	}

	topicRepo := &mysql.TopicRepository{DB: mysql.DB}
	if err := topicRepo.Seed(defaultTopics); err != nil {
		logrus.WithError(err).Fatal("topic seed failed")
	}

	emailCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	tokens := &redis.TokenRepository{}
	userSvc := service.NewUserService(mysql.DB, tokens, cfg.UniversityDomains)
	roomSvc := service.NewRoomService(mysql.DB)
	msgSvc := service.NewMessageService(mysql.DB)
	voteSvc := service.NewVoteService(mysql.DB, redis.NewScoreCacheRepository())
	dmSvc := service.NewDirectMessageService(mysql.DB, len(cfg.KafkaBrokers) > 0)
	mentorSvc := service.NewMentorshipService(mysql.DB)
	inviteSvc := service.NewInviteService(mysql.DB, emailCfg)

	startRelayer(cfg)

	policy := pkg.UploadPolicy{
		AllowedTypes: cfg.AllowedAttachmentTypes,
		MaxSize:      cfg.MaxAttachmentSize,
		Dir:          cfg.UploadDir,
	}

	h := router.Handlers{
		User:       handler.NewUserHandler(userSvc, roomSvc, mentorSvc),
		Room:       handler.NewRoomHandler(roomSvc, msgSvc, policy),
		Vote:       handler.NewVoteHandler(voteSvc),
		DM:         handler.NewDirectMessageHandler(dmSvc, userSvc),
		Mentorship: handler.NewMentorshipHandler(mentorSvc),
		Invite:     handler.NewInviteHandler(inviteSvc),
		API:        handler.NewAPIHandler(roomSvc),
	}

	r := router.InitRouter(h, tokens)
	if err := r.Run(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// startRelayer drains the notification outbox into kafka. Without brokers
// configured the relayer stays off and no outbox events are written either.
func startRelayer(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		logrus.Info("kafka not configured, notification relayer disabled")
		return
	}
	producer := pkg.NewNotificationProducer(pkg.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})

	sender := func(ctx context.Context, ob *model.NotificationOutbox) error {
		return producer.Publish(ctx, ob.TargetID, []byte(ob.Payload))
	}
	go service.NewOutboxRelayer(mysql.DB, sender).Run(context.Background())
}
