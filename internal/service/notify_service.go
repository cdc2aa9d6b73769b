package service

import (
	"context"
	"time"

	"campushub/internal/model"
	"campushub/internal/repository/mysql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sender publishes one outbox event; the kafka producer backs it in
// production.
type Sender func(ctx context.Context, ob *model.NotificationOutbox) error

// OutboxRelayer drains pending notification_outbox rows on a ticker and hands
// them to the sender. Failed rows are marked with a retry count and left for
// inspection; only pending rows are picked up.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	list, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		logrus.WithError(err).Warn("outbox list failed")
		return
	}
	for i := range list {
		ob := &list[i]
		if err := r.sender(ctx, ob); err != nil {
			logrus.WithError(err).WithField("id", ob.ID).Warn("outbox send failed")
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		if err := r.repo.MarkSent(ctx, ob.ID); err != nil {
			logrus.WithError(err).WithField("id", ob.ID).Warn("outbox mark failed")
		}
	}
}
