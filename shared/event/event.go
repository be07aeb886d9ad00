package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/kafka"
	"sheen/infras/otel"
	"sheen/shared/constant"
)

// Notification event names. Downstream delivery (email, WhatsApp) lives
// outside this service; we only publish.
const (
	NameJobClaimed     = "job.claimed"
	NameJobStatus      = "job.status_changed"
	NameScheduleBulk   = "schedule.bulk_action"
	NameSchedulePaused = "schedule.paused"
	NameTeamAssigned   = "team.assigned"
)

type Notification struct {
	Name       string `json:"name"`
	JobID      string `json:"job_id,omitempty"`
	ScheduleID string `json:"schedule_id,omitempty"`
	CleanerID  string `json:"cleaner_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Action     string `json:"action,omitempty"`
	Affected   int64  `json:"affected,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, notification Notification) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, notification Notification) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	topic := p.cfg.Kafka.Topics.Notifications

	err = p.client.SendMessages(ctx, topic, kafka.Message{
		Key:   notification.Name,
		Value: notification,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Str("event", notification.Name).Msg("failed to publish notification event")

		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	return nil
}
