package notifications

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"camargue/config"
	"camargue/infras/kafka"
	"camargue/infras/otel"
	"camargue/internal/notifications/model"
	"camargue/shared/constant"
)

// Dispatcher publishes notification events for asynchronous delivery.
// Email rendering and sending happens in a separate consumer, so request
// handling never blocks on SMTP.
type Dispatcher interface {
	VerificationRequested(ctx context.Context, event model.VerificationRequestedEvent) error
	BookingConfirmed(ctx context.Context, event model.BookingConfirmedEvent) error
}

type dispatcherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (d *dispatcherImpl) VerificationRequested(ctx context.Context, event model.VerificationRequestedEvent) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".VerificationRequested")
	defer scope.End()
	defer scope.TraceIfError(err)

	message := kafka.Message{
		Key:   event.UserID,
		Value: event,
	}

	err = d.client.SendMessages(ctx, d.cfg.Kafka.Topics.VerificationRequested, message)
	if err != nil {
		log.Error().Err(err).Str("user_id", event.UserID).Msg("failed to publish verification requested event")

		return fmt.Errorf("failed to publish verification requested event: %w", err)
	}

	return nil
}

func (d *dispatcherImpl) BookingConfirmed(ctx context.Context, event model.BookingConfirmedEvent) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingConfirmed")
	defer scope.End()
	defer scope.TraceIfError(err)

	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	err = d.client.SendMessages(ctx, d.cfg.Kafka.Topics.BookingConfirmed, message)
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to publish booking confirmed event")

		return fmt.Errorf("failed to publish booking confirmed event: %w", err)
	}

	return nil
}
