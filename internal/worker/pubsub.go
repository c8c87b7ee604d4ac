package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/agrivision/agrivision/internal/weather"
)

// Job types accepted on the worker subscription.
const (
	JobTypeAlertRefresh = "alert_refresh"
	JobTypeHealthCheck  = "health_check"
)

// healthCheckLocation is the fixed location probed by health check jobs. A
// fallback snapshot for it means the provider path is down.
const healthCheckLocation = "Nashik"

// JobMessage is the payload published to trigger worker jobs.
type JobMessage struct {
	JobType     string    `json:"job_type"`
	RequestedAt time.Time `json:"requested_at,omitempty"`
}

// PubSubHandler consumes job messages from a Pub/Sub subscription and
// dispatches them to the alert job.
type PubSubHandler struct {
	client   *pubsub.Client
	subName  string
	alertJob *AlertJob
	logger   zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a handler bound to the configured subscription.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig, alertJob *AlertJob) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &PubSubHandler{
		client:   client,
		subName:  cfg.SubscriptionName,
		alertJob: alertJob,
		logger:   cfg.Logger.With().Str("component", "pubsub_handler").Logger(),
	}, nil
}

// Listen blocks receiving messages until the context is canceled.
func (h *PubSubHandler) Listen(ctx context.Context) error {
	subscriber := h.client.Subscriber(h.subName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	h.logger.Info().
		Str("subscription", h.subName).
		Msg("listening for job messages")

	err := subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("receiving messages: %w", err)
	}

	return nil
}

// handleMessage processes one job message. Unknown job types are acked so
// they don't redeliver forever; failed jobs are nacked for retry.
func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	var job JobMessage
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		h.logger.Error().Err(err).
			Str("message_id", msg.ID).
			Msg("malformed job message, acking")
		msg.Ack()
		return
	}

	h.logger.Info().
		Str("message_id", msg.ID).
		Str("job_type", job.JobType).
		Msg("processing job")

	var err error
	switch job.JobType {
	case JobTypeAlertRefresh:
		err = h.runAlertRefresh(ctx)
	case JobTypeHealthCheck:
		err = h.runHealthCheck(ctx)
	default:
		h.logger.Warn().
			Str("job_type", job.JobType).
			Msg("unknown job type, acking")
		msg.Ack()
		return
	}

	if err != nil {
		h.logger.Error().Err(err).
			Str("job_type", job.JobType).
			Msg("job failed, nacking for retry")
		msg.Nack()
		return
	}

	msg.Ack()
}

func (h *PubSubHandler) runAlertRefresh(ctx context.Context) error {
	result, err := h.alertJob.Run(ctx)
	if err != nil {
		return err
	}

	// One farm failing shouldn't redeliver the whole batch; only nack when
	// the run was mostly failures.
	if result.Farms > 0 && result.Failed > result.Farms/2 {
		return fmt.Errorf("alert refresh mostly failed: %d of %d farms", result.Failed, result.Farms)
	}

	return nil
}

func (h *PubSubHandler) runHealthCheck(ctx context.Context) error {
	snapshot := h.alertJob.weather.GetForecast(ctx, healthCheckLocation)
	if snapshot.Source == weather.SourceFallback {
		return fmt.Errorf("weather provider unhealthy: fallback snapshot for %s", healthCheckLocation)
	}

	h.logger.Info().
		Str("location", healthCheckLocation).
		Msg("health check passed")

	return nil
}

// Close releases the underlying Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}
