package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"creedava-api/infrastructure/configuration"
	"creedava-api/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

const analyticsTopic = "site-analytics"

// AnalyticsEvent is the payload published for site activity
// (lead captured, linkedin connected, posts served).
type AnalyticsEvent struct {
	Kind           string    `json:"kind"`
	OrganizationID string    `json:"organizationId,omitempty"`
	LeadID         int64     `json:"leadId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type IAnalyticsPublisher interface {
	Publish(ctx context.Context, event AnalyticsEvent) error
}

type AnalyticsPublisher struct {
	client *pubsub.Client
}

// NewPubSub creates the Pub/Sub client from the configured project.
// Returns nil when no project is configured so analytics degrade to no-ops.
func NewPubSub(ctx context.Context) *pubsub.Client {
	projectID := configuration.C.Pubsub.ProjectID
	if projectID == "" {
		logger.GetLogger().Warn("Pub/Sub project not configured, analytics disabled")
		return nil
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating Pub/Sub client.")
		return nil
	}
	return client
}

func NewAnalyticsPublisher(client *pubsub.Client) IAnalyticsPublisher {
	return &AnalyticsPublisher{client: client}
}

func (p *AnalyticsPublisher) Publish(ctx context.Context, event AnalyticsEvent) error {
	if p.client == nil {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := p.client.Topic(analyticsTopic)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		logger.GetLogger().WithField("topic", analyticsTopic).Info("Topic doesn't exist - creating it")
		if _, err := p.client.CreateTopic(ctx, analyticsTopic); err != nil {
			return err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().
		WithField("server ID", serverID).
		WithField("kind", event.Kind).
		Info("Analytics event published")
	return nil
}
