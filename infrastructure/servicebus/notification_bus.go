package servicebus

import (
	"context"
	"encoding/json"

	"creedava-api/domain/model"
	"creedava-api/infrastructure/configuration"
	"creedava-api/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

type INotificationBus interface {
	SendLeadAlert(ctx context.Context, lead *model.Lead) error
}

type NotificationBus struct {
	client *azservicebus.Client
	queue  string
}

// NewServiceBus creates the Service Bus client from the configured namespace.
// Returns nil when no namespace is configured so alerts degrade to no-ops.
func NewServiceBus() *azservicebus.Client {
	namespace := configuration.C.ServiceBus.Namespace
	if namespace == "" {
		logger.GetLogger().Warn("Service Bus namespace not configured, lead alerts disabled")
		return nil
	}
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating Azure credential.")
		return nil
	}
	client, err := azservicebus.NewClient(namespace, credential, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating Service Bus client.")
		return nil
	}
	return client
}

func NewNotificationBus(client *azservicebus.Client) INotificationBus {
	return &NotificationBus{client: client, queue: configuration.C.ServiceBus.Queue}
}

// SendLeadAlert pushes the captured lead onto the alerts queue so the
// sales team gets notified out of band.
func (b *NotificationBus) SendLeadAlert(ctx context.Context, lead *model.Lead) error {
	if b.client == nil {
		return nil
	}
	sender, err := b.client.NewSender(b.queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		if err := sender.Close(ctx); err != nil {
			logger.GetLogger().
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender, ctx)

	body, err := json.Marshal(lead)
	if err != nil {
		return err
	}
	if err := sender.SendMessage(ctx, &azservicebus.Message{Body: body}, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}
