package events

import (
	"context"

	awspkg "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/aws"
)

// SNSPublisher fans events out through an SNS topic.
type SNSPublisher struct {
	client    awspkg.SNSPublisher
	topicArn  string
	eventType string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicArn, eventType string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn, eventType: eventType}
}

func (p *SNSPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.client.Publish(ctx, p.topicArn, payload, map[string]string{
		"event_type": p.eventType,
		"key":        key,
	})
}

func (p *SNSPublisher) Close() error { return nil }
