package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/pubsub"

	"github.com/peakform/storefront-api/internal/services"
)

// PubSubCartActivityPublisher publishes cart activity events to a Pub/Sub topic.
type PubSubCartActivityPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubCartActivityPublisher constructs a Pub/Sub backed cart activity publisher.
func NewPubSubCartActivityPublisher(topic *pubsub.Topic) (*PubSubCartActivityPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub cart activity publisher: topic is required")
	}
	return &PubSubCartActivityPublisher{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

// PublishCartActivity enqueues a cart activity message on the configured topic.
func (p *PubSubCartActivityPublisher) PublishCartActivity(ctx context.Context, message services.CartActivityMessage) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub cart activity publisher: not initialised")
	}

	data, err := p.marshal(message)
	if err != nil {
		return "", fmt.Errorf("marshal cart activity: %w", err)
	}

	attrs := make(map[string]string)
	setAttr(attrs, "shopperId", message.ShopperID)
	setAttr(attrs, "productId", message.ProductID)
	if message.Quantity > 0 {
		attrs["quantity"] = strconv.Itoa(message.Quantity)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish cart activity: %w", err)
	}
	return id, nil
}

func setAttr(attrs map[string]string, key string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
