package mq

import (
	"context"
	"encoding/json"
	"log"

	"furnish/rdx"
)

// Index describes an entity-change event published for downstream consumers
// (search indexing, admin dashboards).
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

const channel = "entity-events"

// Emit publishes an entity-change event to Redis. Fire and forget; a dead
// Redis never fails the originating request.
func Emit(_ context.Context, eventName string, content Index) {
	if rdx.Conn == nil {
		return
	}

	payload := map[string]any{"event": eventName, "index": content}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}

	// Publish outlives the request; callers emit from goroutines.
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}
