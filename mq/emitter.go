package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"encore/db"
	"encore/models"
	"encore/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const eventsChannel = "platform-events"

// Emit publishes a domain event to Redis for the background worker.
// Failures are logged and swallowed; event emission never fails a request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	payload := struct {
		Event string       `json:"event"`
		Index models.Index `json:"index"`
	}{Event: eventName, Index: content}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Emit] marshal failed for %s: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish failed for %s: %v", eventName, err)
	}
}

// StartEventWorker consumes platform events and maintains the per-entity
// activity trail used by dashboards.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] listening for platform events")

	for msg := range ch {
		var payload struct {
			Event string       `json:"event"`
			Index models.Index `json:"index"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("[EventWorker] bad payload: %v", err)
			continue
		}

		key := "activity:" + payload.Index.EntityType + ":" + payload.Index.EntityId
		entry, _ := json.Marshal(map[string]any{
			"event": payload.Event,
			"at":    time.Now().UTC().Format(time.RFC3339),
		})
		if err := rdx.Conn.LPush(ctx, key, entry).Err(); err != nil {
			log.Printf("[EventWorker] lpush failed: %v", err)
			continue
		}
		rdx.Conn.LTrim(ctx, key, 0, 99)
	}
}

// StartCommsDrainer periodically marks due scheduled fan communications as
// sent. Delivery itself is owned by the mail/push provider; this loop only
// advances queue state.
func StartCommsDrainer(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		now := time.Now().UTC()
		filter := bson.M{
			"status":  models.CommScheduled,
			"send_at": bson.M{"$lte": now},
		}
		update := bson.M{"$set": bson.M{"status": models.CommSent, "sent_at": now}}

		res, err := db.FanCommsCollection.UpdateMany(context.TODO(), filter, update)
		if err != nil {
			log.Printf("[CommsDrainer] update failed: %v", err)
			continue
		}
		if res.ModifiedCount > 0 {
			log.Printf("[CommsDrainer] marked %d comms sent", res.ModifiedCount)
		}
	}
}
