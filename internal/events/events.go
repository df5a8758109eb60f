// Package events announces data changes so observers of the shopping list can
// refresh their state after every mutation.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Entities and actions carried in ChangeEvent.
const (
	EntityProduct  = "product"
	EntityCategory = "category"
	EntityUser     = "user"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionPurged  = "purged"
)

// Publisher delivers an encoded event under a routing key.
// *rabbitmq.Client satisfies it.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// ChangeEvent describes one committed change.
type ChangeEvent struct {
	EventID    string    `json:"event_id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         uint      `json:"id,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is "<entity>.<action>".
func (e ChangeEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Notifier stamps and publishes change events. A nil *Notifier, or one
// without a publisher, silently drops events.
type Notifier struct {
	pub Publisher
	now func() time.Time
}

// NewNotifier creates a Notifier backed by pub.
func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{pub: pub, now: time.Now}
}

// Notify publishes a change of a single row.
func (n *Notifier) Notify(entity, action string, id uint) {
	n.Publish(ChangeEvent{Entity: entity, Action: action, ID: id})
}

// Publish fills in EventID and OccurredAt when unset and sends ev.
// Failures are logged; the change itself has already been committed.
func (n *Notifier) Publish(ev ChangeEvent) {
	if n == nil || n.pub == nil {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = n.now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", ev.RoutingKey(), err)
		return
	}
	if err := n.pub.Publish(ev.RoutingKey(), body); err != nil {
		log.Printf("Warning: failed to publish %s event for ID %d: %v", ev.RoutingKey(), ev.ID, err)
	}
}
