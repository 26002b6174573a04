package service

import (
	"encoding/json"
	"time"
)

// Notifier pushes realtime events to connected panels. *ws.Hub implements it.
type Notifier interface {
	Broadcast(data []byte)
	Publish(ownerID string, data []byte)
}

type nopNotifier struct{}

func (nopNotifier) Broadcast([]byte)       {}
func (nopNotifier) Publish(string, []byte) {}

// NopNotifier discards every event
var NopNotifier Notifier = nopNotifier{}

const (
	EventInventoryUpdate  = "inventory_update"
	EventUserStatusUpdate = "user_status_update"

	ActionProductAdded    = "product_added"
	ActionTakenOutToggled = "taken_out_toggled"
	ActionProductDeleted  = "product_deleted"
)

func inventoryEvent(action string, data interface{}) []byte {
	payload := map[string]interface{}{
		"type":   EventInventoryUpdate,
		"action": action,
		"data":   data,
	}
	msg, _ := json.Marshal(payload)
	return msg
}

func presenceEvent(userID, status string, at time.Time) []byte {
	payload := map[string]interface{}{
		"type":         EventUserStatusUpdate,
		"user_id":      userID,
		"status":       status,
		"last_seen_at": at,
	}
	msg, _ := json.Marshal(payload)
	return msg
}
