package watcher

// EventType defines the type of event being broadcast.
type EventType string

const (
	EventBalanceUpdated    EventType = "balance_updated"
	EventBalanceError      EventType = "balance_error"
	EventTransferProgress  EventType = "transfer_progress"
	EventTransferConfirmed EventType = "transfer_confirmed"
)

// Event represents a wallet event.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Subscriber is a channel that receives events.
type Subscriber chan Event
