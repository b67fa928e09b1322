package events

import "time"

const (
	UserCreated        = "user.created"
	UserRenamed        = "user.renamed"
	TransactionCreated = "transaction.created"
)

// DefaultStream is used when no stream name is configured.
const DefaultStream = "ledger.events"

// Event is the envelope written to the stream under the "event" field.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type UserRenamedEvent struct {
	UserID  int64  `json:"userId"`
	OldName string `json:"oldName"`
	Name    string `json:"name"`
}

// TransactionCreatedEvent is published once per committed ledger operation.
// Type is the DEPOSIT/WITHDRAW/TRANSFER label.
type TransactionCreatedEvent struct {
	TransactionID int64  `json:"transactionId"`
	Type          string `json:"type"`
	Amount        int64  `json:"amount"`
	UserID        int64  `json:"userId"`
	FromID        *int64 `json:"fromId,omitempty"`
	ToID          *int64 `json:"toId,omitempty"`
}
