package events

import (
	"encoding/json"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

const (
	KindPurchase = "purchase"
	KindSale     = "sale"
)

// TransactionEvent mirrors one completed ledger operation so the
// ledger worker can archive it outside the request path.
type TransactionEvent struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	ItemName  string    `json:"item_name"`
	Gold      int       `json:"gold"`
	Silver    int       `json:"silver"`
	Copper    int       `json:"copper"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionEvent builds an event from a just-recorded transaction.
func NewTransactionEvent(sessionID, kind string, t core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		SessionID: sessionID,
		Kind:      kind,
		ItemName:  t.ItemName,
		Gold:      t.Price.Gold,
		Silver:    t.Price.Silver,
		Copper:    t.Price.Copper,
		Timestamp: time.Now(),
	}
}

// Money returns the event's amount as a core value.
func (e *TransactionEvent) Money() core.Money {
	return core.Money{Gold: e.Gold, Silver: e.Silver, Copper: e.Copper}
}

// ToJSON converts the event to JSON bytes.
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON creates an event from JSON bytes.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
