package events

import (
	"encoding/json"
	"time"

	"outlay/internal/core"
)

// RecordAppendedMessage carries a full ledger record so the mirror
// worker can archive it without reading the source store.
type RecordAppendedMessage struct {
	Date        string    `json:"date"` // YYYY-MM-DD
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Note        string    `json:"note,omitempty"`
	Ref         string    `json:"ref"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordAppendedMessage builds a message from a record and its
// store reference.
func NewRecordAppendedMessage(r core.Record, ref string) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		Date:        r.Date.String(),
		Category:    r.Category,
		AmountCents: r.Amount.Cents,
		Note:        r.Note,
		Ref:         ref,
		Timestamp:   time.Now(),
	}
}

// Record reconstructs the ledger record carried by the message.
func (m *RecordAppendedMessage) Record() (core.Record, error) {
	date, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Date:     date,
		Category: m.Category,
		Amount:   core.Money{Cents: m.AmountCents},
		Note:     m.Note,
	}, nil
}

func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
