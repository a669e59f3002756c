package events

import (
	"testing"

	"outlay/internal/core"
)

func TestRecordAppendedMessageRoundTrip(t *testing.T) {
	r := core.Record{
		Date:     core.NewDate(2024, 1, 2),
		Category: "Travel",
		Amount:   core.Money{Cents: 2000},
		Note:     "train",
	}

	msg := NewRecordAppendedMessage(r, "csv:7")
	if msg.Date != "2024-01-02" || msg.Ref != "csv:7" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := RecordAppendedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := decoded.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got != r {
		t.Fatalf("expected %+v, got %+v", r, got)
	}
}

func TestRecordAppendedMessageBadDate(t *testing.T) {
	msg := &RecordAppendedMessage{Date: "not-a-date", Category: "Food", AmountCents: 100}
	if _, err := msg.Record(); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestRecordAppendedMessageFromBadJSON(t *testing.T) {
	if _, err := RecordAppendedMessageFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
}
