package core

import (
	"testing"
	"time"
)

func TestGlassGroupMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	in := GlassGroup{
		Id:          42,
		ExternalId:  "G0001",
		Name:        "Universal 6.1",
		Brands:      "HOCO, Shared",
		Description: "Fits most 6.1 inch panels",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	bs := make([]byte, GlassGroupMUS.Size(in))
	if n := GlassGroupMUS.Marshal(in, bs); n != len(bs) {
		t.Fatalf("Marshal wrote %d bytes, Size said %d", n, len(bs))
	}

	out, n, err := GlassGroupMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n != len(bs) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(bs))
	}
	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}

	if n, err := GlassGroupMUS.Skip(bs); err != nil || n != len(bs) {
		t.Errorf("Skip = (%d, %v), want (%d, nil)", n, err, len(bs))
	}
}

func TestBotEventMUS_RoundTrip(t *testing.T) {
	in := BotEvent{
		Id:        7,
		UserId:    123456789,
		Type:      EventSearch,
		Payload:   map[string]string{"query": "a13"},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	bs := make([]byte, BotEventMUS.Size(in))
	BotEventMUS.Marshal(in, bs)

	out, _, err := BotEventMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Id != in.Id || out.UserId != in.UserId || out.Type != in.Type {
		t.Errorf("round trip mismatch: got %+v", out)
	}
	if out.Payload["query"] != "a13" {
		t.Errorf("payload lost: %v", out.Payload)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestTimeMUS_ZeroValue(t *testing.T) {
	var zero time.Time
	bs := make([]byte, timeMUS.Size(zero))
	timeMUS.Marshal(zero, bs)
	out, _, err := timeMUS.Unmarshal(bs)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !out.IsZero() {
		t.Errorf("zero time did not round trip: %v", out)
	}
}
