package appointment

import (
	"encoding/json"
	"testing"
	"time"

	"slotbook/models"
)

func TestDecodeStoredMalformedPayload(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"garbage", "not json at all"},
		{"truncated", `[{"id":"a1","start":"2024-06-`},
		{"wrong shape", `{"id":"a1"}`},
		{"empty payload", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeStored("schedule:appointments", []byte(tc.data))
			if len(got) != 0 {
				t.Errorf("decoded %d records from malformed payload, want empty collection", len(got))
			}
		})
	}
}

func TestDecodeStoredDropsInvalidRanges(t *testing.T) {
	valid := models.Appointment{
		ID:    "avail-1",
		Title: "Open for Booking",
		Start: time.Date(2024, 6, 4, 10, 0, 0, 0, time.Local),
		End:   time.Date(2024, 6, 4, 10, 30, 0, 0, time.Local),
		Type:  models.TypeAvailability,
	}
	inverted := models.Appointment{
		ID:    "bad-1",
		Start: time.Date(2024, 6, 4, 12, 0, 0, 0, time.Local),
		End:   time.Date(2024, 6, 4, 11, 0, 0, 0, time.Local),
		Type:  models.TypeAvailability,
	}
	zeroLength := models.Appointment{
		ID:    "bad-2",
		Start: time.Date(2024, 6, 4, 13, 0, 0, 0, time.Local),
		End:   time.Date(2024, 6, 4, 13, 0, 0, 0, time.Local),
		Type:  models.TypeMeeting,
	}

	data, err := json.Marshal([]models.Appointment{inverted, valid, zeroLength})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := decodeStored("schedule:appointments", data)
	if len(got) != 1 {
		t.Fatalf("decoded %d records, want 1 (invalid ranges dropped)", len(got))
	}
	if got[0].ID != valid.ID || got[0].Title != valid.Title || got[0].Type != valid.Type {
		t.Errorf("surviving record = %+v, want %+v", got[0], valid)
	}
	if !got[0].Start.Equal(valid.Start) || !got[0].End.Equal(valid.End) {
		t.Errorf("surviving record timestamps drifted: [%v, %v)", got[0].Start, got[0].End)
	}
}

func TestDecodeStoredRoundTrip(t *testing.T) {
	appts := []models.Appointment{
		{
			ID:            "m1",
			Title:         "Code review",
			Start:         time.Date(2024, 6, 4, 14, 0, 0, 0, time.Local),
			End:           time.Date(2024, 6, 4, 14, 45, 0, 0, time.Local),
			RequesterName: "Robin",
			Type:          models.TypeMeeting,
		},
	}
	data, err := json.Marshal(appts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := decodeStored("schedule:appointments", data)
	if len(got) != 1 {
		t.Fatalf("decoded %d records, want 1", len(got))
	}
	want := appts[0]
	if got[0].ID != want.ID || got[0].Title != want.Title ||
		got[0].RequesterName != want.RequesterName || got[0].Type != want.Type {
		t.Errorf("round-trip changed the record: got %+v, want %+v", got[0], want)
	}
	if !got[0].Start.Equal(want.Start) || !got[0].End.Equal(want.End) {
		t.Errorf("round-trip timestamps drifted: got [%v, %v), want [%v, %v)",
			got[0].Start, got[0].End, want.Start, want.End)
	}
}
