package store

import (
	"reflect"
	"testing"

	"github.com/oculab/octascan-api/internal/models"
)

func TestCollectionRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	reports := NewCollection[models.Report](backend, "reports")

	fluid := 32.5
	want := models.Report{
		ID:              "r1",
		PatientID:       "p1",
		PatientName:     "Sheyab",
		DoctorID:        "doc1",
		DoctorName:      "Dr. Mahmood",
		ImageURL:        "data:image/png;base64,xxx",
		Diagnosis:       "DME",
		Confidence:      95,
		Date:            "2024-01-01T10:00:00Z",
		Status:          models.StatusPending,
		Type:            models.TypeFluid,
		FluidPercentage: &fluid,
	}
	if err := reports.Upsert(want); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// A fresh collection over the same backend must see a deep-equal value.
	reloaded := NewCollection[models.Report](backend, "reports")
	got, ok := reloaded.Get("r1")
	if !ok {
		t.Fatal("report not found after reload")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestCollectionAbsentAndMalformed(t *testing.T) {
	backend := NewMemoryBackend()

	empty := NewCollection[models.Message](backend, "messages")
	if n := empty.Len(); n != 0 {
		t.Errorf("absent collection Len() = %d, want 0", n)
	}

	if err := backend.Put("messages", []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	malformed := NewCollection[models.Message](backend, "messages")
	if n := malformed.Len(); n != 0 {
		t.Errorf("malformed collection Len() = %d, want 0", n)
	}
}

func TestCollectionUpsertReplaces(t *testing.T) {
	backend := NewMemoryBackend()
	msgs := NewCollection[models.Message](backend, "messages")

	m := models.Message{ID: "m1", SenderID: "a", ReceiverID: "b", Content: "hi", Timestamp: "2024-01-01T00:00:00Z"}
	if err := msgs.Upsert(m); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	m.Read = true
	if err := msgs.Upsert(m); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if msgs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", msgs.Len())
	}
	got, _ := msgs.Get("m1")
	if !got.Read {
		t.Error("replacement was not applied")
	}
}

func TestCollectionPreservesInsertionOrder(t *testing.T) {
	backend := NewMemoryBackend()
	docs := NewCollection[models.Doctor](backend, "doctors")
	for _, id := range []string{"doc3", "doc1", "doc2"} {
		if err := docs.Upsert(models.Doctor{ID: id}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	reloaded := NewCollection[models.Doctor](backend, "doctors")
	var got []string
	for _, d := range reloaded.All() {
		got = append(got, d.ID)
	}
	want := []string{"doc3", "doc1", "doc2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order after reload = %v, want %v", got, want)
	}
}

func TestSession(t *testing.T) {
	backend := NewMemoryBackend()
	session := NewSession(backend)

	user := models.User{ID: "u1", Email: "a@b.c", Password: "hash", Name: "A", Role: models.RolePatient}
	if err := session.Set(user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := session.Get()
	if !ok {
		t.Fatal("session not found after Set")
	}
	if got.Password != "" {
		t.Error("session record must not carry the password hash")
	}
	if got.ID != "u1" || got.Email != "a@b.c" {
		t.Errorf("unexpected session record: %+v", got)
	}

	if err := session.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := session.Get(); ok {
		t.Error("session still present after Clear")
	}
}
