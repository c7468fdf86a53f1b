package services

import (
	"testing"
	"time"

	"mathquiz/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()

	if session, err := store.Get("Ava"); err != nil || session != nil {
		t.Fatalf("empty store Get = (%v, %v), want (nil, nil)", session, err)
	}

	saved := &models.Session{Name: "Ava", Questions: []models.Question{{A: 1, B: 2, Op: models.OpAdd, Answer: 3}}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get("Ava")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ava" || len(got.Questions) != 1 {
		t.Errorf("unexpected session: %+v", got)
	}

	// The store hands out copies; mutating one must not leak back.
	got.CurrentIndex = 5
	again, _ := store.Get("Ava")
	if again.CurrentIndex != 0 {
		t.Error("store returned a shared session value")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemorySessionStore()

	store.Save(&models.Session{Name: "Ava", SessionScore: 3})
	store.Save(&models.Session{Name: "Ava", SessionScore: 8})

	got, _ := store.Get("Ava")
	if got.SessionScore != 8 {
		t.Errorf("overwrite kept old session: %+v", got)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()

	store.Save(&models.Session{Name: "Ava"})
	if err := store.Delete("Ava"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if session, _ := store.Get("Ava"); session != nil {
		t.Errorf("session survived delete: %+v", session)
	}

	// Deleting an absent key is fine.
	if err := store.Delete("Nobody"); err != nil {
		t.Errorf("delete of absent key: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	store.Save(&models.Session{Name: "Ava"})

	store.mu.Lock()
	entry := store.sessions["Ava"]
	entry.expiresAt = time.Now().Add(-time.Minute)
	store.sessions["Ava"] = entry
	store.mu.Unlock()

	if session, err := store.Get("Ava"); err != nil || session != nil {
		t.Errorf("expired session still readable: (%v, %v)", session, err)
	}
}
