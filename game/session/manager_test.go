package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
)

func testConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:               "Session Test",
		Description:        "Fixed 3x3 level",
		GridSize:           3,
		Layout:             []string{".M.", "..M", "..."},
		MoveTimeoutSeconds: 0,
		Messages: engine.Messages{
			Welcome: "Welcome!",
			Victory: "Done: %d of %d",
		},
	}
}

func TestManager_CreateWithID(t *testing.T) {
	m := NewManager()

	session, err := m.Create("abcd", "test", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID != "abcd" {
		t.Errorf("Expected ID abcd, got %s", session.ID)
	}
	if session.ConfigID != "test" {
		t.Errorf("Expected config id test, got %s", session.ConfigID)
	}
	if session.Engine == nil {
		t.Fatal("Expected engine to be set")
	}
	if session.CreatedAt.IsZero() || !session.CreatedAt.Equal(session.LastAccessedAt) {
		t.Error("Expected CreatedAt and LastAccessedAt to be set to the same time")
	}
	if got := session.Engine.GetState().MaxMushrooms; got != 2 {
		t.Errorf("Expected max mushrooms 2, got %d", got)
	}
}

func TestManager_CreateGeneratesID(t *testing.T) {
	m := NewManager()

	session, err := m.Create("", "test", testConfig())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(session.ID) != 4 {
		t.Errorf("Expected 4-character id, got %q", session.ID)
	}
	for _, r := range session.ID {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Errorf("Expected hex id, got %q", session.ID)
			break
		}
	}
}

func TestManager_CreateErrors(t *testing.T) {
	m := NewManager()

	if _, err := m.Create("dup1", "test", testConfig()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.Create("DUP1", "test", testConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists for case-insensitive duplicate, got %v", err)
	}
	if _, err := m.Create("../x", "test", testConfig()); !errors.Is(err, ErrInvalidSessionID) {
		t.Errorf("Expected ErrInvalidSessionID, got %v", err)
	}

	bad := testConfig()
	bad.GridSize = 1
	if _, err := m.Create("bad1", "test", bad); err == nil {
		t.Error("Expected error for invalid config")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestManager_Get(t *testing.T) {
	m := NewManager()
	created, _ := m.Create("get1", "test", testConfig())

	got, err := m.Get("GET1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Error("Expected the same session pointer")
	}

	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	m := NewManager()

	first, err := m.GetOrCreate("goc1", "test", testConfig())
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := m.GetOrCreate("goc1", "other", testConfig())
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected existing session to be returned")
	}
	if second.ConfigID != "test" {
		t.Errorf("Expected original config id, got %s", second.ConfigID)
	}
}

func TestManager_ListOrdered(t *testing.T) {
	m := NewManager()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"ccc", "aaa", "bbb"} {
		if _, err := m.Create(id, "test", testConfig()); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	list := m.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(list))
	}
	for i, want := range []string{"ccc", "aaa", "bbb"} {
		if list[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	m.Create("del1", "test", testConfig())

	if err := m.Delete("del1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := m.Get("del1"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected session to be gone")
	}
	if err := m.Delete("del1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	m := NewManager()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	session, _ := m.Create("upd1", "test", testConfig())

	now = now.Add(time.Hour)
	if err := m.UpdateLastAccessed("upd1"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.Equal(now) {
		t.Errorf("Expected LastAccessedAt %v, got %v", now, session.LastAccessedAt)
	}
	if err := m.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	m := NewManager()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Create("old1", "test", testConfig())
	now = now.Add(2 * time.Hour)
	m.Create("new1", "test", testConfig())

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := m.Get("old1"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected old session to be removed")
	}
	if _, err := m.Get("new1"); err != nil {
		t.Errorf("Expected new session to remain, got %v", err)
	}
}

func TestManager_SaveWithoutPersistence(t *testing.T) {
	m := NewManager()
	if err := m.Save("whatever"); err != nil {
		t.Errorf("Expected no-op save without persistence, got %v", err)
	}
	if err := m.SaveAllSessions(); err != nil {
		t.Errorf("Expected no-op SaveAllSessions, got %v", err)
	}
	if err := m.LoadPersistedSessions(); err != nil {
		t.Errorf("Expected no-op LoadPersistedSessions, got %v", err)
	}
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager()
	a, _ := m.Create("s-a", "test", testConfig())
	b, _ := m.Create("s-b", "test", testConfig())

	if !a.Engine.Move(engine.Right) {
		t.Fatal("Expected right move to succeed")
	}
	if a.Engine.GetScore() != 1 {
		t.Errorf("Expected score 1 in session a, got %d", a.Engine.GetScore())
	}
	if b.Engine.GetScore() != 0 || b.Engine.GetPlayerPosition() != (engine.Position{}) {
		t.Error("Expected session b to be untouched")
	}
}

func TestManager_ConcurrentCreate(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := m.Create(fmt.Sprintf("c%02d", i), "test", testConfig()); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent create failed: %v", err)
	}
	if m.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", m.Count())
	}
}
