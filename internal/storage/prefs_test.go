package storage

import (
	"testing"
	"time"
)

func TestPrefsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	prefs := NewPrefs(store, nil)

	if got := prefs.GetInt("SelectedCharacter", 0); got != 0 {
		t.Errorf("Expected default 0, got %d", got)
	}

	prefs.SetInt("SelectedCharacter", 2)
	prefs.Flush()

	if got := prefs.GetInt("SelectedCharacter", 0); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}

func TestPrefsForUserIsolatesKeys(t *testing.T) {
	store := openTestStore(t)
	prefs := NewPrefs(store, nil)
	alice := prefs.ForUser("alice")
	bob := prefs.ForUser("bob")

	alice.SetInt("HighScore", 30)
	bob.SetInt("HighScore", 12)
	prefs.SetInt("HighScore", 5)

	if got := alice.GetInt("HighScore", 0); got != 30 {
		t.Errorf("alice HighScore = %d, want 30", got)
	}
	if got := bob.GetInt("HighScore", 0); got != 12 {
		t.Errorf("bob HighScore = %d, want 12", got)
	}
	if got := prefs.GetInt("HighScore", 0); got != 5 {
		t.Errorf("global HighScore = %d, want 5", got)
	}
	if prefs.ForUser("") != prefs {
		t.Error("ForUser(\"\") should return the global prefs")
	}
}

func TestPrefsRecordRun(t *testing.T) {
	store := openTestStore(t)
	prefs := NewPrefs(store, nil)

	prefs.RecordRun(11, 3, 10*time.Second, "Bouncer")

	top, err := store.TopRuns(1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 1 || top[0].Score != 11 || top[0].Coins != 3 {
		t.Errorf("Unexpected runs: %+v", top)
	}
}

func TestPrefsSwallowsErrorsAfterClose(t *testing.T) {
	store := openTestStore(t)
	prefs := NewPrefs(store, nil)
	store.Close()

	// Must not panic; reads fall back to the default
	prefs.SetInt("HighScore", 1)
	prefs.Flush()
	if got := prefs.GetInt("HighScore", 42); got != 42 {
		t.Errorf("Expected default 42 on closed store, got %d", got)
	}
}

func TestMemoryPrefs(t *testing.T) {
	m := NewMemoryPrefs()

	if got := m.GetInt("TotalCoins", 5); got != 5 {
		t.Errorf("Expected default 5, got %d", got)
	}
	m.SetInt("TotalCoins", 9)
	if got := m.GetInt("TotalCoins", 5); got != 9 {
		t.Errorf("Expected 9, got %d", got)
	}

	m.Flush()
	m.Flush()
	if m.Flushes() != 2 {
		t.Errorf("Expected 2 flushes, got %d", m.Flushes())
	}

	m.RecordRun(4, 1, time.Second, "Dart")
	runs := m.Runs()
	if len(runs) != 1 || runs[0].Character != "Dart" || runs[0].ID != 1 {
		t.Errorf("Unexpected runs: %+v", runs)
	}
}
