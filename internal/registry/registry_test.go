package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
)

func roster() []config.CharacterProfile {
	return []config.CharacterProfile{
		{Name: "Bouncer", Glyph: "●", Color: "yellow"},
		{Name: "Floater", Glyph: "◉", Color: "cyan"},
		{Name: "Dart", Glyph: "◆", Color: "magenta"},
	}
}

func TestRegistryGet(t *testing.T) {
	r := New(roster())

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{0, "Bouncer", false},
		{2, "Dart", false},
		{3, "", true},
		{-1, "", true},
	}

	for _, tc := range tests {
		p, err := r.Get(tc.index)
		if tc.wantErr {
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("Get(%d) error = %v, want ErrIndexOutOfRange", tc.index, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", tc.index, err)
		}
		if p.Name != tc.want {
			t.Errorf("Get(%d) = %q, want %q", tc.index, p.Name, tc.want)
		}
	}
}

func TestRegistryListAndLookup(t *testing.T) {
	r := New(roster())

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 characters, got %d", len(list))
	}
	if list[1].Name != "Floater" || list[1].Glyph != '◉' || list[1].Index != 1 {
		t.Errorf("Unexpected entry: %+v", list[1])
	}

	if i, ok := r.Lookup("dart"); !ok || i != 2 {
		t.Errorf("Lookup(dart) = %d, %v", i, ok)
	}
	if _, ok := r.Lookup("nobody"); ok {
		t.Error("Lookup(nobody) should fail")
	}
}

func TestRegistryNextWraps(t *testing.T) {
	r := New(roster())
	if got := r.Next(0); got != 1 {
		t.Errorf("Next(0) = %d, want 1", got)
	}
	if got := r.Next(2); got != 0 {
		t.Errorf("Next(2) = %d, want 0", got)
	}
	if got := New(nil).Next(5); got != 0 {
		t.Errorf("Next on empty registry = %d, want 0", got)
	}
}

func TestRegistryCopiesRoster(t *testing.T) {
	profiles := roster()
	r := New(profiles)
	profiles[0].Name = "Changed"

	p, _ := r.Get(0)
	if p.Name != "Bouncer" {
		t.Errorf("Registry should not alias the caller's slice, got %q", p.Name)
	}

	r.Replace(profiles[:1])
	if r.Len() != 1 || r.Exists(1) {
		t.Errorf("Replace did not shrink the roster")
	}
}
