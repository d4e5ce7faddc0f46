package awesomemap

import (
	"math"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestData opens a gdata manager under a throwaway home directory.
func openTestData(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	m, err := gdata.Open(gdata.Config{AppName: "awesomemap_test"})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return m
}

func TestStateStoreWithoutManager(t *testing.T) {
	s := NewStateStore(nil, quietLogger())
	if s.Persistent() {
		t.Error("store without manager reports persistent")
	}
	if err := s.Save("main", TransformState{TranslateX: 1, Scale: 2}); err != nil {
		t.Fatalf("Save = %v", err)
	}
	state, ok, err := s.Load("main")
	if err != nil || ok {
		t.Fatalf("Load = %v, %v, %v; want identity, false, nil", state, ok, err)
	}
	if !state.Equals(IdentityState()) {
		t.Errorf("Load state = %v, want identity", state)
	}
}

func TestStateStoreRoundTrip(t *testing.T) {
	s := NewStateStore(openTestData(t), quietLogger())
	if !s.Persistent() {
		t.Fatal("store with manager is not persistent")
	}

	want := TransformState{TranslateX: -120.5, TranslateY: 40, Scale: 1.75}
	if err := s.Save("main", want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Load("main")
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if !got.Equals(want) {
		t.Errorf("Load = %v, want %v", got, want)
	}

	if _, ok, _ := s.Load("other"); ok {
		t.Error("missing key loaded")
	}
}

func TestStateStoreRejectsInvalidState(t *testing.T) {
	data := openTestData(t)
	s := NewStateStore(data, quietLogger())

	if err := s.Save("nan", TransformState{TranslateX: math.NaN(), Scale: 1}); err == nil {
		t.Error("Save accepted NaN state")
	}

	// A stored zero scale cannot be used and falls back to identity.
	if err := data.SaveObjectProp(stateObject, "flat", []byte("translateX: 3\ntranslateY: 4\nscale: 0\n")); err != nil {
		t.Fatal(err)
	}
	state, ok, err := s.Load("flat")
	if err != nil || ok || !state.Equals(IdentityState()) {
		t.Errorf("Load = %v, %v, %v; want identity, false, nil", state, ok, err)
	}

	if err := data.SaveObjectProp(stateObject, "junk", []byte("scale: [")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Load("junk"); err == nil {
		t.Error("Load accepted malformed data")
	}
}
