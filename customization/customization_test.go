package customization

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"skintone-studio/logger"
	"skintone-studio/models"
)

type fakeStore struct {
	data    map[string]models.MaterialValues
	saves   int
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]models.MaterialValues{}}
}

func (f *fakeStore) Load(_ context.Context, productID string) (models.MaterialValues, error) {
	if f.failing {
		return nil, errors.New("storage unavailable")
	}
	return f.data[productID].Clone(), nil
}

func (f *fakeStore) Save(_ context.Context, productID string, values models.MaterialValues) error {
	if f.failing {
		return errors.New("storage unavailable")
	}
	f.saves++
	f.data[productID] = values.Clone()
	return nil
}

func (f *fakeStore) Clear(_ context.Context, productID string) error {
	if f.failing {
		return errors.New("storage unavailable")
	}
	delete(f.data, productID)
	return nil
}

func TestSetAndClear(t *testing.T) {
	s := NewState()
	s.SetColor("Sleeve", "#ff0000")
	s.SetSkinTone("Collar", "custom")
	want := models.MaterialValues{
		"Sleeve": {Type: models.MaterialValueColor, Value: "#ff0000"},
		"Collar": {Type: models.MaterialValueSkinTone, Value: "custom"},
	}
	if diff := cmp.Diff(want, s.Values()); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}

	s.SetColor("Sleeve", "")
	s.SetSkinTone("Collar", "  ")
	if s.Len() != 0 {
		t.Fatalf("empty values should delete keys, got %v", s.Values())
	}
}

func TestSelection(t *testing.T) {
	s := NewState()
	if _, ok := s.Selected(); ok {
		t.Fatal("new state has a selection")
	}
	s.Select("Sleeve")
	if got, ok := s.Selected(); !ok || got != "Sleeve" {
		t.Fatalf("selected = %q,%v", got, ok)
	}
	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Fatal("selection not cleared")
	}
}

func TestCompleteness(t *testing.T) {
	s := NewState()
	required := []string{"Sleeve", "Collar"}
	if !s.IsComplete(nil) {
		t.Fatal("no requirement is complete")
	}
	s.SetColor("Sleeve", "#ff0000")
	if s.IsComplete(required) {
		t.Fatal("collar missing")
	}
	if diff := cmp.Diff([]string{"Collar"}, s.Missing(required)); diff != "" {
		t.Fatalf("missing (-want +got):\n%s", diff)
	}
	s.SetSkinTone("Collar", "fitzpatrick-2a")
	if !s.IsComplete(required) {
		t.Fatal("all materials painted")
	}
	s.Clear("Sleeve")
	if s.IsComplete(required) {
		t.Fatal("clearing a material must make the state incomplete")
	}
}

func TestPersisterRefusesEmptyOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := NewPersister(store, logger.NewNop())

	s := NewState()
	s.SetColor("Sleeve", "#ff0000")
	p.Save(ctx, "prod_1", s)

	p.Save(ctx, "prod_1", NewState())
	if diff := cmp.Diff(s.Values(), store.data["prod_1"]); diff != "" {
		t.Fatalf("stored snapshot was overwritten (-want +got):\n%s", diff)
	}

	p.Clear(ctx, "prod_1")
	if _, ok := store.data["prod_1"]; ok {
		t.Fatal("explicit clear should remove the snapshot")
	}
}

func TestPersisterRestore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := NewPersister(store, logger.NewNop())

	populated := NewState()
	populated.SetColor("Sleeve", "#00ff00")
	if p.Restore(ctx, "prod_1", populated) {
		t.Fatal("empty restore must not replace a populated state")
	}
	if populated.Len() != 1 {
		t.Fatal("populated state was clobbered")
	}

	store.data["prod_1"] = models.MaterialValues{"Collar": {Type: models.MaterialValueColor, Value: "#0000ff"}}
	fresh := NewState()
	if !p.Restore(ctx, "prod_1", fresh) {
		t.Fatal("restore should apply a stored snapshot")
	}
	if v, _ := fresh.Get("Collar"); v.Value != "#0000ff" {
		t.Fatalf("restored value = %+v", v)
	}
}

func TestPersisterSwallowsStorageErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.failing = true
	p := NewPersister(store, logger.NewNop())

	s := NewState()
	s.SetColor("Sleeve", "#ff0000")
	p.Save(ctx, "prod_1", s)
	if p.Restore(ctx, "prod_1", s) {
		t.Fatal("failed restore reported success")
	}
	p.Clear(ctx, "prod_1")
	if s.Len() != 1 {
		t.Fatal("in-memory state must survive storage failures")
	}
}

func TestPersisterSyncPicksUpForeignWrites(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := NewPersister(store, logger.NewNop())

	s := NewState()
	s.SetColor("Sleeve", "#ff0000")
	p.Save(ctx, "prod_1", s)
	seen := s.Values()

	// Cleared locally, the refused save leaves the stored snapshot as it was seen
	s.SetColor("Sleeve", "")
	if p.Save(ctx, "prod_1", s) {
		t.Fatal("empty snapshot was written")
	}
	seen, ok := p.Sync(ctx, "prod_1", s, seen)
	if !ok || s.Len() != 0 {
		t.Fatalf("unchanged store resurrected state: %v", s.Values())
	}

	// Another writer moved the store on
	other := NewState()
	other.SetColor("Collar", "#0000ff")
	p.Save(ctx, "prod_1", other)
	if _, ok := p.Sync(ctx, "prod_1", s, seen); !ok {
		t.Fatal("sync failed")
	}
	if diff := cmp.Diff(other.Values(), s.Values()); diff != "" {
		t.Fatalf("synced state (-want +got):\n%s", diff)
	}
}
