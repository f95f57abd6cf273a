package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
	"skintone-studio/scene"
)

// fakeScenes reports fixed required materials per product
type fakeScenes struct {
	required map[string][]string
}

func (f *fakeScenes) Viewer(ctx context.Context, productID string, kind scene.ViewerKind) (*scene.Viewer, error) {
	return nil, ErrNo3DModel
}

func (f *fakeScenes) Materials(ctx context.Context, productID string, kind scene.ViewerKind) (*models.SceneMaterialsResponse, error) {
	ids := f.required[productID]
	if len(ids) == 0 {
		return &models.SceneMaterialsResponse{ProductID: productID, Viewer: string(kind), Status: "unavailable", Materials: []string{}}, nil
	}
	return &models.SceneMaterialsResponse{ProductID: productID, Viewer: string(kind), Status: "ready", Materials: ids}, nil
}

func (f *fakeScenes) RequiredMaterials(ctx context.Context, productID string) ([]string, error) {
	return f.required[productID], nil
}

// fakeProfiles keeps customer metadata in memory
type fakeProfiles struct {
	data  map[string]*models.CustomerMetadata
	calls int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{data: make(map[string]*models.CustomerMetadata)}
}

func (f *fakeProfiles) GetMetadata(ctx context.Context, customerID string) (*models.CustomerMetadata, error) {
	f.calls++
	m, ok := f.data[customerID]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeProfiles) MergeMetadata(ctx context.Context, customerID string, patch map[string]interface{}) (*models.CustomerMetadata, error) {
	m, ok := f.data[customerID]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	for k, v := range patch {
		s, _ := v.(string)
		switch k {
		case "skin_tone":
			m.SkinTone = s
		case "custom_skin_color":
			m.CustomSkinColor = s
		case "profile_completed":
			m.ProfileCompleted = s
		}
	}
	cp := *m
	return &cp, nil
}

// fakeCarts records added line items
type fakeCarts struct {
	lines []*models.CartLine
}

func (f *fakeCarts) AddLineItem(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	cp := *line
	cp.ID = int64(len(f.lines) + 1)
	f.lines = append(f.lines, &cp)
	return &cp, nil
}

const (
	testSession = "sess-1"
	testProduct = "prod_01"
)

func newTestCustomizations(store repository.SessionStore) *CustomizationService {
	scenes := &fakeScenes{required: map[string][]string{
		testProduct: {"Bodice", "Sleeve_Material"},
	}}
	return NewCustomizationService(store, scenes, palette.Default(), time.Hour, logger.NewNop())
}

func TestCustomizationSetAndComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestCustomizations(repository.NewMemorySessionStore(0))

	resp, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "ff0000"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Complete {
		t.Fatal("complete with one of two materials painted")
	}
	if diff := cmp.Diff([]string{"Sleeve_Material"}, resp.MissingMaterials); diff != "" {
		t.Fatalf("missing (-want +got):\n%s", diff)
	}
	if resp.Message != "Color all materials to add to cart" {
		t.Fatalf("message = %q", resp.Message)
	}

	resp, err = svc.SetMaterial(ctx, testSession, testProduct, "Sleeve_Material", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: "fitzpatrick-3e"})
	if err != nil {
		t.Fatal(err)
	}
	want := models.MaterialValues{
		"Bodice":          {Type: models.MaterialValueColor, Value: "#ff0000"},
		"Sleeve_Material": {Type: models.MaterialValueSkinTone, Value: "fitzpatrick-3e"},
	}
	if diff := cmp.Diff(want, resp.Materials); diff != "" {
		t.Fatalf("materials (-want +got):\n%s", diff)
	}
	if !resp.Complete || resp.Message != "" {
		t.Fatalf("want complete, got %+v", resp)
	}
}

func TestCustomizationRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestCustomizations(repository.NewMemorySessionStore(0))

	cases := []struct {
		name     string
		product  string
		material string
		value    models.MaterialValue
		want     error
	}{
		{"bad hex", testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#12345"}, ErrInvalidMaterialValue},
		{"unknown tone", testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: "nope"}, ErrInvalidMaterialValue},
		{"unknown type", testProduct, "Bodice", models.MaterialValue{Type: "pattern", Value: "x"}, ErrInvalidMaterialValue},
		{"unknown material", testProduct, "Collar", models.MaterialValue{Type: models.MaterialValueColor, Value: "#ffffff"}, ErrUnknownMaterial},
		{"no model", "prod_flat", "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#ffffff"}, ErrCustomizationDisabled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetMaterial(ctx, testSession, tc.product, tc.material, tc.value)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCustomizationSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	first := newTestCustomizations(store)
	if _, err := first.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#00ff00"}); err != nil {
		t.Fatal(err)
	}

	second := newTestCustomizations(store)
	got, err := second.Values(ctx, testSession, testProduct)
	if err != nil {
		t.Fatal(err)
	}
	want := models.MaterialValues{"Bodice": {Type: models.MaterialValueColor, Value: "#00ff00"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("restored (-want +got):\n%s", diff)
	}

	other, err := second.Values(ctx, "sess-2", testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("other session sees %v", other)
	}
}

func TestCustomizationClear(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	svc := newTestCustomizations(store)
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: "fitzpatrick-3e"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(ctx, testSession, testProduct); err != nil {
		t.Fatal(err)
	}

	keys, err := store.Keys(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Fatalf("keys left after clear: %v", keys)
	}
	resp, err := svc.Get(ctx, testSession, testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Materials) != 0 || resp.SelectedMaterial != nil {
		t.Fatalf("state after clear: %+v", resp)
	}
}

func TestCustomizationMaterialSelectionCache(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	svc := newTestCustomizations(store)
	cache := repository.NewSelectionCache(repository.NewScopedSessionStore(store, testSession))

	if err := svc.SetProductSkinTone(ctx, testSession, testProduct, models.CustomSkinToneID, "#c87850"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: models.CustomSkinToneID}); err != nil {
		t.Fatal(err)
	}
	got, err := cache.GetMaterial(ctx, testProduct, "Bodice")
	if err != nil {
		t.Fatal(err)
	}
	want := &models.MaterialSkinToneSelection{SkinToneID: models.CustomSkinToneID, Material: "Bodice", CustomColor: "#c87850"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("material selection (-want +got):\n%s", diff)
	}

	// Repainting with a plain color drops the cached skin tone
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#000000"}); err != nil {
		t.Fatal(err)
	}
	got, err = cache.GetMaterial(ctx, testProduct, "Bodice")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("material selection kept: %+v", got)
	}
}

func TestEffectiveSkinTone(t *testing.T) {
	ctx := context.Background()
	svc := newTestCustomizations(repository.NewMemorySessionStore(0))
	profile := &models.CustomerMetadata{SkinTone: "fitzpatrick-1a"}

	got, err := svc.EffectiveSkinTone(ctx, testSession, testProduct, profile)
	if err != nil || got != "fitzpatrick-1a" {
		t.Fatalf("profile fallback = %q, %v", got, err)
	}

	if err := svc.SetProductSkinTone(ctx, testSession, testProduct, "fitzpatrick-3e", ""); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.EffectiveSkinTone(ctx, testSession, testProduct, profile)
	if got != "fitzpatrick-3e" {
		t.Fatalf("page value = %q", got)
	}

	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Sleeve_Material", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: models.CustomSkinToneID}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Select(ctx, testSession, testProduct, "Sleeve_Material"); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.EffectiveSkinTone(ctx, testSession, testProduct, profile)
	if got != models.CustomSkinToneID {
		t.Fatalf("selected material value = %q", got)
	}
}

func TestSelectUnknownMaterial(t *testing.T) {
	svc := newTestCustomizations(repository.NewMemorySessionStore(0))
	if _, err := svc.Select(context.Background(), testSession, testProduct, "Hood"); !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("err = %v", err)
	}
	resp, err := svc.Select(context.Background(), testSession, testProduct, "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.SelectedMaterial != nil {
		t.Fatalf("selection = %v", *resp.SelectedMaterial)
	}
}

func sortedKeys(m map[string]models.CartMaterialEntry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestExpiredSessionDoesNotResurrect(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	svc := newTestCustomizations(store)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	paint := models.MaterialValue{Type: models.MaterialValueColor, Value: "#00ff00"}
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", paint); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetMaterial(ctx, "sess-2", testProduct, "Bodice", paint); err != nil {
		t.Fatal(err)
	}

	// The store expires the session the way SESSION_TTL does
	clock = clock.Add(2 * time.Hour)
	if err := store.Delete(ctx, "session:"+testSession+":"+repository.CustomizationKey(testProduct)); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Values(ctx, testSession, testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expired session resurrected %v", got)
	}
	if n := len(svc.entries); n != 1 {
		t.Fatalf("%d in-memory entries after expiry, want 1", n)
	}
}

func TestCustomizationFollowsSharedStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	a := newTestCustomizations(store)
	b := newTestCustomizations(store)

	if _, err := a.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#ff0000"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.SetMaterial(ctx, testSession, testProduct, "Sleeve_Material", models.MaterialValue{Type: models.MaterialValueColor, Value: "#0000ff"}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#00ff00"}); err != nil {
		t.Fatal(err)
	}

	want := models.MaterialValues{
		"Bodice":          {Type: models.MaterialValueColor, Value: "#00ff00"},
		"Sleeve_Material": {Type: models.MaterialValueColor, Value: "#0000ff"},
	}
	got, err := b.Values(ctx, testSession, testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("shared state (-want +got):\n%s", diff)
	}
}

func TestClearingLastMaterialStaysCleared(t *testing.T) {
	ctx := context.Background()
	svc := newTestCustomizations(repository.NewMemorySessionStore(0))
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor, Value: "#ff0000"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetMaterial(ctx, testSession, testProduct, "Bodice", models.MaterialValue{Type: models.MaterialValueColor}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Values(ctx, testSession, testProduct)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("cleared material came back: %v", got)
	}
}
