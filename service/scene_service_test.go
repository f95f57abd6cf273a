package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qmuntal/gltf"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
	"skintone-studio/scene"
)

type fakeProducts struct {
	products map[string]models.Product3D
}

func (f *fakeProducts) Get3D(ctx context.Context, productID string) (*models.Product3D, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProducts) List3D(ctx context.Context) ([]models.Product3D, error) {
	out := []models.Product3D{}
	for _, id := range []string{"prod_01", "prod_02", "prod_broken"} {
		if p, ok := f.products[id]; ok && p.Supports3D() {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeModels serves GLB bytes by url
type fakeModels struct {
	files   map[string][]byte
	fetched []string
}

func (f *fakeModels) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.fetched = append(f.fetched, url)
	data, ok := f.files[url]
	if !ok {
		return nil, fmt.Errorf("404 %s", url)
	}
	return data, nil
}

func glb(t *testing.T, doc *gltf.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func singleMeshDocument(node, material string, rgba [4]float32) *gltf.Document {
	return &gltf.Document{
		Asset: gltf.Asset{Version: "2.0"},
		Materials: []*gltf.Material{{
			Name:                 material,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &rgba},
		}},
		Meshes: []*gltf.Mesh{{Name: node + "Mesh", Primitives: []*gltf.Primitive{{Attributes: map[string]uint32{}, Material: gltf.Index(0)}}}},
		Nodes:  []*gltf.Node{{Name: node, Mesh: gltf.Index(0)}},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
	}
}

func newSceneFixture(t *testing.T) (*SceneService, *fakeModels) {
	files := &fakeModels{files: map[string][]byte{
		"https://cdn.test/dress.glb":   glb(t, singleMeshDocument("Dress", "Fabric", [4]float32{1, 1, 1, 1})),
		"https://cdn.test/skinned.glb": glb(t, singleMeshDocument("DressSkinned", "Fabric", [4]float32{1, 1, 1, 1})),
		"https://cdn.test/avatar.glb":  glb(t, singleMeshDocument("Body", "Skin", [4]float32{1, 0, 0, 1})),
	}}
	products := &fakeProducts{products: map[string]models.Product3D{
		"prod_01":     {ProductID: "prod_01", ModelURL: "https://cdn.test/dress.glb", SkinnedModelURL: "https://cdn.test/skinned.glb"},
		"prod_flat":   {ProductID: "prod_flat"},
		"prod_broken": {ProductID: "prod_broken", ModelURL: "https://cdn.test/missing.glb"},
	}}
	return NewSceneService(products, files, "https://cdn.test/avatar.glb", logger.NewNop()), files
}

func TestSceneMaterials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSceneFixture(t)

	got, err := svc.Materials(ctx, "prod_01", scene.ViewerPrimary)
	if err != nil {
		t.Fatal(err)
	}
	want := &models.SceneMaterialsResponse{
		ProductID:      "prod_01",
		Viewer:         "primary",
		Status:         "ready",
		Materials:      []string{"Fabric"},
		OriginalColors: map[string]string{"Fabric": "#ffffff"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("primary (-want +got):\n%s", diff)
	}

	avatar, err := svc.Materials(ctx, "prod_01", scene.ViewerAvatar)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Skin", "Fabric"}, avatar.Materials); diff != "" {
		t.Fatalf("avatar identifiers (-want +got):\n%s", diff)
	}
}

func TestSceneUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSceneFixture(t)

	for _, id := range []string{"prod_flat", "prod_broken"} {
		got, err := svc.Materials(ctx, id, scene.ViewerPrimary)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != "unavailable" || len(got.Materials) != 0 || got.Message == "" {
			t.Fatalf("%s: %+v", id, got)
		}
		required, err := svc.RequiredMaterials(ctx, id)
		if err != nil || len(required) != 0 {
			t.Fatalf("%s required = %v, %v", id, required, err)
		}
	}

	var loadErr *scene.SceneLoadError
	if _, err := svc.Viewer(ctx, "prod_broken", scene.ViewerPrimary); !errors.As(err, &loadErr) {
		t.Fatalf("viewer err = %v", err)
	}
	if _, err := svc.Materials(ctx, "prod_missing", scene.ViewerPrimary); !errors.Is(err, repository.ErrProductNotFound) {
		t.Fatalf("missing product err = %v", err)
	}
}

func TestPreviewAppliesCustomization(t *testing.T) {
	ctx := context.Background()
	scenes, _ := newSceneFixture(t)
	store := repository.NewMemorySessionStore(0)
	p := palette.Default()
	customizations := NewCustomizationService(store, scenes, p, 0, logger.NewNop())
	previews := NewPreviewService(scenes, customizations, NewCustomColorChain(store, nil, logger.NewNop()), NewPaintResolver(p), logger.NewNop())

	if _, err := customizations.SetMaterial(ctx, testSession, "prod_01", "Fabric", models.MaterialValue{Type: models.MaterialValueSkinTone, Value: "fitzpatrick-3e"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := previews.WriteGLB(ctx, PreviewRequest{SessionID: testSession, ProductID: "prod_01", Kind: scene.ViewerPrimary}, &buf); err != nil {
		t.Fatal(err)
	}
	exported, err := scene.LoadBytes(ctx, "preview", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got := exported.MaterialsByName("Fabric")
	if len(got) != 1 || got[0].Color != "#d4a67c" {
		t.Fatalf("exported Fabric = %+v", got)
	}

	if err := previews.WriteGLB(ctx, PreviewRequest{SessionID: testSession, ProductID: "prod_01", Kind: scene.ViewerPrimary, Part: 3}, &buf); !errors.Is(err, ErrInvalidMaterialValue) {
		t.Fatalf("bad part err = %v", err)
	}
}

func TestPreviewMatchesCartForCustomSkinTone(t *testing.T) {
	ctx := context.Background()
	scenes, _ := newSceneFixture(t)
	store := repository.NewMemorySessionStore(0)
	p := palette.Default()
	profiles := newFakeProfiles()
	profiles.data["cus_01"] = &models.CustomerMetadata{SkinTone: models.CustomSkinToneID, CustomSkinColor: "#3b2219"}
	colors := NewCustomColorChain(store, profiles, logger.NewNop())
	customizations := NewCustomizationService(store, scenes, p, 0, logger.NewNop())
	previews := NewPreviewService(scenes, customizations, colors, NewPaintResolver(p), logger.NewNop())
	carts := NewCartMetadataService(customizations, scenes, profiles, &fakeCarts{}, colors, p, logger.NewNop())

	exportedFabric := func(customerID string) string {
		t.Helper()
		var buf bytes.Buffer
		req := PreviewRequest{SessionID: testSession, ProductID: "prod_01", CustomerID: customerID, Kind: scene.ViewerPrimary}
		if err := previews.WriteGLB(ctx, req, &buf); err != nil {
			t.Fatal(err)
		}
		exported, err := scene.LoadBytes(ctx, "preview", buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		got := exported.MaterialsByName("Fabric")
		if len(got) != 1 {
			t.Fatalf("exported Fabric = %+v", got)
		}
		return got[0].Color
	}
	cartFabric := func(customerID string) string {
		t.Helper()
		meta, err := carts.Build(ctx, testSession, "prod_01", &models.AddToCartRequest{CustomerID: customerID})
		if err != nil {
			t.Fatal(err)
		}
		return strings.ToLower(meta.Materials["Fabric"].Hex)
	}

	// Captured color applied to the material
	if _, err := customizations.SetMaterialCustomColor(ctx, testSession, "prod_01", "Fabric", "#8a4b2f"); err != nil {
		t.Fatal(err)
	}
	if cart, preview := cartFabric(""), exportedFabric(""); cart != "#8a4b2f" || preview != cart {
		t.Fatalf("cart hex=%s preview color=%s", cart, preview)
	}

	// Custom value with no cached color falls through to the profile
	cache := repository.NewSelectionCache(repository.NewScopedSessionStore(store, testSession))
	if err := cache.DeleteMaterial(ctx, "prod_01", "Fabric"); err != nil {
		t.Fatal(err)
	}
	if cart, preview := cartFabric("cus_01"), exportedFabric("cus_01"); cart != "#3b2219" || preview != cart {
		t.Fatalf("cart hex=%s preview color=%s", cart, preview)
	}
}

func TestModelSync(t *testing.T) {
	_, files := newSceneFixture(t)
	products := &fakeProducts{products: map[string]models.Product3D{
		"prod_01":     {ProductID: "prod_01", ModelURL: "https://cdn.test/dress.glb", SkinnedModelURL: "https://cdn.test/skinned.glb"},
		"prod_02":     {ProductID: "prod_02", ModelURL: "https://cdn.test/dress.glb"},
		"prod_broken": {ProductID: "prod_broken", ModelURL: "https://cdn.test/missing.glb"},
	}}
	svc := NewModelSyncService(products, files, "https://cdn.test/avatar.glb", logger.NewNop())

	got, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := &models.ModelSyncResponse{
		Status:   "partial",
		Products: 3,
		Total:    4,
		Fetched:  3,
		Failed:   1,
		Errors:   []string{"prod_broken: 404 https://cdn.test/missing.glb"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sync (-want +got):\n%s", diff)
	}
	if len(files.fetched) != 4 {
		t.Fatalf("fetched %v", files.fetched)
	}
}
