package scene

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qmuntal/gltf"

	"skintone-studio/models"
)

func red() *gltf.PBRMetallicRoughness {
	return &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 0, 0, 1}}
}

func meshWith(name string, material *uint32) *gltf.Mesh {
	return &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{{Attributes: map[string]uint32{}, Material: material}}}
}

// sleeveCollarDocument has two meshes sharing one unnamed red material
func sleeveCollarDocument() *gltf.Document {
	return &gltf.Document{
		Asset:     gltf.Asset{Version: "2.0"},
		Materials: []*gltf.Material{{Name: "", PBRMetallicRoughness: red()}},
		Meshes: []*gltf.Mesh{
			meshWith("SleeveMesh", gltf.Index(0)),
			meshWith("CollarMesh", gltf.Index(0)),
		},
		Nodes: []*gltf.Node{
			{Name: "Sleeve", Mesh: gltf.Index(0)},
			{Name: "Collar", Mesh: gltf.Index(1)},
		},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 1}}},
	}
}

func mustScene(t *testing.T, doc *gltf.Document) *Scene {
	t.Helper()
	s, err := FromDocument("test", doc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func materialOf(s *Scene, node string) *Material {
	var out *Material
	s.Traverse(func(n *Node) {
		if n.Name == node && n.IsMesh() {
			out = n.Materials[0]
		}
	})
	return out
}

func TestSharedUnnamedMaterialIsSplit(t *testing.T) {
	s := mustScene(t, sleeveCollarDocument())
	if materialOf(s, "Sleeve") != materialOf(s, "Collar") {
		t.Fatal("loader should share the document material")
	}

	got := ResolveMaterialIdentifiers(s)
	if diff := cmp.Diff([]string{"Sleeve_Material", "Collar_Material"}, got); diff != "" {
		t.Fatalf("identifiers (-want +got):\n%s", diff)
	}
	sleeve, collar := materialOf(s, "Sleeve"), materialOf(s, "Collar")
	if sleeve == collar {
		t.Fatal("shared material was not cloned")
	}
	sleeve.SetColor("#0000ff")
	if collar.Color != "#ff0000" {
		t.Fatalf("collar changed with sleeve: %s", collar.Color)
	}
}

func TestIdentifierRules(t *testing.T) {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0"},
		Materials: []*gltf.Material{
			{Name: "Fabric"},
			{Name: "None.001"},
		},
		Meshes: []*gltf.Mesh{
			meshWith("Body", gltf.Index(0)),
			meshWith("Trim", gltf.Index(1)),
			meshWith("", nil),
			meshWith("Buttons", nil),
		},
		Nodes: []*gltf.Node{
			{Name: "Body", Mesh: gltf.Index(0)},
			{Name: "Trim", Mesh: gltf.Index(1)},
			{Mesh: gltf.Index(2)},
			{Name: "Left Button", Mesh: gltf.Index(3)},
		},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0, 1, 2, 3}}},
	}
	s := mustScene(t, doc)
	plan := PlanMaterialIdentifiers(s)
	want := []string{"Fabric", "Trim_Material", "Mesh_Material", "Left_Button_Material"}
	if diff := cmp.Diff(want, plan.Identifiers); diff != "" {
		t.Fatalf("identifiers (-want +got):\n%s", diff)
	}
	// Planning does not mutate the scene
	if materialOf(s, "Trim").Name != "None.001" {
		t.Fatal("plan renamed a material")
	}
	plan.Apply()
	if materialOf(s, "Trim").Name != "Trim_Material" {
		t.Fatal("apply did not rename the placeholder material")
	}
}

func TestIdentifiersAreStableAcrossLoads(t *testing.T) {
	a := ResolveMaterialIdentifiers(mustScene(t, sleeveCollarDocument()))
	b := ResolveMaterialIdentifiers(mustScene(t, sleeveCollarDocument()))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identifiers differ between loads:\n%s", diff)
	}
	s := mustScene(t, sleeveCollarDocument())
	first := ResolveMaterialIdentifiers(s)
	second := ResolveMaterialIdentifiers(s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolving twice changed identifiers:\n%s", diff)
	}
}

func TestMultiPrimitiveMeshSlots(t *testing.T) {
	doc := &gltf.Document{
		Asset:     gltf.Asset{Version: "2.0"},
		Materials: []*gltf.Material{{Name: "Shared"}},
		Meshes: []*gltf.Mesh{{Name: "Dress", Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{}, Material: gltf.Index(0)},
			{Attributes: map[string]uint32{}, Material: gltf.Index(0)},
		}}},
		Nodes:  []*gltf.Node{{Name: "Dress", Mesh: gltf.Index(0)}},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
	}
	got := ResolveMaterialIdentifiers(mustScene(t, doc))
	if diff := cmp.Diff([]string{"Dress_0_Material", "Dress_1_Material"}, got); diff != "" {
		t.Fatalf("identifiers (-want +got):\n%s", diff)
	}
}

func TestRendererApplyAndClear(t *testing.T) {
	v := NewPrimaryViewer(mustScene(t, sleeveCollarDocument()))
	resolve := func(_, value string) string {
		if value == "fitzpatrick-3e" {
			return "#D4A67C"
		}
		return ""
	}

	v.Apply(models.MaterialValues{
		"Sleeve_Material": {Type: models.MaterialValueColor, Value: "#00ff00"},
		"Collar_Material": {Type: models.MaterialValueSkinTone, Value: "fitzpatrick-3e"},
	}, resolve)
	if got := v.ColorOf("Sleeve_Material"); got != "#00ff00" {
		t.Fatalf("sleeve = %s", got)
	}
	if got := v.ColorOf("Collar_Material"); got != "#D4A67C" {
		t.Fatalf("collar = %s", got)
	}

	version := materialOf(v.Scenes()[0], "Sleeve").Version
	v.Apply(models.MaterialValues{
		"Sleeve_Material": {Type: models.MaterialValueColor, Value: "#00ff00"},
	}, resolve)
	if materialOf(v.Scenes()[0], "Sleeve").Version != version {
		t.Fatal("re-applying the same color bumped the material version")
	}
	if got := v.ColorOf("Collar_Material"); got != "#ff0000" {
		t.Fatalf("cleared collar = %s, want authored #ff0000", got)
	}

	v.Apply(models.MaterialValues{
		"Sleeve_Material": {Type: models.MaterialValueSkinTone, Value: "unknown"},
	}, resolve)
	if got := v.ColorOf("Sleeve_Material"); got != "#ff0000" {
		t.Fatalf("unresolvable value should revert, got %s", got)
	}
}

func TestAvatarViewerUnionsIdentifiers(t *testing.T) {
	avatar := mustScene(t, &gltf.Document{
		Asset:     gltf.Asset{Version: "2.0"},
		Materials: []*gltf.Material{{Name: "Skin"}},
		Meshes:    []*gltf.Mesh{meshWith("Body", gltf.Index(0))},
		Nodes:     []*gltf.Node{{Name: "Body", Mesh: gltf.Index(0)}},
		Scenes:    []*gltf.Scene{{Nodes: []uint32{0}}},
	})
	v := NewAvatarViewer(avatar, mustScene(t, sleeveCollarDocument()))
	want := []string{"Skin", "Sleeve_Material", "Collar_Material"}
	if diff := cmp.Diff(want, v.Identifiers()); diff != "" {
		t.Fatalf("identifiers (-want +got):\n%s", diff)
	}
	if NewAvatarViewer(avatar, nil).Kind != ViewerAvatar {
		t.Fatal("avatar viewer without product")
	}
}

func TestFrameLoop(t *testing.T) {
	v := NewPrimaryViewer(mustScene(t, sleeveCollarDocument()))
	if v.FrameLoop() != FrameLoopAlways {
		t.Fatal("visible viewer should render continuously")
	}
	v.SetInView(false)
	if v.FrameLoop() != FrameLoopDemand {
		t.Fatal("out of view viewer should render on demand")
	}
	v.SetInView(true)
	v.SetDocumentVisible(false)
	if v.FrameLoop() != FrameLoopDemand {
		t.Fatal("hidden document should render on demand")
	}
}

func TestExportRoundTrip(t *testing.T) {
	v := NewPrimaryViewer(mustScene(t, sleeveCollarDocument()))
	v.Apply(models.MaterialValues{
		"Sleeve_Material": {Type: models.MaterialValueColor, Value: "#0000ff"},
	}, nil)

	var buf bytes.Buffer
	if err := v.Scenes()[0].ExportGLB(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadBytes(context.Background(), "export", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got := NewPrimaryViewer(loaded)
	if diff := cmp.Diff([]string{"Sleeve_Material", "Collar_Material"}, got.Identifiers()); diff != "" {
		t.Fatalf("identifiers (-want +got):\n%s", diff)
	}
	want := map[string]string{"Sleeve_Material": "#0000ff", "Collar_Material": "#ff0000"}
	if diff := cmp.Diff(want, got.OriginalColors()); diff != "" {
		t.Fatalf("colors (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(context.Background(), "broken.glb", strings.NewReader("not a model"))
	var loadErr *SceneLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected SceneLoadError, got %v", err)
	}
	if loadErr.Source != "broken.glb" {
		t.Fatalf("source = %s", loadErr.Source)
	}
}
