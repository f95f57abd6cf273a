package controller

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/scene"
	"skintone-studio/service"
)

func pngDataURL(t *testing.T, c color.NRGBA) string {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(32, 32, c), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestAnalyzeValidation(t *testing.T) {
	analyzer := service.NewSkinToneAnalyzer(palette.Default(), logger.NewNop(), rand.New(rand.NewPCG(7, 7)), 0)
	c := NewAnalysisController(analyzer, logger.NewNop())

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing image", `{"analysisType":"skin_tone"}`, http.StatusBadRequest},
		{"wrong type", `{"image":"abc","analysisType":"face"}`, http.StatusBadRequest},
		{"undecodable image", `{"image":"aGVsbG8=","analysisType":"skin_tone"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/skin-tone-analysis", strings.NewReader(tc.body)))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeWhitePhoto(t *testing.T) {
	analyzer := service.NewSkinToneAnalyzer(palette.Default(), logger.NewNop(), rand.New(rand.NewPCG(7, 7)), 0)
	c := NewAnalysisController(analyzer, logger.NewNop())

	body, _ := json.Marshal(models.SkinToneAnalysisRequest{Image: pngDataURL(t, color.NRGBA{255, 255, 255, 255}), AnalysisType: "skin_tone"})
	rec := httptest.NewRecorder()
	c.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/skin-tone-analysis", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got models.SkinToneResult
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.SkinToneID != models.CustomSkinToneID || got.CustomColor != "#ffffff" || got.Confidence != 0.8 {
		t.Fatalf("result = %+v", got)
	}
}

type fakeSheets struct{}

func (fakeSheets) RenderHTML(filter string) (string, error) {
	return "<html>" + filter + "</html>", nil
}
func (fakeSheets) GeneratePNG(ctx context.Context, filter string) ([]byte, error) {
	return []byte("png"), nil
}
func (fakeSheets) GeneratePDF(ctx context.Context, filter string) ([]byte, error) {
	return []byte("pdf"), nil
}

func TestPaletteEndpoints(t *testing.T) {
	c := NewPaletteController(palette.Default(), fakeSheets{}, logger.NewNop())

	rec := httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/api/skin-tones?filter=foundation", nil))
	var list models.SkinToneListResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Filter != "foundation" || len(list.Tones) != 10 {
		t.Fatalf("list = %s, %d tones", list.Filter, len(list.Tones))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/skin-tones/fitzpatrick-3e", nil)
	req.SetPathValue("id", "fitzpatrick-3e")
	rec = httptest.NewRecorder()
	c.Get(rec, req)
	var detail models.SkinToneDetail
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatal(err)
	}
	if detail.Color != "#D4A67C" || len(detail.RecommendedColors) == 0 {
		t.Fatalf("detail = %+v", detail)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/skin-tones/nope", nil)
	req.SetPathValue("id", "nope")
	rec = httptest.NewRecorder()
	c.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown tone status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c.Sheet(rec, httptest.NewRequest(http.MethodGet, "/api/skin-tones/sheet?format=pdf", nil))
	if rec.Header().Get("Content-Type") != "application/pdf" || rec.Body.String() != "pdf" {
		t.Fatalf("pdf sheet = %q %q", rec.Header().Get("Content-Type"), rec.Body.String())
	}
	rec = httptest.NewRecorder()
	c.Sheet(rec, httptest.NewRequest(http.MethodGet, "/api/skin-tones/sheet?format=gif", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("gif sheet status = %d", rec.Code)
	}
}

type fakeCartService struct {
	err       error
	sessionID string
}

func (f *fakeCartService) Build(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLineMetadata, error) {
	return nil, f.err
}

func (f *fakeCartService) AddToCart(ctx context.Context, sessionID, productID string, req *models.AddToCartRequest) (*models.CartLine, error) {
	f.sessionID = sessionID
	if f.err != nil {
		return nil, f.err
	}
	return &models.CartLine{ID: 1, CartID: req.CartID, ProductID: productID, VariantID: req.VariantID, Quantity: 1,
		Metadata: models.CartLineMetadata{Version: models.CartItemVersion}}, nil
}

func TestAddLineIncomplete(t *testing.T) {
	carts := &fakeCartService{err: &service.IncompleteError{Missing: []string{"Collar_Material"}}}
	c := NewCartController(carts, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/products/prod_01/cart-lines", strings.NewReader(`{"cartId":"cart_01","variantId":"var_01"}`))
	req.SetPathValue("id", "prod_01")
	req = req.WithContext(WithSession(req.Context(), "sess-9"))
	rec := httptest.NewRecorder()
	c.AddLine(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	var got incompleteResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := incompleteResponse{Error: "Color all materials to add to cart", MissingMaterials: []string{"Collar_Material"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body (-want +got):\n%s", diff)
	}
	if carts.sessionID != "sess-9" {
		t.Fatalf("session = %q", carts.sessionID)
	}
}

func TestAddLineCreated(t *testing.T) {
	c := NewCartController(&fakeCartService{}, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/products/prod_01/cart-lines", strings.NewReader(`{"cartId":"cart_01","variantId":"var_01"}`))
	req.SetPathValue("id", "prod_01")
	rec := httptest.NewRecorder()
	c.AddLine(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&service.AnalysisError{Err: context.Canceled}, http.StatusUnprocessableEntity},
		{service.ErrInvalidMaterialValue, http.StatusBadRequest},
		{service.ErrUnknownMaterial, http.StatusNotFound},
		{&service.IncompleteError{}, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
		{fmt.Errorf("viewer: %w", &scene.SceneLoadError{Source: "https://cdn.test/broken.glb", Err: io.ErrUnexpectedEOF}), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type brokenPreviews struct{}

func (brokenPreviews) WriteGLB(context.Context, service.PreviewRequest, io.Writer) error {
	return &scene.SceneLoadError{Source: "https://cdn.test/broken.glb", Err: io.ErrUnexpectedEOF}
}

func TestPreviewUnavailableModel(t *testing.T) {
	c := NewPreviewController(brokenPreviews{}, logger.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/products/prod_01/preview.glb", nil)
	req.SetPathValue("id", "prod_01")
	rec := httptest.NewRecorder()
	c.GLB(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != service.PreviewUnavailableMessage {
		t.Fatalf("error = %q", body["error"])
	}
}
