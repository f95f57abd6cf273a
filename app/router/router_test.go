package router

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skintone-studio/app/controller"
	"skintone-studio/logger"
	"skintone-studio/palette"
	"skintone-studio/service"
)

const testBodyLimit = 256

func newTestRouter() http.Handler {
	p := palette.Default()
	analyzer := service.NewSkinToneAnalyzer(p, logger.NewNop(), rand.New(rand.NewPCG(1, 1)), 0)
	controllers := &Controllers{
		Analysis: controller.NewAnalysisController(analyzer, logger.NewNop()),
		Palette:  controller.NewPaletteController(p, nil, logger.NewNop()),
	}
	return NewRouter(controllers, testBodyLimit, logger.NewNop())
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("ping = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSessionHeader(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/skin-tones", nil))
	generated := rec.Header().Get(controller.SessionHeader)
	if len(generated) != 36 {
		t.Fatalf("generated session id = %q", generated)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/skin-tones", nil)
	req.Header.Set(controller.SessionHeader, "sess-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(controller.SessionHeader); got != "sess-1" {
		t.Fatalf("echoed session id = %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/skin-tones", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	body := `{"analysisType":"skin_tone","image":"` + strings.Repeat("A", 2*testBodyLimit) + `"}`
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/skin-tone-analysis", strings.NewReader(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/skin-tone-analysis", strings.NewReader(`{"analysisType":"skin_tone"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("small body status = %d", rec.Code)
	}
}
