package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"skintone-studio/app/controller"
	"skintone-studio/logger"
)

type Controllers struct {
	Analysis      *controller.AnalysisController
	Palette       *controller.PaletteController
	Capture       *controller.CaptureController
	Customization *controller.CustomizationController
	Preview       *controller.PreviewController
	Cart          *controller.CartController
	Profile       *controller.ProfileController
	Model         *controller.ModelController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// withSession reads X-Session-ID, generating and echoing a new id when it is absent
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(controller.SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(controller.SessionHeader, sessionID)
		next.ServeHTTP(w, r.WithContext(controller.WithSession(r.Context(), sessionID)))
	})
}

// withLogging logs every request
func withLogging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("📥 Request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

// withBodyLimit caps request bodies at limit bytes (<= 0: no cap)
func withBodyLimit(limit int64, next http.Handler) http.Handler {
	if limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the route table. Request bodies are capped at maxBodyBytes
func NewRouter(controllers *Controllers, maxBodyBytes int64, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Photo analysis
	mux.HandleFunc("POST /api/skin-tone-analysis", controllers.Analysis.Analyze)

	// Palette
	mux.HandleFunc("GET /api/skin-tones", controllers.Palette.List)
	mux.HandleFunc("GET /api/skin-tones/sheet", controllers.Palette.Sheet)
	mux.HandleFunc("GET /api/skin-tones/{id}", controllers.Palette.Get)

	// Capture sessions
	mux.HandleFunc("POST /api/capture/sessions", controllers.Capture.Open)
	mux.HandleFunc("GET /api/capture/sessions/{id}", controllers.Capture.Get)
	mux.HandleFunc("POST /api/capture/sessions/{id}/frames", controllers.Capture.Submit)
	mux.HandleFunc("POST /api/capture/sessions/{id}/confirm", controllers.Capture.Confirm)
	mux.HandleFunc("DELETE /api/capture/sessions/{id}", controllers.Capture.Cancel)

	// Product scenes and customization
	mux.HandleFunc("GET /api/products/{id}/materials", controllers.Customization.Materials)
	mux.HandleFunc("GET /api/products/{id}/customization", controllers.Customization.Get)
	mux.HandleFunc("DELETE /api/products/{id}/customization", controllers.Customization.Clear)
	mux.HandleFunc("PUT /api/products/{id}/customization/selection", controllers.Customization.Select)
	mux.HandleFunc("PUT /api/products/{id}/customization/materials/{material}", controllers.Customization.SetMaterial)
	mux.HandleFunc("GET /api/products/{id}/skin-tone", controllers.Customization.EffectiveSkinTone)
	mux.HandleFunc("PUT /api/products/{id}/skin-tone", controllers.Customization.SetSkinTone)
	mux.HandleFunc("GET /api/products/{id}/preview.glb", controllers.Preview.GLB)

	// Cart
	mux.HandleFunc("POST /api/products/{id}/cart-lines", controllers.Cart.AddLine)

	// Customer profile
	mux.HandleFunc("GET /api/customers/{id}/skin-tone", controllers.Profile.Get)
	mux.HandleFunc("PUT /api/customers/{id}/skin-tone", controllers.Profile.Update)

	// Admin
	mux.HandleFunc("POST /admin/models/sync", controllers.Model.Sync)

	return withLogging(log, withSession(withBodyLimit(maxBodyBytes, mux)))
}
