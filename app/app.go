package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"skintone-studio/app/controller"
	"skintone-studio/app/router"
	"skintone-studio/capture"
	"skintone-studio/db"
	"skintone-studio/logger"
	"skintone-studio/palette"
	"skintone-studio/repository"
	"skintone-studio/service"
)

// App holds the wired application
type App struct {
	Config  *Config
	Log     *logger.Logger
	Handler http.Handler

	conn     *sql.DB
	sessions repository.SessionStore
	captures *capture.Manager
}

// Initialize initializes the application
func Initialize(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database connection
	conn, err := db.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.Migrate {
		if err := db.Migrate(ctx, conn, log); err != nil {
			conn.Close()
			return nil, err
		}
	}

	a := &App{Config: cfg, Log: log, conn: conn}
	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg, log := a.Config, a.Log

	// Session store: redis when configured, process memory otherwise
	if cfg.RedisAddr != "" {
		store, err := repository.NewRedisSessionStore(cfg.RedisAddr, cfg.SessionTTL, log)
		if err != nil {
			return err
		}
		a.sessions = store
	} else {
		log.Warn("⚠️ REDIS_ADDR not set, session state is kept in memory")
		a.sessions = repository.NewMemorySessionStore(cfg.SessionTTL)
	}

	// Drive is optional; without it drive:// model urls fail to load
	var drive service.DriveServiceInterface
	if cfg.GoogleCredentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentials)
		if err != nil {
			return err
		}
		drive = driveService
	} else {
		log.Warn("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, Drive hosted models are disabled")
	}

	cache := service.NewModelCache(cfg.ModelCacheDir)
	if err := cache.EnsureDir(); err != nil {
		return err
	}

	p := palette.Default()
	paint := service.NewPaintResolver(p)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(a.conn, log)
	productRepo := repository.NewProductRepository(a.conn, log)
	cartRepo := repository.NewCartRepository(a.conn, log)

	// Initialize services
	analyzer := service.NewSkinToneAnalyzer(p, log, nil, cfg.MaxAnalysisDimension)
	modelSource := service.NewModelSource(nil, drive, cache, log)
	scenes := service.NewSceneService(productRepo, modelSource, cfg.AvatarModelURL, log)
	customizations := service.NewCustomizationService(a.sessions, scenes, p, cfg.SessionTTL, log)
	profiles := service.NewProfileService(profileRepo, a.sessions, p, log)
	colors := service.NewCustomColorChain(a.sessions, profileRepo, log)
	carts := service.NewCartMetadataService(customizations, scenes, profileRepo, cartRepo, colors, p, log)
	previews := service.NewPreviewService(scenes, customizations, colors, paint, log)
	a.captures = capture.NewManager(capture.FrameDeviceFactory(cfg.MaxCaptureBytes), analyzer, cfg.CaptureIdleTimeout, log.With("service", "CaptureManager"))
	go a.captures.RunReaper(ctx, cfg.CaptureIdleTimeout/2+time.Second)
	captures := service.NewCaptureService(a.captures, profiles, customizations, scenes, log)
	modelSync := service.NewModelSyncService(productRepo, modelSource, cfg.AvatarModelURL, log)
	sheets, err := service.NewSwatchSheetService(p, cfg.ChromePath, log)
	if err != nil {
		return err
	}

	// Create controllers
	controllers := &router.Controllers{
		Analysis:      controller.NewAnalysisController(analyzer, log),
		Palette:       controller.NewPaletteController(p, sheets, log),
		Capture:       controller.NewCaptureController(captures, log),
		Customization: controller.NewCustomizationController(customizations, scenes, profileRepo, paint, log),
		Preview:       controller.NewPreviewController(previews, log),
		Cart:          controller.NewCartController(carts, log),
		Profile:       controller.NewProfileController(profiles, log),
		Model:         controller.NewModelController(modelSync, log),
	}

	if cfg.ModelWarmup {
		go func() {
			if _, err := modelSync.Sync(context.WithoutCancel(ctx)); err != nil {
				log.Warn("⚠️ Model warm-up failed", "error", err)
			}
		}()
	}

	// Setup routes using standard http router
	a.Handler = router.NewRouter(controllers, int64(cfg.MaxBodyBytes), log)
	log.Info("✅ Application initialized", "palette", p.Len(), "redis", cfg.RedisAddr != "", "drive", drive != nil)
	return nil
}

// Close releases capture devices, the session store and the database
func (a *App) Close() {
	if a.captures != nil {
		a.captures.Close()
	}
	if closer, ok := a.sessions.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.Log.Warn("⚠️ Failed to close session store", "error", err)
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.Log.Warn("⚠️ Failed to close database", "error", err)
		}
	}
	a.Log.Sync()
}
