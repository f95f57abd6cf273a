package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/utils"
)

//go:embed templates/swatch_sheet.html
var templateFS embed.FS

const (
	swatchesPerPage = 24
	sheetTimeout    = 30 * time.Second
	// A4 at 96 DPI
	sheetViewportWidth  = 794
	sheetViewportHeight = 1123
)

// SwatchSheetServiceInterface defines the contract for palette swatch sheet rendering
type SwatchSheetServiceInterface interface {
	RenderHTML(filter string) (string, error)
	GeneratePNG(ctx context.Context, filter string) ([]byte, error)
	GeneratePDF(ctx context.Context, filter string) ([]byte, error)
}

type swatch struct {
	models.SkinTone
	Light       bool
	Recommended []string
}

type sheetPage struct {
	Number   int
	Swatches []swatch
}

// SwatchSheetService renders the palette as a printable swatch sheet
type SwatchSheetService struct {
	palette    *palette.Palette
	chromePath string
	tmpl       *template.Template
	log        *logger.Logger
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// NewSwatchSheetService creates a new SwatchSheetService
func NewSwatchSheetService(p *palette.Palette, chromePath string, log *logger.Logger) (*SwatchSheetService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/swatch_sheet.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &SwatchSheetService{
		palette:    p,
		chromePath: detectChromePath(chromePath),
		tmpl:       tmpl,
		log:        log.With("service", "SwatchSheetService"),
	}, nil
}

// Ensure SwatchSheetService implements SwatchSheetServiceInterface
var _ SwatchSheetServiceInterface = (*SwatchSheetService)(nil)

// paginateSwatches splits swatches into pages of swatchesPerPage
func paginateSwatches(swatches []swatch) []sheetPage {
	var pages []sheetPage
	for start := 0; start < len(swatches); start += swatchesPerPage {
		end := start + swatchesPerPage
		if end > len(swatches) {
			end = len(swatches)
		}
		pages = append(pages, sheetPage{Number: len(pages) + 1, Swatches: swatches[start:end]})
	}
	return pages
}

// RenderHTML renders the swatch sheet of a filter group
func (s *SwatchSheetService) RenderHTML(filter string) (string, error) {
	if filter == "" {
		filter = "all"
	}
	tones := s.palette.Filter(filter)
	swatches := make([]swatch, 0, len(tones))
	for _, tone := range tones {
		swatches = append(swatches, swatch{
			SkinTone:    tone,
			Light:       utils.Lightness(tone.Color) >= 0.6,
			Recommended: s.palette.RecommendedColors(tone.ID),
		})
	}
	pages := paginateSwatches(swatches)

	data := struct {
		Title     string
		Filter    string
		PageCount int
		Pages     []sheetPage
	}{
		Title:     "Skin Tone Palette",
		Filter:    strings.ToLower(filter),
		PageCount: len(pages),
		Pages:     pages,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// newBrowser starts a headless browser context
func (s *SwatchSheetService) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if s.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// loadDocument replaces the blank page with the rendered sheet
func loadDocument(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}

// GeneratePNG renders the sheet and screenshots the full page
func (s *SwatchSheetService) GeneratePNG(ctx context.Context, filter string) ([]byte, error) {
	html, err := s.RenderHTML(filter)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, sheetTimeout)
	defer cancel()
	browserCtx, closeBrowser := s.newBrowser(ctx)
	defer closeBrowser()

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(sheetViewportWidth, sheetViewportHeight),
		chromedp.Navigate("about:blank"),
		loadDocument(html),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		s.log.Error("❌ Swatch sheet PNG failed", "filter", filter, "error", err)
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	s.log.Info("✓ Generated swatch sheet PNG", "filter", filter, "bytes", len(png))
	return png, nil
}

// GeneratePDF renders the sheet and prints it to A4 pages
func (s *SwatchSheetService) GeneratePDF(ctx context.Context, filter string) ([]byte, error) {
	html, err := s.RenderHTML(filter)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, sheetTimeout)
	defer cancel()
	browserCtx, closeBrowser := s.newBrowser(ctx)
	defer closeBrowser()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(sheetViewportWidth, sheetViewportHeight),
		chromedp.Navigate("about:blank"),
		loadDocument(html),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 210mm x 297mm
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.log.Error("❌ Swatch sheet PDF failed", "filter", filter, "error", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	s.log.Info("✓ Generated swatch sheet PDF", "filter", filter, "bytes", len(pdf))
	return pdf, nil
}
