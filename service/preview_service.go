package service

import (
	"context"
	"fmt"
	"io"

	"skintone-studio/logger"
	"skintone-studio/scene"
)

// PreviewServiceInterface defines the contract for recolored model exports
type PreviewServiceInterface interface {
	WriteGLB(ctx context.Context, req PreviewRequest, w io.Writer) error
}

// PreviewRequest names the viewer scene to export. For the avatar viewer part 0 is the
// avatar and part 1 the skinned product. CustomerID feeds the custom color chain
type PreviewRequest struct {
	SessionID  string
	ProductID  string
	CustomerID string
	Kind       scene.ViewerKind
	Part       int
}

// PreviewService paints a viewer with the session customization and exports it as GLB
type PreviewService struct {
	scenes         SceneServiceInterface
	customizations CustomizationServiceInterface
	colors         *CustomColorChain
	paint          *PaintResolver
	log            *logger.Logger
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(
	scenes SceneServiceInterface,
	customizations CustomizationServiceInterface,
	colors *CustomColorChain,
	paint *PaintResolver,
	log *logger.Logger,
) *PreviewService {
	return &PreviewService{
		scenes:         scenes,
		customizations: customizations,
		colors:         colors,
		paint:          paint,
		log:            log.With("service", "PreviewService"),
	}
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// WriteGLB paints the viewer with the session customization and writes the requested
// scene. Custom skin tones resolve through the same chain as the cart line
func (s *PreviewService) WriteGLB(ctx context.Context, req PreviewRequest, w io.Writer) error {
	viewer, err := s.scenes.Viewer(ctx, req.ProductID, req.Kind)
	if err != nil {
		return err
	}
	scenes := viewer.Scenes()
	if req.Part < 0 || req.Part >= len(scenes) {
		return fmt.Errorf("%w: part %d of %d", ErrInvalidMaterialValue, req.Part, len(scenes))
	}

	values, err := s.customizations.Values(ctx, req.SessionID, req.ProductID)
	if err != nil {
		return err
	}
	customColor := func(material string) string {
		return s.colors.Resolve(ctx, CustomColorQuery{
			SessionID:  req.SessionID,
			ProductID:  req.ProductID,
			Material:   material,
			CustomerID: req.CustomerID,
		})
	}
	viewer.Apply(values, s.paint.ForRenderer(customColor))

	if err := scenes[req.Part].ExportGLB(w); err != nil {
		return fmt.Errorf("failed to export preview: %w", err)
	}
	s.log.Debug("Exported preview", "productId", req.ProductID, "viewer", req.Kind, "part", req.Part)
	return nil
}
