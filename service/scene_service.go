package service

import (
	"context"
	"errors"
	"fmt"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/repository"
	"skintone-studio/scene"
)

// PreviewUnavailableMessage is shown when a product model fails to load
const PreviewUnavailableMessage = "3D preview unavailable, customization is disabled"

// ErrNo3DModel is returned for products without a modelUrl
var ErrNo3DModel = errors.New("product has no 3d model")

// SceneServiceInterface defines the contract for loading product viewers
type SceneServiceInterface interface {
	Viewer(ctx context.Context, productID string, kind scene.ViewerKind) (*scene.Viewer, error)
	Materials(ctx context.Context, productID string, kind scene.ViewerKind) (*models.SceneMaterialsResponse, error)
	RequiredMaterials(ctx context.Context, productID string) ([]string, error)
}

// SceneService loads product and avatar models into viewers. Every call returns freshly
// loaded scenes so callers may recolor them freely
type SceneService struct {
	products  repository.ProductRepositoryInterface
	source    ModelSourceInterface
	avatarURL string
	log       *logger.Logger
}

// NewSceneService creates a new SceneService
func NewSceneService(products repository.ProductRepositoryInterface, source ModelSourceInterface, avatarURL string, log *logger.Logger) *SceneService {
	return &SceneService{
		products:  products,
		source:    source,
		avatarURL: avatarURL,
		log:       log.With("service", "SceneService"),
	}
}

// Ensure SceneService implements SceneServiceInterface
var _ SceneServiceInterface = (*SceneService)(nil)

// Viewer loads the viewer of a product. A model that cannot be loaded yields a
// *scene.SceneLoadError
func (s *SceneService) Viewer(ctx context.Context, productID string, kind scene.ViewerKind) (*scene.Viewer, error) {
	product, err := s.products.Get3D(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Supports3D() {
		return nil, ErrNo3DModel
	}

	if kind == scene.ViewerAvatar {
		avatar, err := s.load(ctx, s.avatarURL)
		if err != nil {
			return nil, err
		}
		var skinned *scene.Scene
		if product.SkinnedModelURL != "" {
			skinned, err = s.load(ctx, product.SkinnedModelURL)
			if err != nil {
				return nil, err
			}
		}
		return scene.NewAvatarViewer(avatar, skinned), nil
	}

	primary, err := s.load(ctx, product.ModelURL)
	if err != nil {
		return nil, err
	}
	return scene.NewPrimaryViewer(primary), nil
}

// Materials describes the paintable parts of a viewer. Load failures are reported as an
// unavailable status rather than an error
func (s *SceneService) Materials(ctx context.Context, productID string, kind scene.ViewerKind) (*models.SceneMaterialsResponse, error) {
	resp := &models.SceneMaterialsResponse{ProductID: productID, Viewer: string(kind), Materials: []string{}}

	v, err := s.Viewer(ctx, productID, kind)
	var loadErr *scene.SceneLoadError
	switch {
	case errors.As(err, &loadErr):
		resp.Status = "unavailable"
		resp.Message = PreviewUnavailableMessage
		return resp, nil
	case errors.Is(err, ErrNo3DModel):
		resp.Status = "unavailable"
		resp.Message = "This product has no 3D model"
		return resp, nil
	case err != nil:
		return nil, err
	}

	resp.Status = "ready"
	resp.Materials = v.Identifiers()
	resp.OriginalColors = v.OriginalColors()
	return resp, nil
}

// RequiredMaterials returns the identifiers of the primary viewer. Products whose model is
// missing or unloadable have no requirement
func (s *SceneService) RequiredMaterials(ctx context.Context, productID string) ([]string, error) {
	info, err := s.Materials(ctx, productID, scene.ViewerPrimary)
	if err != nil {
		return nil, err
	}
	return info.Materials, nil
}

func (s *SceneService) load(ctx context.Context, modelURL string) (*scene.Scene, error) {
	if modelURL == "" {
		return nil, &scene.SceneLoadError{Source: modelURL, Err: fmt.Errorf("no model url configured")}
	}
	data, err := s.source.Fetch(ctx, modelURL)
	if err != nil {
		s.log.Warn("⚠️ Model fetch failed", "url", modelURL, "error", err)
		return nil, &scene.SceneLoadError{Source: modelURL, Err: err}
	}
	sc, err := scene.LoadBytes(ctx, modelURL, data)
	if err != nil {
		s.log.Warn("⚠️ Model parse failed", "url", modelURL, "error", err)
		return nil, err
	}
	return sc, nil
}
