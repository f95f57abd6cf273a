package service

import (
	"context"
	"errors"
	"fmt"

	"skintone-studio/capture"
	"skintone-studio/logger"
	"skintone-studio/models"
)

// ErrInvalidCaptureTarget is returned when a confirm request names no usable target
var ErrInvalidCaptureTarget = errors.New("invalid capture target")

// CaptureServiceInterface defines the contract for capture session operations
type CaptureServiceInterface interface {
	Open(ctx context.Context, sessionID, source string) (models.CaptureSessionResponse, error)
	Submit(ctx context.Context, sessionID, captureID, payload string) (*models.SkinToneResult, error)
	Confirm(ctx context.Context, sessionID, captureID string, req *models.CaptureConfirmRequest) (*models.CaptureConfirmResponse, error)
	Cancel(ctx context.Context, sessionID, captureID string) error
	Get(ctx context.Context, sessionID, captureID string) (models.CaptureSessionResponse, error)
}

// CaptureService applies capture results to the profile or to a product material
type CaptureService struct {
	manager        *capture.Manager
	profiles       ProfileServiceInterface
	customizations CustomizationServiceInterface
	scenes         SceneServiceInterface
	log            *logger.Logger
}

// NewCaptureService creates a new CaptureService
func NewCaptureService(manager *capture.Manager, profiles ProfileServiceInterface, customizations CustomizationServiceInterface, scenes SceneServiceInterface, log *logger.Logger) *CaptureService {
	return &CaptureService{
		manager:        manager,
		profiles:       profiles,
		customizations: customizations,
		scenes:         scenes,
		log:            log.With("service", "CaptureService"),
	}
}

// Ensure CaptureService implements CaptureServiceInterface
var _ CaptureServiceInterface = (*CaptureService)(nil)

// Open starts a capture session owned by the browser session
func (s *CaptureService) Open(ctx context.Context, sessionID, source string) (models.CaptureSessionResponse, error) {
	if source == "" {
		source = capture.SourceUpload
	}
	return s.manager.Open(ctx, sessionID, source)
}

// Submit decodes and analyzes one frame
func (s *CaptureService) Submit(ctx context.Context, sessionID, captureID, payload string) (*models.SkinToneResult, error) {
	frame, err := DecodeImagePayload(payload)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}
	return s.manager.Submit(ctx, sessionID, captureID, frame)
}

// Confirm closes the session and writes its result to the requested target. The target is
// validated before the session is closed
func (s *CaptureService) Confirm(ctx context.Context, sessionID, captureID string, req *models.CaptureConfirmRequest) (*models.CaptureConfirmResponse, error) {
	if err := s.validateTarget(ctx, req); err != nil {
		return nil, err
	}

	session, err := s.manager.Get(sessionID, captureID)
	if err != nil {
		return nil, err
	}
	result, err := s.manager.Confirm(sessionID, captureID)
	if err != nil {
		return nil, err
	}
	session.Status = capture.StatusConfirmed
	session.Result = result
	resp := &models.CaptureConfirmResponse{Session: session}

	switch req.Target {
	case models.CaptureTargetProfile:
		profile, err := s.profiles.Update(ctx, sessionID, req.CustomerID, &models.ProfileSkinToneRequest{
			SkinTone:    result.SkinToneID,
			CustomColor: result.CustomColor,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to apply capture to profile: %w", err)
		}
		resp.Profile = profile
	case models.CaptureTargetMaterial:
		var state *models.CustomizationResponse
		if result.IsCustom() {
			state, err = s.customizations.SetMaterialCustomColor(ctx, sessionID, req.ProductID, req.Material, result.CustomColor)
		} else {
			state, err = s.customizations.SetMaterial(ctx, sessionID, req.ProductID, req.Material, models.MaterialValue{
				Type:  models.MaterialValueSkinTone,
				Value: result.SkinToneID,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply capture to material: %w", err)
		}
		resp.Customization = state
	}
	s.log.Info("✓ Capture confirmed", "captureId", captureID, "target", req.Target, "skinTone", result.SkinToneID)
	return resp, nil
}

func (s *CaptureService) validateTarget(ctx context.Context, req *models.CaptureConfirmRequest) error {
	if req == nil {
		return ErrInvalidCaptureTarget
	}
	switch req.Target {
	case models.CaptureTargetProfile:
		if req.CustomerID == "" {
			return fmt.Errorf("%w: customerId is required", ErrInvalidCaptureTarget)
		}
	case models.CaptureTargetMaterial:
		if req.ProductID == "" || req.Material == "" {
			return fmt.Errorf("%w: productId and material are required", ErrInvalidCaptureTarget)
		}
		required, err := s.scenes.RequiredMaterials(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if err := checkMaterial(required, req.Material); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCaptureTarget, req.Target)
	}
	return nil
}

// Cancel cancels the session and releases its device
func (s *CaptureService) Cancel(ctx context.Context, sessionID, captureID string) error {
	return s.manager.Cancel(sessionID, captureID)
}

// Get returns the session state
func (s *CaptureService) Get(ctx context.Context, sessionID, captureID string) (models.CaptureSessionResponse, error) {
	return s.manager.Get(sessionID, captureID)
}
