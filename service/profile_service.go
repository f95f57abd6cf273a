package service

import (
	"context"
	"fmt"
	"strings"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
	"skintone-studio/utils"
)

// ProfileServiceInterface defines the contract for profile skin tone operations
type ProfileServiceInterface interface {
	Get(ctx context.Context, customerID string) (*models.ProfileSkinToneResponse, error)
	Update(ctx context.Context, sessionID, customerID string, req *models.ProfileSkinToneRequest) (*models.ProfileSkinToneResponse, error)
}

// ProfileService reads and writes the customer skin tone
type ProfileService struct {
	profiles repository.ProfileRepositoryInterface
	sessions repository.SessionStore
	palette  *palette.Palette
	paint    *PaintResolver
	log      *logger.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileRepositoryInterface, sessions repository.SessionStore, p *palette.Palette, log *logger.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		sessions: sessions,
		palette:  p,
		paint:    NewPaintResolver(p),
		log:      log.With("service", "ProfileService"),
	}
}

// Ensure ProfileService implements ProfileServiceInterface
var _ ProfileServiceInterface = (*ProfileService)(nil)

// Get returns the profile skin tone of a customer
func (s *ProfileService) Get(ctx context.Context, customerID string) (*models.ProfileSkinToneResponse, error) {
	meta, err := s.profiles.GetMetadata(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.view(customerID, meta), nil
}

// Update stores a new profile skin tone. Leaving "custom" drops the stored custom color.
// Cached page selections of the session are purged so product pages pick up the profile
func (s *ProfileService) Update(ctx context.Context, sessionID, customerID string, req *models.ProfileSkinToneRequest) (*models.ProfileSkinToneResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidMaterialValue)
	}
	toneID := strings.TrimSpace(req.SkinTone)
	if !s.palette.IsValid(toneID) {
		if tone, ok := s.palette.ByName(toneID); ok {
			toneID = tone.ID
		} else {
			return nil, fmt.Errorf("%w: skin tone %q", ErrInvalidMaterialValue, req.SkinTone)
		}
	}

	patch := map[string]interface{}{
		"skin_tone":         toneID,
		"custom_skin_color": nil,
		"profile_completed": "true",
	}
	if toneID == models.CustomSkinToneID {
		hex, ok := utils.NormalizeHex(req.CustomColor)
		if !ok {
			return nil, fmt.Errorf("%w: custom color %q", ErrInvalidMaterialValue, req.CustomColor)
		}
		patch["custom_skin_color"] = hex
	}

	meta, err := s.profiles.MergeMetadata(ctx, customerID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("✓ Updated profile skin tone", "customerId", customerID, "skinTone", toneID)

	if sessionID != "" {
		purged, err := repository.NewSelectionCache(repository.NewScopedSessionStore(s.sessions, sessionID)).Purge(ctx)
		if err != nil {
			s.log.Warn("⚠️ Failed to purge cached selections", "sessionId", sessionID, "error", err)
		} else if purged > 0 {
			s.log.Debug("Purged cached selections", "sessionId", sessionID, "count", purged)
		}
	}
	return s.view(customerID, meta), nil
}

func (s *ProfileService) view(customerID string, meta *models.CustomerMetadata) *models.ProfileSkinToneResponse {
	resp := &models.ProfileSkinToneResponse{CustomerID: customerID}
	if meta == nil {
		return resp
	}
	resp.SkinTone = meta.SkinTone
	resp.CustomSkinColor = meta.CustomSkinColor
	resp.ProfileComplete = meta.IsComplete()
	if meta.SkinTone == "" {
		return resp
	}
	resp.Hex = s.paint.SkinToneHex(meta.SkinTone, meta.CustomSkinColor)
	if tone, ok := s.palette.ByID(meta.SkinTone); ok {
		resp.Tone = &tone
	} else if tone, ok := s.palette.ByName(meta.SkinTone); ok {
		resp.Tone = &tone
	}
	return resp
}
