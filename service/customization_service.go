package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"skintone-studio/customization"
	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
	"skintone-studio/utils"
)

var (
	// ErrCustomizationDisabled is returned when the product model is unavailable
	ErrCustomizationDisabled = errors.New("customization is disabled for this product")
	// ErrUnknownMaterial is returned for materials the product model does not have
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrInvalidMaterialValue is returned for malformed colors or unknown skin tones
	ErrInvalidMaterialValue = errors.New("invalid material value")
)

// CustomizationServiceInterface defines the contract for per-session customization state
type CustomizationServiceInterface interface {
	Get(ctx context.Context, sessionID, productID string) (*models.CustomizationResponse, error)
	Values(ctx context.Context, sessionID, productID string) (models.MaterialValues, error)
	Select(ctx context.Context, sessionID, productID, material string) (*models.CustomizationResponse, error)
	SetMaterial(ctx context.Context, sessionID, productID, material string, value models.MaterialValue) (*models.CustomizationResponse, error)
	SetMaterialCustomColor(ctx context.Context, sessionID, productID, material, customColor string) (*models.CustomizationResponse, error)
	SetProductSkinTone(ctx context.Context, sessionID, productID, skinToneID, customColor string) error
	Clear(ctx context.Context, sessionID, productID string) error
	EffectiveSkinTone(ctx context.Context, sessionID, productID string, profile *models.CustomerMetadata) (string, error)
}

// defaultStateTTL bounds idle in-memory state when no session TTL is configured
const defaultStateTTL = 24 * time.Hour

type stateEntry struct {
	mu    sync.Mutex
	state *customization.State
	seen  models.MaterialValues // snapshot last read from or written to the store

	// guarded by CustomizationService.mu
	users    int
	lastUsed time.Time
}

// CustomizationService keeps the customization state of every (session, product) pair.
// Operations on one pair are serialized so writes and persistence keep program order.
// The session store stays the source of truth: every operation syncs with it first, and
// entries idle for longer than the session TTL are dropped
type CustomizationService struct {
	sessions repository.SessionStore
	scenes   SceneServiceInterface
	palette  *palette.Palette
	ttl      time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu        sync.Mutex
	entries   map[string]*stateEntry
	lastSweep time.Time
}

// NewCustomizationService creates a new CustomizationService. ttl matches the session
// store expiry; ttl <= 0 uses a day
func NewCustomizationService(sessions repository.SessionStore, scenes SceneServiceInterface, p *palette.Palette, ttl time.Duration, log *logger.Logger) *CustomizationService {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &CustomizationService{
		sessions: sessions,
		scenes:   scenes,
		palette:  p,
		ttl:      ttl,
		log:      log.With("service", "CustomizationService"),
		now:      time.Now,
		entries:  make(map[string]*stateEntry),
	}
}

// Ensure CustomizationService implements CustomizationServiceInterface
var _ CustomizationServiceInterface = (*CustomizationService)(nil)

func (s *CustomizationService) scoped(sessionID string) repository.SessionStore {
	return repository.NewScopedSessionStore(s.sessions, sessionID)
}

func (s *CustomizationService) persister(sessionID string) *customization.Persister {
	return customization.NewPersister(repository.NewCustomizationStore(s.scoped(sessionID)), s.log)
}

func (s *CustomizationService) selections(sessionID string) *repository.SelectionCache {
	return repository.NewSelectionCache(s.scoped(sessionID))
}

// acquire returns the entry of a pair, dropping expired entries on the way
func (s *CustomizationService) acquire(key string) *stateEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) > s.ttl/4 {
		s.sweep(now)
		s.lastSweep = now
	}
	entry, ok := s.entries[key]
	if ok && entry.users == 0 && now.Sub(entry.lastUsed) > s.ttl {
		delete(s.entries, key)
		ok = false
	}
	if !ok {
		entry = &stateEntry{state: customization.NewState()}
		s.entries[key] = entry
	}
	entry.users++
	entry.lastUsed = now
	return entry
}

func (s *CustomizationService) releaseEntry(entry *stateEntry) {
	s.mu.Lock()
	entry.users--
	entry.lastUsed = s.now()
	s.mu.Unlock()
}

// sweep must be called with s.mu held
func (s *CustomizationService) sweep(now time.Time) {
	for key, entry := range s.entries {
		if entry.users == 0 && now.Sub(entry.lastUsed) > s.ttl {
			delete(s.entries, key)
		}
	}
}

// withState runs fn with the locked state of a pair after syncing it with the session store
func (s *CustomizationService) withState(ctx context.Context, sessionID, productID string, fn func(*stateEntry) error) error {
	entry := s.acquire(sessionID + "\x00" + productID)
	defer s.releaseEntry(entry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.seen, _ = s.persister(sessionID).Sync(ctx, productID, entry.state, entry.seen)
	return fn(entry)
}

// save persists the entry state and remembers the written snapshot. Must run inside withState
func (s *CustomizationService) save(ctx context.Context, sessionID, productID string, e *stateEntry) {
	if s.persister(sessionID).Save(ctx, productID, e.state) {
		e.seen = e.state.Values()
	}
}

func (s *CustomizationService) view(ctx context.Context, productID string, state *customization.State, required []string) *models.CustomizationResponse {
	resp := &models.CustomizationResponse{
		ProductID:         productID,
		Materials:         state.Values(),
		RequiredMaterials: required,
		MissingMaterials:  state.Missing(required),
	}
	if sel, ok := state.Selected(); ok {
		resp.SelectedMaterial = &sel
	}
	resp.Complete = len(resp.MissingMaterials) == 0
	if !resp.Complete {
		resp.Message = customization.IncompleteMessage
	}
	return resp
}

// Get returns the state of a product for a session
func (s *CustomizationService) Get(ctx context.Context, sessionID, productID string) (*models.CustomizationResponse, error) {
	required, err := s.scenes.RequiredMaterials(ctx, productID)
	if err != nil {
		return nil, err
	}
	var resp *models.CustomizationResponse
	err = s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		resp = s.view(ctx, productID, e.state, required)
		return nil
	})
	return resp, err
}

// Values returns a copy of the painted materials
func (s *CustomizationService) Values(ctx context.Context, sessionID, productID string) (models.MaterialValues, error) {
	var values models.MaterialValues
	err := s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		values = e.state.Values()
		return nil
	})
	return values, err
}

// Select selects a material; an empty material clears the selection
func (s *CustomizationService) Select(ctx context.Context, sessionID, productID, material string) (*models.CustomizationResponse, error) {
	required, err := s.scenes.RequiredMaterials(ctx, productID)
	if err != nil {
		return nil, err
	}
	material = strings.TrimSpace(material)
	if material != "" {
		if err := checkMaterial(required, material); err != nil {
			return nil, err
		}
	}

	var resp *models.CustomizationResponse
	err = s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		st := e.state
		if material == "" {
			st.ClearSelection()
		} else {
			st.Select(material)
		}
		resp = s.view(ctx, productID, st, required)
		return nil
	})
	return resp, err
}

// SetMaterial paints or clears a material and persists the snapshot. Skin tone values also
// refresh the per-material selection cache; choosing "custom" copies the product level
// custom color into it
func (s *CustomizationService) SetMaterial(ctx context.Context, sessionID, productID, material string, value models.MaterialValue) (*models.CustomizationResponse, error) {
	return s.setMaterial(ctx, sessionID, productID, material, value, "")
}

// SetMaterialCustomColor paints a material with the custom skin tone carrying an explicit
// color, used when a captured photo is applied to a material
func (s *CustomizationService) SetMaterialCustomColor(ctx context.Context, sessionID, productID, material, customColor string) (*models.CustomizationResponse, error) {
	hex, ok := utils.NormalizeHex(customColor)
	if !ok {
		return nil, fmt.Errorf("%w: custom color %q", ErrInvalidMaterialValue, customColor)
	}
	value := models.MaterialValue{Type: models.MaterialValueSkinTone, Value: models.CustomSkinToneID}
	return s.setMaterial(ctx, sessionID, productID, material, value, hex)
}

func (s *CustomizationService) setMaterial(ctx context.Context, sessionID, productID, material string, value models.MaterialValue, customColor string) (*models.CustomizationResponse, error) {
	required, err := s.scenes.RequiredMaterials(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := checkMaterial(required, material); err != nil {
		return nil, err
	}
	if err := s.validateValue(&value); err != nil {
		return nil, err
	}

	var resp *models.CustomizationResponse
	err = s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		st := e.state
		st.Set(material, value)
		s.save(ctx, sessionID, productID, e)
		s.cacheMaterialSelection(ctx, sessionID, productID, material, value, customColor)
		resp = s.view(ctx, productID, st, required)
		return nil
	})
	return resp, err
}

func (s *CustomizationService) validateValue(v *models.MaterialValue) error {
	v.Value = strings.TrimSpace(v.Value)
	if v.Value == "" {
		return nil
	}
	switch v.Type {
	case models.MaterialValueColor:
		hex, ok := utils.NormalizeHex(v.Value)
		if !ok {
			return fmt.Errorf("%w: color %q", ErrInvalidMaterialValue, v.Value)
		}
		v.Value = hex
	case models.MaterialValueSkinTone:
		if !s.palette.IsValid(v.Value) {
			return fmt.Errorf("%w: skin tone %q", ErrInvalidMaterialValue, v.Value)
		}
	default:
		return fmt.Errorf("%w: type %q", ErrInvalidMaterialValue, v.Type)
	}
	return nil
}

func (s *CustomizationService) cacheMaterialSelection(ctx context.Context, sessionID, productID, material string, value models.MaterialValue, customColor string) {
	cache := s.selections(sessionID)
	if value.Type != models.MaterialValueSkinTone || !value.IsSet() {
		if err := cache.DeleteMaterial(ctx, productID, material); err != nil {
			s.log.Warn("⚠️ Failed to drop material selection", "productId", productID, "material", material, "error", err)
		}
		return
	}

	sel := models.MaterialSkinToneSelection{SkinToneID: value.Value, Material: material}
	if value.Value == models.CustomSkinToneID {
		sel.CustomColor = customColor
		if sel.CustomColor == "" {
			if page, err := cache.GetProduct(ctx, productID); err == nil && page != nil {
				sel.CustomColor = page.CustomColor
			}
		}
	}
	if err := cache.SetMaterial(ctx, productID, sel); err != nil {
		s.log.Warn("⚠️ Failed to cache material selection", "productId", productID, "material", material, "error", err)
	}
}

// SetProductSkinTone records the page level skin tone choice of a product
func (s *CustomizationService) SetProductSkinTone(ctx context.Context, sessionID, productID, skinToneID, customColor string) error {
	tone, ok := s.palette.ByID(skinToneID)
	if !ok {
		return fmt.Errorf("%w: skin tone %q", ErrInvalidMaterialValue, skinToneID)
	}
	sel := models.ProductSkinToneSelection{
		SkinToneID:   tone.ID,
		SkinToneName: tone.Name,
		Timestamp:    s.now().UnixMilli(),
	}
	if tone.ID == models.CustomSkinToneID {
		hex, ok := utils.NormalizeHex(customColor)
		if !ok {
			return fmt.Errorf("%w: custom color %q", ErrInvalidMaterialValue, customColor)
		}
		sel.CustomColor = hex
	}
	if err := s.selections(sessionID).SetProduct(ctx, productID, sel); err != nil {
		s.log.Warn("⚠️ Failed to cache product selection", "productId", productID, "error", err)
	}
	return nil
}

// Clear empties the state of a product and removes its stored snapshot
func (s *CustomizationService) Clear(ctx context.Context, sessionID, productID string) error {
	return s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		st := e.state
		for material := range st.Values() {
			if err := s.selections(sessionID).DeleteMaterial(ctx, productID, material); err != nil {
				s.log.Warn("⚠️ Failed to drop material selection", "productId", productID, "material", material, "error", err)
			}
		}
		st.Replace(nil)
		st.ClearSelection()
		s.persister(sessionID).Clear(ctx, productID)
		e.seen = models.MaterialValues{}
		return nil
	})
}

// EffectiveSkinTone returns the skin tone a product page shows: the selected material's
// skin tone, else the page level selection, else the profile skin tone
func (s *CustomizationService) EffectiveSkinTone(ctx context.Context, sessionID, productID string, profile *models.CustomerMetadata) (string, error) {
	var fromSelection string
	err := s.withState(ctx, sessionID, productID, func(e *stateEntry) error {
		st := e.state
		if sel, ok := st.Selected(); ok {
			if v, ok := st.Get(sel); ok && v.Type == models.MaterialValueSkinTone {
				fromSelection = v.Value
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if fromSelection != "" {
		return fromSelection, nil
	}
	if page, err := s.selections(sessionID).GetProduct(ctx, productID); err == nil && page != nil && page.SkinToneID != "" {
		return page.SkinToneID, nil
	}
	if profile != nil {
		return profile.SkinTone, nil
	}
	return "", nil
}

func checkMaterial(required []string, material string) error {
	if len(required) == 0 {
		return ErrCustomizationDisabled
	}
	for _, m := range required {
		if m == material {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownMaterial, material)
}
