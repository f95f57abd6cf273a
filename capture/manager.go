package capture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"skintone-studio/logger"
	"skintone-studio/models"
)

// Session status values
const (
	StatusOpen      = "open"
	StatusAnalyzed  = "analyzed"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// Analyzer classifies a captured image
type Analyzer interface {
	AnalyzeBytes(ctx context.Context, imageData []byte) (*models.SkinToneResult, error)
}

// Session is one capture session. Fields are guarded by the Manager lock
type Session struct {
	ID     string
	Owner  string
	Source string
	Status string
	Result *models.SkinToneResult

	device     Device
	generation uint64
	lastActive time.Time
	inFlight   int
}

// View returns the API representation of the session
func (s *Session) View() models.CaptureSessionResponse {
	return models.CaptureSessionResponse{ID: s.ID, Source: s.Source, Status: s.Status, Result: s.Result}
}

// DefaultIdleTimeout is how long a session may go untouched before its device is reclaimed
const DefaultIdleTimeout = 2 * time.Minute

// Manager hands out capture sessions; an owner holds at most one active session and its
// device is released on every exit path, abandonment included
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	active      map[string]string // owner -> session id
	newDevice   DeviceFactory
	analyzer    Analyzer
	idleTimeout time.Duration
	now         func() time.Time
	log         *logger.Logger
}

// NewManager creates a new Manager. idleTimeout <= 0 uses DefaultIdleTimeout
func NewManager(newDevice DeviceFactory, analyzer Analyzer, idleTimeout time.Duration, log *logger.Logger) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		active:      make(map[string]string),
		newDevice:   newDevice,
		analyzer:    analyzer,
		idleTimeout: idleTimeout,
		now:         time.Now,
		log:         log,
	}
}

// Open starts a capture session for owner
func (m *Manager) Open(ctx context.Context, owner, source string) (models.CaptureSessionResponse, error) {
	m.mu.Lock()
	var abandoned Device
	if current, busy := m.active[owner]; busy {
		s, ok := m.sessions[current]
		if !ok || !m.idle(s) {
			m.mu.Unlock()
			return models.CaptureSessionResponse{}, ErrDeviceBusy
		}
		m.log.Warn("⚠️ Reclaiming abandoned capture session", "session", s.ID, "owner", owner)
		s.Status = StatusCanceled
		abandoned = m.detach(s)
	}
	// Reserve the slot while the device opens
	id := uuid.NewString()
	m.active[owner] = id
	m.mu.Unlock()
	m.release(abandoned)

	device, err := m.newDevice(source)
	if err == nil {
		if err = device.Open(ctx); err != nil {
			m.release(device)
		}
	}
	if err != nil {
		m.mu.Lock()
		delete(m.active, owner)
		m.mu.Unlock()
		m.log.Warn("⚠️ Capture device unavailable", "owner", owner, "source", source, "error", err)
		return models.CaptureSessionResponse{}, err
	}

	s := &Session{ID: id, Owner: owner, Source: source, Status: StatusOpen, device: device, lastActive: m.now()}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.log.Debug("Capture session opened", "session", id, "owner", owner, "source", source)
	return s.View(), nil
}

// Submit captures and analyzes one frame. A result that completes after the session was
// canceled is discarded with ErrSessionClosed
func (m *Manager) Submit(ctx context.Context, owner, id string, frame []byte) (*models.SkinToneResult, error) {
	m.mu.Lock()
	s, err := m.lookup(owner, id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	device := s.device
	s.generation++
	generation := s.generation
	s.lastActive = m.now()
	s.inFlight++
	m.mu.Unlock()

	result, err := m.analyze(ctx, device, frame)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.inFlight--
	s.lastActive = m.now()
	if err != nil {
		return nil, err
	}
	current, ok := m.sessions[id]
	if !ok || !isActive(current) {
		m.log.Debug("Dropping late capture result", "session", id)
		return nil, ErrSessionClosed
	}
	if current.generation != generation {
		return nil, ErrFrameSuperseded
	}
	current.Result = result
	current.Status = StatusAnalyzed
	return result, nil
}

func (m *Manager) analyze(ctx context.Context, device Device, frame []byte) (*models.SkinToneResult, error) {
	img, err := device.Capture(ctx, frame)
	if err != nil {
		return nil, err
	}
	return m.analyzer.AnalyzeBytes(ctx, img)
}

// Confirm closes the session and returns its last result
func (m *Manager) Confirm(owner, id string) (*models.SkinToneResult, error) {
	m.mu.Lock()
	s, err := m.lookup(owner, id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if s.Result == nil {
		m.mu.Unlock()
		return nil, ErrNoResult
	}
	result := s.Result
	s.Status = StatusConfirmed
	device := m.detach(s)
	m.mu.Unlock()

	m.release(device)
	return result, nil
}

// Cancel closes the session, releases the device and discards in-flight results
func (m *Manager) Cancel(owner, id string) error {
	m.mu.Lock()
	s, err := m.lookup(owner, id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	s.Status = StatusCanceled
	device := m.detach(s)
	m.mu.Unlock()

	m.release(device)
	return nil
}

// Get returns the session view
func (m *Manager) Get(owner, id string) (models.CaptureSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(owner, id)
	if err != nil {
		return models.CaptureSessionResponse{}, err
	}
	s.lastActive = m.now()
	return s.View(), nil
}

// ReapIdle cancels every session idle for longer than the idle timeout and releases its
// device. Returns the number of reclaimed sessions
func (m *Manager) ReapIdle() int {
	m.mu.Lock()
	var devices []Device
	for _, s := range m.sessions {
		if m.idle(s) {
			s.Status = StatusCanceled
			devices = append(devices, m.detach(s))
		}
	}
	m.mu.Unlock()
	for _, d := range devices {
		m.release(d)
	}
	if len(devices) > 0 {
		m.log.Info("🔄 Reclaimed idle capture sessions", "count", len(devices))
	}
	return len(devices)
}

// RunReaper calls ReapIdle every interval until ctx is done
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ReapIdle()
		}
	}
}

// Close cancels every session. Used on shutdown
func (m *Manager) Close() {
	m.mu.Lock()
	var devices []Device
	for _, s := range m.sessions {
		s.Status = StatusCanceled
		devices = append(devices, m.detach(s))
	}
	m.mu.Unlock()
	for _, d := range devices {
		m.release(d)
	}
}

// lookup must be called with m.mu held
func (m *Manager) lookup(owner, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok || s.Owner != owner {
		return nil, ErrSessionNotFound
	}
	if !isActive(s) {
		return nil, ErrSessionClosed
	}
	return s, nil
}

// detach must be called with m.mu held
func (m *Manager) detach(s *Session) Device {
	delete(m.sessions, s.ID)
	if m.active[s.Owner] == s.ID {
		delete(m.active, s.Owner)
	}
	s.generation++
	d := s.device
	s.device = nil
	return d
}

func (m *Manager) release(d Device) {
	if d == nil {
		return
	}
	if err := d.Close(); err != nil {
		m.log.Warn("⚠️ Failed to release capture device", "error", err)
	}
}

// idle must be called with m.mu held
func (m *Manager) idle(s *Session) bool {
	return s.inFlight == 0 && m.now().Sub(s.lastActive) > m.idleTimeout
}

func isActive(s *Session) bool {
	return s.Status == StatusOpen || s.Status == StatusAnalyzed
}
