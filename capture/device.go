// Package capture manages exclusive image capture sessions feeding the skin tone
// classifier.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDeviceBusy is returned when the owner already holds an active capture session
	ErrDeviceBusy = errors.New("capture device is busy")
	// ErrSessionClosed is returned for operations on canceled or confirmed sessions and for
	// results that arrive after the session was closed
	ErrSessionClosed = errors.New("capture session is closed")
	// ErrSessionNotFound is returned for unknown session ids or foreign owners
	ErrSessionNotFound = errors.New("capture session not found")
	// ErrPermissionDenied is returned when the device refuses access. The caller may retry
	// or fall back to uploading a photo
	ErrPermissionDenied = errors.New("capture permission denied")
	// ErrFrameSuperseded is returned when a newer frame was submitted while this one was
	// being analyzed
	ErrFrameSuperseded = errors.New("capture frame superseded")
	// ErrNoResult is returned when confirming a session that has not analyzed a frame
	ErrNoResult = errors.New("capture session has no result")
)

const (
	SourceCamera = "camera"
	SourceUpload = "upload"
)

// Device is an exclusive image source. Close must be safe to call more than once
type Device interface {
	Open(ctx context.Context) error
	// Capture returns the image to analyze. frame carries client supplied bytes for devices
	// fed by the client
	Capture(ctx context.Context, frame []byte) ([]byte, error)
	Close() error
}

// DeviceFactory creates the device for a source ("camera" or "upload")
type DeviceFactory func(source string) (Device, error)

// FrameDevice is fed by the client: camera frames or an uploaded photo arrive with each
// capture request
type FrameDevice struct {
	mu       sync.Mutex
	source   string
	open     bool
	maxBytes int
}

// NewFrameDevice creates a FrameDevice accepting frames up to maxBytes (<= 0: unlimited)
func NewFrameDevice(source string, maxBytes int) *FrameDevice {
	return &FrameDevice{source: source, maxBytes: maxBytes}
}

// Open implements Device
func (d *FrameDevice) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	return nil
}

// Capture implements Device
func (d *FrameDevice) Capture(ctx context.Context, frame []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, ErrSessionClosed
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("empty %s frame", d.source)
	}
	if d.maxBytes > 0 && len(frame) > d.maxBytes {
		return nil, fmt.Errorf("%s frame exceeds %d bytes", d.source, d.maxBytes)
	}
	return frame, nil
}

// Close implements Device
func (d *FrameDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return nil
}

// FrameDeviceFactory returns a DeviceFactory building FrameDevices for the known sources
func FrameDeviceFactory(maxBytes int) DeviceFactory {
	return func(source string) (Device, error) {
		switch source {
		case SourceCamera, SourceUpload:
			return NewFrameDevice(source, maxBytes), nil
		default:
			return nil, fmt.Errorf("unknown capture source: %s", source)
		}
	}
}
