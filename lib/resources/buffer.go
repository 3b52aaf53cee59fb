package resources

import (
	"fmt"
	"unsafe"

	"github.com/pkuiper/glquad/lib/device"
)

// Buffer owns one block of device memory bound to a fixed target
// (device.ArrayBuffer for vertex-attribute data, device.ElementArrayBuffer
// for indices). Allocation and upload require the buffer to currently occupy
// its target's binding slot; Bind and Unbind are explicit so a caller can
// batch several operations under one bind. Bound status is derived from the
// device's per-target binding slot, never cached.
type Buffer struct {
	dev       device.Device
	handle    uint32
	target    uint32
	sizeBytes int
	usage     uint32
	allocated bool
	disposed  bool
}

// NewBuffer allocates a native buffer object. The target is fixed for the
// buffer's lifetime.
func NewBuffer(dev device.Device, target uint32) (*Buffer, error) {
	handle := dev.GenBuffer()
	if handle == 0 {
		return nil, fmt.Errorf("buffer: %w", ErrCreateFailed)
	}
	if err := checkDevice(dev, "glGenBuffers"); err != nil {
		dev.DeleteBuffer(handle)
		return nil, err
	}
	return &Buffer{dev: dev, handle: handle, target: target}, nil
}

// Handle returns the native handle, 0 after disposal.
func (b *Buffer) Handle() uint32 { return b.handle }

// Target returns the binding target the buffer was constructed for.
func (b *Buffer) Target() uint32 { return b.target }

// Disposed reports whether Dispose has run.
func (b *Buffer) Disposed() bool { return b.disposed }

// Valid reports whether the buffer still owns a live native object.
func (b *Buffer) Valid() bool { return !b.disposed && b.handle != 0 }

// SizeBytes returns the allocated size. Only meaningful once Allocated
// reports true.
func (b *Buffer) SizeBytes() int { return b.sizeBytes }

// Usage returns the usage hint recorded by the last allocate or upload.
func (b *Buffer) Usage() uint32 { return b.usage }

// Allocated reports whether device memory has been reserved at least once.
func (b *Buffer) Allocated() bool { return b.allocated }

// Bound reports whether this buffer occupies its target's binding slot.
func (b *Buffer) Bound() bool {
	return b.handle != 0 && b.dev.BoundBuffer(b.target) == b.handle
}

// Bind makes this buffer current for its target; a no-op when already
// bound.
func (b *Buffer) Bind() error {
	if !b.Valid() {
		return fmt.Errorf("bind buffer: %w", ErrInvalidState)
	}
	if b.Bound() {
		return nil
	}
	b.dev.BindBuffer(b.target, b.handle)
	return checkDevice(b.dev, "glBindBuffer")
}

// Unbind clears the target's binding slot; a no-op when this buffer is not
// the bound one.
func (b *Buffer) Unbind() error {
	if !b.Valid() {
		return fmt.Errorf("unbind buffer: %w", ErrInvalidState)
	}
	if !b.Bound() {
		return nil
	}
	b.dev.BindBuffer(b.target, 0)
	return checkDevice(b.dev, "glBindBuffer")
}

// Allocate reserves sizeBytes of zero-initialised device memory. The buffer
// must currently be bound.
func (b *Buffer) Allocate(sizeBytes int, usage uint32) error {
	if !b.Valid() || sizeBytes < 0 || !b.Bound() {
		return fmt.Errorf("allocate buffer: %w", ErrInvalidState)
	}
	b.dev.BufferData(b.target, sizeBytes, make([]byte, sizeBytes), usage)
	if err := checkDevice(b.dev, "glBufferData"); err != nil {
		return err
	}
	b.sizeBytes = sizeBytes
	b.usage = usage
	b.allocated = true
	return nil
}

// UploadBytes allocates-and-fills in one step, sized to exactly len(data).
// The buffer must currently be bound; a later upload while still bound does
// not need a rebind.
func (b *Buffer) UploadBytes(data []byte, usage uint32) error {
	if !b.Valid() || !b.Bound() {
		return fmt.Errorf("upload buffer data: %w", ErrInvalidState)
	}
	b.dev.BufferData(b.target, len(data), data, usage)
	if err := checkDevice(b.dev, "glBufferData"); err != nil {
		return err
	}
	b.sizeBytes = len(data)
	b.usage = usage
	b.allocated = true
	return nil
}

// Element constrains Upload to the fixed-size scalar types a buffer can
// carry on the wire.
type Element interface {
	~float32 | ~float64 | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32
}

// Upload pushes a typed slice into b, computing the byte size as
// element count times element size. Same bind discipline as UploadBytes.
func Upload[E Element](b *Buffer, data []E, usage uint32) error {
	if len(data) == 0 {
		return b.UploadBytes(nil, usage)
	}
	n := len(data) * int(unsafe.Sizeof(data[0]))
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), n)
	return b.UploadBytes(bytes, usage)
}

// Dispose releases the native buffer object and resets the size and usage
// bookkeeping. Safe to call more than once.
func (b *Buffer) Dispose() {
	if b.disposed {
		return
	}
	b.dev.DeleteBuffer(b.handle)
	b.handle = 0
	b.sizeBytes = 0
	b.usage = 0
	b.allocated = false
	b.disposed = true
}
