package secrets

import "runtime"

// Buffer is an exclusively owned copy of secret bytes that is wiped on
// Destroy. The zero value is an empty, already-destroyed buffer.
type Buffer struct {
	data []byte
}

// New copies src into a fresh Buffer. The caller keeps ownership of src and
// remains responsible for wiping it if it is itself secret material.
func New(src []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(src))}
	copy(b.data, src)
	return b
}

// Append returns a new Buffer holding the concatenation of b and extra.
// Used to mix a pepper into a password copy without touching the original.
func (b *Buffer) Append(extra []byte) *Buffer {
	out := &Buffer{data: make([]byte, 0, len(b.data)+len(extra))}
	out.data = append(out.data, b.data...)
	out.data = append(out.data, extra...)
	return out
}

// Clone returns an independent copy with its own lifetime.
func (b *Buffer) Clone() *Buffer {
	return New(b.data)
}

// Bytes exposes the underlying slice for the duration of a call. The slice
// must not be retained past Destroy.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len reports the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Destroy overwrites the buffer with zeros and drops the backing slice.
// Safe to call more than once.
func (b *Buffer) Destroy() {
	if b == nil || b.data == nil {
		return
	}
	wipe(b.data)
	b.data = nil
}

// Wipe zeroes an arbitrary byte slice in place. For slices the caller does
// not want to wrap in a Buffer (e.g. intermediate hash inputs).
func Wipe(p []byte) {
	wipe(p)
}

func wipe(p []byte) {
	for i := range p {
		p[i] = 0
	}
	// The slice must stay reachable until the zeroing store is done.
	runtime.KeepAlive(p)
}
