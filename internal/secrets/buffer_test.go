package secrets

import (
	"bytes"
	"testing"
)

func TestNewCopiesInput(t *testing.T) {
	src := []byte("hunter2")
	b := New(src)

	src[0] = 'X'
	if !bytes.Equal(b.Bytes(), []byte("hunter2")) {
		t.Fatalf("buffer aliased caller memory: %q", b.Bytes())
	}
}

func TestDestroyZeroesBacking(t *testing.T) {
	b := New([]byte("hunter2"))
	backing := b.Bytes()

	b.Destroy()

	for i, c := range backing {
		if c != 0 {
			t.Fatalf("byte %d not zeroed: %x", i, c)
		}
	}
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer after Destroy, got len %d", b.Len())
	}
}

func TestDestroyIdempotent(t *testing.T) {
	b := New([]byte("secret"))
	b.Destroy()
	b.Destroy()

	var nilBuf *Buffer
	nilBuf.Destroy()
}

func TestAppendDoesNotMutateReceiver(t *testing.T) {
	b := New([]byte("password"))
	defer b.Destroy()

	peppered := b.Append([]byte("pepper"))
	defer peppered.Destroy()

	if !bytes.Equal(b.Bytes(), []byte("password")) {
		t.Fatalf("receiver mutated: %q", b.Bytes())
	}
	if !bytes.Equal(peppered.Bytes(), []byte("passwordpepper")) {
		t.Fatalf("unexpected concatenation: %q", peppered.Bytes())
	}
}

func TestCloneIndependentLifetime(t *testing.T) {
	b := New([]byte("hunter2"))
	c := b.Clone()
	b.Destroy()

	if !bytes.Equal(c.Bytes(), []byte("hunter2")) {
		t.Fatalf("clone shared backing with destroyed original: %q", c.Bytes())
	}
	c.Destroy()
}
