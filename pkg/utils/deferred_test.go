package utils

import (
	"bytes"
	"testing"
)

func TestDeferredWriter(t *testing.T) {
	var w DeferredWriter

	if _, err := w.Write([]byte("one\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte("two\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var out bytes.Buffer
	if err := w.Flush(&out); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if out.String() != "one\ntwo\n" {
		t.Errorf("Flush output = %q, want %q", out.String(), "one\ntwo\n")
	}

	// Second flush is a no-op.
	out.Reset()
	if err := w.Flush(&out); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("second Flush wrote %q, want empty", out.String())
	}
}
