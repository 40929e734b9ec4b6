//go:build unix

package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"syscall"
	"testing"
)

// scriptedWriter writes at most step bytes per call and fails with the queued
// errors before making progress.
type scriptedWriter struct {
	buf   bytes.Buffer
	step  int
	errs  []error
	calls int
}

func (w *scriptedWriter) Write(p []byte) (int, error) {
	w.calls++
	if len(w.errs) > 0 {
		err := w.errs[0]
		w.errs = w.errs[1:]
		if err != nil {
			return -1, err
		}
	}
	n := len(p)
	if w.step > 0 && n > w.step {
		n = w.step
	}
	return w.buf.Write(p[:n])
}

func testPayload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestWriteAll_ShortWritesAndInterrupts(t *testing.T) {
	ctx := context.Background()
	eintr := os.NewSyscallError("write", syscall.EINTR)
	tests := []struct {
		name string
		step int
		errs []error
	}{
		{name: "single call", step: 0},
		{name: "one byte at a time", step: 1},
		{name: "odd sized partial writes", step: 7},
		{name: "interrupted then partial", step: 5, errs: []error{eintr, nil, eintr, eintr, nil}},
		{name: "bare EINTR", step: 64, errs: []error{syscall.EINTR}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := testPayload(64)
			w := &scriptedWriter{step: tt.step, errs: tt.errs}
			if err := WriteAll(ctx, w, payload); err != nil {
				t.Fatalf("WriteAll: %v", err)
			}
			if !bytes.Equal(w.buf.Bytes(), payload) {
				t.Fatalf("written bytes differ: got %d bytes", w.buf.Len())
			}
		})
	}
}

func TestWriteAll_NonInterruptErrorAborts(t *testing.T) {
	w := &scriptedWriter{step: 8, errs: []error{nil, os.NewSyscallError("write", syscall.ENOSPC)}}
	err := WriteAll(context.Background(), w, testPayload(64))
	if !errors.Is(err, syscall.ENOSPC) {
		t.Fatalf("want ENOSPC, got %v", err)
	}
	if w.calls != 2 {
		t.Fatalf("calls = %d, want 2", w.calls)
	}
	if w.buf.Len() != 8 {
		t.Fatalf("written = %d, want 8", w.buf.Len())
	}
}

type zeroWriter struct{}

func (zeroWriter) Write(p []byte) (int, error) { return 0, nil }

func TestWriteAll_NoProgress(t *testing.T) {
	if err := WriteAll(context.Background(), zeroWriter{}, testPayload(8)); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("want io.ErrShortWrite, got %v", err)
	}
}

func TestWriteAll_EmptyBuffer(t *testing.T) {
	w := &scriptedWriter{}
	if err := WriteAll(context.Background(), w, nil); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if w.calls != 0 {
		t.Fatalf("calls = %d, want 0", w.calls)
	}
}

func TestFDWriter(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "fdwriter")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	payload := testPayload(300)
	if err := WriteAll(context.Background(), newFDWriter(f), payload); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("file content differs")
	}
}
