package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1F47E/go-termreel/pkg/errs"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResetWipesPreviousRun(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))

	// first run
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for i := 1; i <= 5; i++ {
		touch(t, filepath.Join(c.FramesDir(), fmt.Sprintf("frame-%07d.png", i)))
	}
	touch(t, c.AudioPath())

	// second run
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := os.Stat(c.AudioPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale audio survived reset: %v", err)
	}
	if n := c.CountFrames(); n != 0 {
		t.Errorf("got %d stale frames, want 0", n)
	}
	for i := 1; i <= 2; i++ {
		touch(t, filepath.Join(c.FramesDir(), fmt.Sprintf("frame-%07d.png", i)))
	}

	got, err := c.ScanFrames()
	if err != nil {
		t.Fatalf("ScanFrames: %v", err)
	}
	want := []string{
		filepath.Join(c.FramesDir(), "frame-0000001.png"),
		filepath.Join(c.FramesDir(), "frame-0000002.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanFramesOrder(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}

	// created out of order, plus noise
	for _, i := range []int{7, 10, 1, 3, 9, 2, 8, 4, 6, 5} {
		touch(t, filepath.Join(c.FramesDir(), fmt.Sprintf("frame-%07d.png", i)))
	}
	touch(t, filepath.Join(c.FramesDir(), "thumbs.db"))
	if err := os.Mkdir(filepath.Join(c.FramesDir(), "frame-dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := c.ScanFrames()
	if err != nil {
		t.Fatalf("ScanFrames: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("got %d frames, want 10", len(got))
	}
	for i, f := range got {
		want := filepath.Join(c.FramesDir(), fmt.Sprintf("frame-%07d.png", i+1))
		if f != want {
			t.Errorf("frame %d: got %s, want %s", i, f, want)
		}
	}
}

func TestScanFramesEmpty(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	_, err := c.ScanFrames()
	if !errors.Is(err, errs.ErrCache) {
		t.Errorf("got %v, want cache error", err)
	}
}

func TestLockIsExclusive(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	a := New(root)
	b := New(root)

	if err := a.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	err := b.Lock()
	if !errors.Is(err, ErrLocked) {
		t.Errorf("got %v, want ErrLocked", err)
	}
	if !errors.Is(err, errs.ErrCache) {
		t.Errorf("got %v, want cache error", err)
	}

	// reset must not drop the lock file
	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(root + ".lock"); err != nil {
		t.Errorf("lock file removed by reset: %v", err)
	}

	if err := a.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := b.Lock(); err != nil {
		t.Errorf("Lock after unlock: %v", err)
	}
	_ = b.Unlock()
}
