// All cache dir related functions
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	cfg "github.com/1F47E/go-termreel/pkg/config"
	"github.com/1F47E/go-termreel/pkg/errs"
	"github.com/1F47E/go-termreel/pkg/logger"
)

var ErrLocked = errors.New("cache is used by another run")

// Cache is the scratch dir holding extracted frames and audio of one run.
type Cache struct {
	Root string
	lock *flock.Flock
}

func New(root string) *Cache {
	return &Cache{Root: root}
}

func (c *Cache) FramesDir() string {
	return filepath.Join(c.Root, "frames")
}

// FramePattern is the ffmpeg output pattern for frame files.
func (c *Cache) FramePattern() string {
	return filepath.Join(c.FramesDir(), cfg.FramePattern)
}

func (c *Cache) AudioPath() string {
	return filepath.Join(c.Root, cfg.AudioFile)
}

// Lock takes an exclusive lock next to the cache root. The lock file
// lives outside Root so Reset does not remove it.
func (c *Cache) Lock() error {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(c.Root)), os.ModePerm); err != nil {
		return errs.New(errs.KindCache, "lock", err)
	}
	l := flock.New(filepath.Clean(c.Root) + ".lock")
	ok, err := l.TryLock()
	if err != nil {
		return errs.New(errs.KindCache, "lock", err)
	}
	if !ok {
		return errs.New(errs.KindCache, "lock "+l.Path(), ErrLocked)
	}
	c.lock = l
	return nil
}

func (c *Cache) Unlock() error {
	if c.lock == nil {
		return nil
	}
	err := c.lock.Unlock()
	c.lock = nil
	if err != nil {
		return errs.New(errs.KindCache, "unlock", err)
	}
	return nil
}

// Reset wipes the cache and recreates an empty frames dir, so frames of
// a previous run never leak into this one.
func (c *Cache) Reset() error {
	log := logger.Scope("storage")
	if _, err := os.Stat(c.Root); err == nil {
		log.Debugf("Removing stale cache %s", c.Root)
		if err := os.RemoveAll(c.Root); err != nil {
			return errs.New(errs.KindCache, "reset", err)
		}
	}
	if err := os.MkdirAll(c.FramesDir(), os.ModePerm); err != nil {
		return errs.New(errs.KindCache, "reset", fmt.Errorf("Error creating frames dir: %w", err))
	}
	return nil
}

// ScanFrames lists frame files in temporal order.
func (c *Cache) ScanFrames() ([]string, error) {
	dir := c.FramesDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.New(errs.KindCache, "scan", err)
	}
	// filter out files
	filesList := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), cfg.FramePrefix) {
			continue
		}
		filesList = append(filesList, filepath.Join(dir, file.Name()))
	}
	if len(filesList) == 0 {
		return nil, errs.Newf(errs.KindCache, "scan", "no frames in %s", dir)
	}
	sort.Strings(filesList)
	return filesList, nil
}

// CountFrames is ScanFrames without sorting or the empty check.
func (c *Cache) CountFrames() int {
	files, err := os.ReadDir(c.FramesDir())
	if err != nil {
		return 0
	}
	n := 0
	for _, f := range files {
		if strings.HasPrefix(f.Name(), cfg.FramePrefix) {
			n++
		}
	}
	return n
}
