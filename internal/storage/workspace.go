package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workspace manages per-request download directories under a single base
// directory. Each request gets its own subdirectory so concurrent downloads
// never collide on file names.
type Workspace struct {
	baseDir string
}

// NewWorkspace creates the base directory if needed and returns a Workspace
// rooted at it.
func NewWorkspace(baseDir string) (*Workspace, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	return &Workspace{baseDir: baseDir}, nil
}

// CreateRequestDir allocates a fresh uniquely named directory for one request.
func (w *Workspace) CreateRequestDir() (string, error) {
	dir := filepath.Join(w.baseDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create request dir: %w", err)
	}
	return dir, nil
}

// Remove deletes a request directory and everything in it. Paths outside the
// workspace are refused.
func (w *Workspace) Remove(dir string) error {
	if !w.contains(dir) {
		return fmt.Errorf("refusing to remove %s: outside workspace %s", dir, w.baseDir)
	}
	return os.RemoveAll(dir)
}

// Prune removes everything under the base directory. Called once at startup
// to clear request dirs orphaned by a previous crash.
func (w *Workspace) Prune() error {
	entries, err := os.ReadDir(w.baseDir)
	if err != nil {
		return fmt.Errorf("read workspace dir: %w", err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(w.baseDir, entry.Name())); err != nil {
			return fmt.Errorf("prune %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (w *Workspace) contains(dir string) bool {
	base, err := filepath.Abs(w.baseDir)
	if err != nil {
		return false
	}
	target, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// FindArtifact returns the newest regular file in dir along with its size,
// skipping downloader intermediates. The downloader names its output from the
// video title, so discovery by scan is how the artifact is located.
func FindArtifact(dir string) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("read request dir: %w", err)
	}

	var (
		newest     string
		newestSize int64
		newestMod  time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || isIntermediate(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, entry.Name())
			newestSize = info.Size()
			newestMod = info.ModTime()
		}
	}

	if newest == "" {
		return "", 0, fmt.Errorf("no artifact found in %s", dir)
	}
	return newest, newestSize, nil
}

// ClearDir removes every entry inside dir but keeps the directory itself.
// Used between retry attempts to drop stale partial files.
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("clear %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func isIntermediate(name string) bool {
	return strings.HasSuffix(name, ".part") ||
		strings.HasSuffix(name, ".ytdl") ||
		strings.Contains(name, ".part-")
}
