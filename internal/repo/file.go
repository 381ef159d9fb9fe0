package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// FileVisitLog is a VisitLog stored as a JSON array in a file, newest visit
// first. Every write rewrites the primary file and each mirror in full.
type FileVisitLog struct {
	mu      sync.Mutex
	path    string
	mirrors []string
}

// NewFileVisitLog returns a FileVisitLog rooted at path. Mirrors receive an
// identical copy of the file after every write (e.g. a built dist/ folder).
func NewFileVisitLog(path string, mirrors ...string) *FileVisitLog {
	return &FileVisitLog{path: path, mirrors: mirrors}
}

// Visits reads the whole log. A missing file is an empty log.
func (l *FileVisitLog) Visits(ctx context.Context) ([]domain.Visit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	visits, err := l.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.FileVisitLog.Visits: %w", err)
	}
	return visits, nil
}

// UpsertByDate updates the first visit sharing v's date in place, or prepends
// v. On update only the brewery, next brewery and notes are replaced.
func (l *FileVisitLog) UpsertByDate(ctx context.Context, v domain.Visit) (domain.Visit, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	visits, err := l.read(ctx)
	if err != nil {
		return domain.Visit{}, false, fmt.Errorf("repo.FileVisitLog.UpsertByDate: %w", err)
	}

	stored, created := v, true
	for i := range visits {
		if visits[i].Date != v.Date {
			continue
		}
		visits[i].BreweryName = v.BreweryName
		visits[i].NextBrewery = v.NextBrewery
		visits[i].Notes = v.Notes
		stored, created = visits[i], false
		break
	}
	if created {
		visits = append([]domain.Visit{v}, visits...)
	}

	if err := l.write(visits); err != nil {
		return domain.Visit{}, false, fmt.Errorf("repo.FileVisitLog.UpsertByDate: %w", err)
	}
	return stored, created, nil
}

func (l *FileVisitLog) read(ctx context.Context) ([]domain.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Visit{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Visit{}, nil
	}

	var visits []domain.Visit
	if err := json.Unmarshal(raw, &visits); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	return visits, nil
}

// write encodes visits as 2-space indented JSON with a trailing newline and
// replaces the primary file and every mirror.
func (l *FileVisitLog) write(visits []domain.Visit) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(visits); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	for _, p := range append([]string{l.path}, l.mirrors...) {
		if err := replaceFile(p, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// replaceFile writes data to a temp file beside path and renames it over
// path, so concurrent readers see either the old or the new log, never a
// partial one.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
