// Package evidence stores proof-of-deposit files in a content-addressed
// directory so the plan snapshot only carries short references.
package evidence

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/theirongolddev/planifica/internal/model"
)

// MaxSize is the largest evidence file accepted.
const MaxSize = 25 << 20

const refPrefix = "sha256:"

var (
	ErrNotFound         = errors.New("evidence not found")
	ErrUnsupportedMedia = errors.New("unsupported evidence type")
	ErrTooLarge         = errors.New("evidence file too large")
	ErrBadRef           = errors.New("malformed evidence reference")
)

// Store keeps evidence blobs under dir on fs, one file per content hash.
type Store struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewStore returns a Store rooted at dir.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir, now: time.Now}
}

// NewOSStore returns a Store on the local disk.
func NewOSStore(dir string) *Store {
	return NewStore(afero.NewOsFs(), dir)
}

// Dir returns the blob directory.
func (s *Store) Dir() string {
	return s.dir
}

// Put reads r, checks its media type and stores it once per content hash.
// name is the original file name shown to the user.
func (s *Store) Put(name string, r io.Reader) (model.Evidence, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return model.Evidence{}, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) > MaxSize {
		return model.Evidence{}, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}

	mt := mimetype.Detect(data)
	if !Accepted(mt.String()) {
		return model.Evidence{}, fmt.Errorf("%s (%s): %w", name, mt.String(), ErrUnsupportedMedia)
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return model.Evidence{}, fmt.Errorf("creating evidence dir: %w", err)
	}
	path := filepath.Join(s.dir, key)
	if _, err := s.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.writeAtomic(path, data); err != nil {
			return model.Evidence{}, err
		}
		slog.Debug("evidence stored", "name", name, "ref", key[:12], "bytes", len(data))
	}

	return model.Evidence{
		Name:       filepath.Base(name),
		Ref:        refPrefix + key,
		MediaType:  mt.String(),
		SizeBytes:  int64(len(data)),
		AttachedAt: s.now().UTC(),
	}, nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing evidence: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("committing evidence: %w", err)
	}
	return nil
}

// Open returns the blob for ref.
func (s *Store) Open(ref string) (afero.File, error) {
	path, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("opening evidence: %w", err)
	}
	return f, nil
}

// Path returns the blob location for ref without checking that it exists.
func (s *Store) Path(ref string) (string, error) {
	key, ok := strings.CutPrefix(ref, refPrefix)
	if !ok || len(key) != sha256.Size*2 {
		return "", fmt.Errorf("%q: %w", ref, ErrBadRef)
	}
	if _, err := hex.DecodeString(key); err != nil {
		return "", fmt.Errorf("%q: %w", ref, ErrBadRef)
	}
	return filepath.Join(s.dir, key), nil
}

// Exists reports whether the blob for ref is present.
func (s *Store) Exists(ref string) bool {
	path, err := s.Path(ref)
	if err != nil {
		return false
	}
	ok, _ := afero.Exists(s.fs, path)
	return ok
}

// Stat returns file info for the blob behind ref.
func (s *Store) Stat(ref string) (os.FileInfo, error) {
	path, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("stat evidence: %w", err)
	}
	return info, nil
}

// Prune removes blobs whose reference is not in keep and returns how many
// were removed.
func (s *Store) Prune(keep map[string]struct{}) (int, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("listing evidence: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := keep[refPrefix+e.Name()]; ok {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return removed, fmt.Errorf("removing evidence %s: %w", e.Name(), err)
		}
		removed++
	}
	if removed > 0 {
		slog.Debug("evidence pruned", "removed", removed)
	}
	return removed, nil
}

// Accepted reports whether mediaType may be attached as evidence: any image,
// or a PDF.
func Accepted(mediaType string) bool {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}

// ReadAll returns the full blob for ref.
func (s *Store) ReadAll(ref string) ([]byte, error) {
	f, err := s.Open(ref)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("reading evidence: %w", err)
	}
	return buf.Bytes(), nil
}
