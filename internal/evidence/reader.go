package evidence

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/theirongolddev/planifica/internal/model"
)

// Reader copies user-selected files from a source filesystem into a Store.
// It satisfies planner.EvidenceReader.
type Reader struct {
	src   afero.Fs
	store *Store
}

// NewReader returns a Reader over src. A nil src means the local disk.
func NewReader(src afero.Fs, store *Store) *Reader {
	if src == nil {
		src = afero.NewOsFs()
	}
	return &Reader{src: src, store: store}
}

// ReadEvidence stores the file at path and returns its reference.
func (r *Reader) ReadEvidence(ctx context.Context, path string) (model.Evidence, error) {
	if err := ctx.Err(); err != nil {
		return model.Evidence{}, err
	}

	info, err := r.src.Stat(path)
	if err != nil {
		return model.Evidence{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.Evidence{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxSize {
		return model.Evidence{}, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	f, err := r.src.Open(path)
	if err != nil {
		return model.Evidence{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return r.store.Put(path, f)
}
