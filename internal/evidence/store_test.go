package evidence

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newMemStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewStore(fs, "/data/evidence"), fs
}

func TestPut_StoresOncePerContent(t *testing.T) {
	s, fs := newMemStore(t)

	ev1, err := s.Put("/home/u/deposit.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ev1.Name != "deposit.png" {
		t.Errorf("Name = %q, want deposit.png", ev1.Name)
	}
	if ev1.MediaType != "image/png" {
		t.Errorf("MediaType = %q, want image/png", ev1.MediaType)
	}
	if !strings.HasPrefix(ev1.Ref, "sha256:") {
		t.Errorf("Ref = %q, want sha256: prefix", ev1.Ref)
	}
	if ev1.SizeBytes != int64(len(pngHeader)) {
		t.Errorf("SizeBytes = %d, want %d", ev1.SizeBytes, len(pngHeader))
	}

	ev2, err := s.Put("copy.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Put copy: %v", err)
	}
	if ev2.Ref != ev1.Ref {
		t.Errorf("same content got refs %q and %q", ev1.Ref, ev2.Ref)
	}

	entries, err := afero.ReadDir(fs, "/data/evidence")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("blob count = %d, want 1", len(entries))
	}

	got, err := s.ReadAll(ev1.Ref)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, pngHeader) {
		t.Error("ReadAll returned different bytes")
	}
}

func TestPut_AcceptsPDF(t *testing.T) {
	s, _ := newMemStore(t)
	ev, err := s.Put("statement.pdf", strings.NewReader("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ev.MediaType != "application/pdf" {
		t.Errorf("MediaType = %q, want application/pdf", ev.MediaType)
	}
}

func TestPut_RejectsText(t *testing.T) {
	s, _ := newMemStore(t)
	_, err := s.Put("notes.txt", strings.NewReader("just some notes"))
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("err = %v, want ErrUnsupportedMedia", err)
	}
}

func TestPath_RejectsMalformedRefs(t *testing.T) {
	s, _ := newMemStore(t)
	for _, ref := range []string{"", "sha256:", "md5:abcd", "sha256:../../etc/passwd", "sha256:" + strings.Repeat("z", 64)} {
		if _, err := s.Path(ref); !errors.Is(err, ErrBadRef) {
			t.Errorf("Path(%q) err = %v, want ErrBadRef", ref, err)
		}
	}
}

func TestOpen_Missing(t *testing.T) {
	s, _ := newMemStore(t)
	_, err := s.Open("sha256:" + strings.Repeat("a", 64))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPrune_KeepsReferenced(t *testing.T) {
	s, _ := newMemStore(t)
	keep, err := s.Put("a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	drop, err := s.Put("b.png", bytes.NewReader(append(append([]byte{}, pngHeader...), 0x01)))
	if err != nil {
		t.Fatal(err)
	}

	n, err := s.Prune(map[string]struct{}{keep.Ref: {}})
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("removed = %d, want 1", n)
	}
	if !s.Exists(keep.Ref) {
		t.Error("referenced blob was removed")
	}
	if s.Exists(drop.Ref) {
		t.Error("unreferenced blob survived")
	}
}

func TestPrune_NoDirectory(t *testing.T) {
	s, _ := newMemStore(t)
	n, err := s.Prune(nil)
	if err != nil || n != 0 {
		t.Fatalf("Prune on empty fs = %d, %v; want 0, nil", n, err)
	}
}

func TestReader_ReadEvidence(t *testing.T) {
	s, _ := newMemStore(t)
	src := afero.NewMemMapFs()
	if err := afero.WriteFile(src, "/tmp/receipt.png", pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewReader(src, s)
	ev, err := r.ReadEvidence(context.Background(), "/tmp/receipt.png")
	if err != nil {
		t.Fatalf("ReadEvidence: %v", err)
	}
	if ev.Name != "receipt.png" || !s.Exists(ev.Ref) {
		t.Errorf("evidence = %+v, exists=%v", ev, s.Exists(ev.Ref))
	}

	if _, err := r.ReadEvidence(context.Background(), "/tmp/missing.png"); err == nil {
		t.Error("ReadEvidence on missing file returned nil error")
	}
}

func TestStat(t *testing.T) {
	s, _ := newMemStore(t)
	ev, err := s.Put("a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	info, err := s.Stat(ev.Ref)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != ev.SizeBytes {
		t.Errorf("Size = %d, want %d", info.Size(), ev.SizeBytes)
	}
	if _, err := s.Stat("sha256:" + strings.Repeat("b", 64)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stat missing err = %v, want ErrNotFound", err)
	}
}
