// Package ops moves save slots between stores through tar.gz archives.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cardempire/internal/game"
	"cardempire/internal/store"
)

const slotExt = ".json"

// MaxSlotBytes bounds a single archived save.
const MaxSlotBytes = 8 << 20

// ExportSlots writes every slot in s to a gzipped tar at archivePath, one
// <slot>.json entry per save, and returns how many were written. The archive
// is built in a temporary file beside archivePath and renamed into place, so
// a failed export leaves any earlier archive untouched.
func ExportSlots(ctx context.Context, s store.Store, archivePath string) (n int, err error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if archivePath == "" || archivePath == "." {
		return 0, fmt.Errorf("archivePath is required")
	}
	slots, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	dir := filepath.Dir(archivePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(archivePath)+".*.tmp")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if n, err = writeSlots(ctx, s, slots, f); err != nil {
		return n, err
	}
	if err = f.Sync(); err != nil {
		return n, err
	}
	if err = f.Close(); err != nil {
		return n, err
	}
	if err = os.Rename(f.Name(), archivePath); err != nil {
		return n, err
	}
	return n, nil
}

func writeSlots(ctx context.Context, s store.Store, slots []string, w io.Writer) (int, error) {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	now := time.Now().UTC()
	n := 0
	for _, slot := range slots {
		data, err := s.Load(ctx, slot)
		if err != nil {
			return n, fmt.Errorf("export %q: %w", slot, err)
		}
		hdr := &tar.Header{
			Name:     slot + slotExt,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(data)),
			ModTime:  now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return n, err
		}
		if _, err := tw.Write(data); err != nil {
			return n, err
		}
		n++
	}

	if err := tw.Close(); err != nil {
		return n, err
	}
	return n, gz.Close()
}

// ImportSlots loads every entry of an archive into s. Entries that are not
// valid game snapshots abort the import before anything is written.
func ImportSlots(ctx context.Context, s store.Store, archivePath string) (int, error) {
	saves, err := ReadArchive(archivePath)
	if err != nil {
		return 0, err
	}
	for slot, data := range saves {
		if _, err := game.Deserialize(data); err != nil {
			return 0, fmt.Errorf("import %q: %w", slot, err)
		}
	}
	n := 0
	for slot, data := range saves {
		if err := s.Save(ctx, slot, data); err != nil {
			return n, fmt.Errorf("import %q: %w", slot, err)
		}
		n++
	}
	return n, nil
}

// ReadArchive returns the saves held in an archive keyed by slot.
func ReadArchive(archivePath string) (map[string][]byte, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if archivePath == "" || archivePath == "." {
		return nil, fmt.Errorf("archivePath is required")
	}
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	out := map[string][]byte{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		slot, err := slotFromEntry(hdr.Name)
		if err != nil {
			return nil, err
		}
		if hdr.Size > MaxSlotBytes {
			return nil, fmt.Errorf("archive entry %s is %d bytes", hdr.Name, hdr.Size)
		}
		data, err := io.ReadAll(io.LimitReader(tr, MaxSlotBytes))
		if err != nil {
			return nil, err
		}
		out[slot] = data
	}
	return out, nil
}

func slotFromEntry(name string) (string, error) {
	clean := path.Clean(strings.TrimSpace(name))
	if path.Dir(clean) != "." {
		return "", fmt.Errorf("invalid archive entry path: %s", name)
	}
	slot, ok := strings.CutSuffix(clean, slotExt)
	if !ok {
		return "", fmt.Errorf("archive entry %s is not a save", name)
	}
	if err := store.ValidateSlot(slot); err != nil {
		return "", err
	}
	return slot, nil
}

// Digest hashes every slot in s in name order.
func Digest(ctx context.Context, s store.Store) (string, error) {
	slots, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, slot := range slots {
		data, err := s.Load(ctx, slot)
		if err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, slot)
		_, _ = io.WriteString(h, "\n")
		_, _ = h.Write(data)
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
