package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/luxserv365/concierge/pkg/storage"
)

const (
	FolderGuestPhotos = "guest-photos"
	FolderPhotos      = "photos"
	FolderInspections = "inspections"
)

// StoredFile describes an upload after it has been written to the object store.
type StoredFile struct {
	Key          string
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
}

type acceptFunc func(m *mimetype.MIME) bool

func acceptImages(m *mimetype.MIME) bool {
	return strings.HasPrefix(m.String(), "image/")
}

var reportTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
}

func acceptReports(m *mimetype.MIME) bool {
	return mimetype.EqualsAny(m.String(), reportTypes...)
}

// fileStore writes sniffed uploads under a folder of the object store.
type fileStore struct {
	store    storage.Store
	maxBytes int64
}

func (f fileStore) save(ctx context.Context, folder string, u storage.Upload, accept acceptFunc) (StoredFile, error) {
	if f.maxBytes > 0 && u.Size > f.maxBytes {
		return StoredFile{}, fmt.Errorf("%w: %s exceeds %d MB", ErrFileTooLarge, u.Filename, f.maxBytes>>20)
	}
	mt, body, err := storage.Sniff(u)
	if err != nil {
		return StoredFile{}, fmt.Errorf("read upload %s: %w", u.Filename, err)
	}
	if !accept(mt) {
		return StoredFile{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedMedia, u.Filename, mt.String())
	}
	name := storage.NewObjectName(mt.Extension())
	key, err := storage.Key(folder, name)
	if err != nil {
		return StoredFile{}, err
	}
	if f.maxBytes > 0 {
		body = io.LimitReader(body, f.maxBytes+1)
	}
	if err := f.store.Put(ctx, key, mt.String(), body, u.Size); err != nil {
		return StoredFile{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return StoredFile{
		Key:          key,
		Filename:     name,
		OriginalName: u.Filename,
		ContentType:  mt.String(),
		Size:         u.Size,
	}, nil
}

// saveAll stores every upload or none of them.
func (f fileStore) saveAll(ctx context.Context, folder string, uploads []storage.Upload, accept acceptFunc) ([]StoredFile, error) {
	out := make([]StoredFile, 0, len(uploads))
	for _, u := range uploads {
		sf, err := f.save(ctx, folder, u, accept)
		if err != nil {
			f.remove(ctx, out)
			return nil, err
		}
		out = append(out, sf)
	}
	return out, nil
}

func (f fileStore) remove(ctx context.Context, files []StoredFile) {
	for _, sf := range files {
		if err := f.store.Delete(ctx, sf.Key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("failed to remove stored upload", "key", sf.Key, "err", err)
		}
	}
}

func (f fileStore) open(ctx context.Context, folder, filename string) (io.ReadCloser, storage.Object, error) {
	key, err := storage.Key(folder, filename)
	if err != nil {
		return nil, storage.Object{}, ErrFileNotFound
	}
	rc, obj, err := f.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.Object{}, ErrFileNotFound
		}
		return nil, storage.Object{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rc, obj, nil
}
