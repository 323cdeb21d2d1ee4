// Package storage keeps uploaded files (inspection reports, property photos,
// guest photos) in an object store.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidName = errors.New("invalid object name")
)

type Object struct {
	Name        string
	ContentType string
	Size        int64
}

type Store interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Get(ctx context.Context, name string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, name string) error
}

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

const sniffLen = 3072

// Sniff detects the content type from the first bytes of u and returns a
// reader that still yields the whole body.
func Sniff(u Upload) (*mimetype.MIME, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(u.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	head = head[:n]
	return mimetype.Detect(head), io.MultiReader(bytes.NewReader(head), u.Body), nil
}

// NewObjectName returns a collision free file name that keeps the detected
// extension, e.g. "5f0c...e1.jpg".
func NewObjectName(ext string) string {
	return uuid.NewString() + strings.ToLower(ext)
}

// Key joins a folder and a bare file name, refusing names that could escape it.
func Key(folder, filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidName
	}
	return folder + "/" + filename, nil
}
