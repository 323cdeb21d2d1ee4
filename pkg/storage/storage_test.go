package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestSniff_PNGKeepsWholeBody(t *testing.T) {
	mt, body, err := Sniff(Upload{Filename: "pool.png", Body: bytes.NewReader(pngPixel)})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt.String())
	assert.Equal(t, ".png", mt.Extension())

	all, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, all)
}

func TestSniff_LargeText(t *testing.T) {
	text := strings.Repeat("hello ", 2000)
	mt, body, err := Sniff(Upload{Body: strings.NewReader(text)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mt.String(), "text/plain"))
	all, _ := io.ReadAll(body)
	assert.Len(t, all, len(text))
}

func TestKey(t *testing.T) {
	k, err := Key("photos", "abc.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "photos/abc.jpg", k)

	for _, bad := range []string{"", "../secret", "a/b.jpg", ".env"} {
		_, err := Key("photos", bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestNewObjectName(t *testing.T) {
	n := NewObjectName(".JPG")
	assert.True(t, strings.HasSuffix(n, ".jpg"))
	assert.NotEqual(t, n, NewObjectName(".jpg"))
}

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "photos/a.png", "image/png", bytes.NewReader(pngPixel), int64(len(pngPixel))))
	rc, obj, err := m.Get(ctx, "photos/a.png")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(pngPixel)), obj.Size)

	require.NoError(t, m.Delete(ctx, "photos/a.png"))
	_, _, err = m.Get(ctx, "photos/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())
}
