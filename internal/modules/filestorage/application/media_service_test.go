package application

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	uploads map[string]string // key -> content type
	fail    bool
}

func (f *fakeStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[key] = contentType
	return "https://cdn.dorecipe.app/" + key, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, key string) error { return nil }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestMediaService_UploadImage(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewMediaService(storage)

	result, err := svc.UploadImage(context.Background(), "photo.png", pngBytes(t, 1200, 800))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "https://cdn.dorecipe.app/blog/"))
	assert.True(t, strings.HasSuffix(result.URL, ".png"))
	assert.NotEmpty(t, result.ThumbnailURL)
	assert.True(t, strings.HasSuffix(result.ThumbnailURL, "-thumb.jpg"))

	// Original keeps its type, thumbnail is always JPEG.
	require.Len(t, storage.uploads, 2)
	for key, contentType := range storage.uploads {
		if strings.HasSuffix(key, "-thumb.jpg") {
			assert.Equal(t, "image/jpeg", contentType)
		} else {
			assert.Equal(t, "image/png", contentType)
		}
	}
}

func TestMediaService_UploadImage_RejectsNonImage(t *testing.T) {
	svc := NewMediaService(&fakeStorage{})

	_, err := svc.UploadImage(context.Background(), "notes.txt", []byte("just some text content"))
	assert.Error(t, err)
}

func TestMediaService_UploadImage_StorageFailure(t *testing.T) {
	svc := NewMediaService(&fakeStorage{fail: true})

	_, err := svc.UploadImage(context.Background(), "photo.png", pngBytes(t, 100, 100))
	assert.Error(t, err)
}

func TestMediaService_UploadImage_ThumbnailFailureNonFatal(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewMediaService(storage)

	// A GIF header with a truncated body detects as image/gif but cannot be
	// decoded, so only the original is stored.
	data := append([]byte("GIF89a"), make([]byte, 64)...)

	result, err := svc.UploadImage(context.Background(), "anim.gif", data)
	require.NoError(t, err)

	assert.NotEmpty(t, result.URL)
	assert.Empty(t, result.ThumbnailURL)
	assert.Len(t, storage.uploads, 1)
}
