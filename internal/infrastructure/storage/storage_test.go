package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

type fakeUploader struct {
	err      error
	calls    int
	lastPath string
	lastType string
	body     string
}

func (f *fakeUploader) UploadFile(bucketID, relativePath string, data io.Reader, opts ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	f.calls++
	f.lastPath = relativePath
	if len(opts) > 0 && opts[0].ContentType != nil {
		f.lastType = *opts[0].ContentType
	}
	b, _ := io.ReadAll(data)
	f.body = string(b)
	return storage_go.FileUploadResponse{}, f.err
}

func (f *fakeUploader) GetPublicUrl(bucketID, filePath string, _ ...storage_go.UrlOptions) storage_go.SignedUrlResponse {
	return storage_go.SignedUrlResponse{SignedURL: "https://cdn.test/" + bucketID + "/" + filePath}
}

func TestStore_Put(t *testing.T) {
	up := &fakeUploader{}
	s := New(up, "media", nil)

	url, err := s.Put(context.Background(), Object{Path: "a/b.png", ContentType: "image/png", Body: stringsReader("px")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/media/a/b.png", url)
	assert.Equal(t, "image/png", up.lastType)
	assert.Equal(t, "px", up.body)
}

func TestStore_BreakerOpensAfterFailures(t *testing.T) {
	up := &fakeUploader{err: errors.New("boom")}
	s := New(up, "media", nil)

	for i := 0; i < 5; i++ {
		_, err := s.Put(context.Background(), Object{Path: "x", Body: stringsReader("")})
		require.Error(t, err)
	}

	_, err := s.Put(context.Background(), Object{Path: "x", Body: stringsReader("")})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 5, up.calls)
}

func TestStore_NilIsNotConfigured(t *testing.T) {
	var s *Store
	_, err := s.Put(context.Background(), Object{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func stringsReader(s string) io.Reader {
	return &sr{s: s}
}

type sr struct {
	s string
	i int
}

func (r *sr) Read(p []byte) (int, error) {
	if r.i >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.i:])
	r.i += n
	return n, nil
}
