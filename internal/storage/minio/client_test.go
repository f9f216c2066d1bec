package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/violethawk/server/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error

	putOpts minioLib.PutObjectOptions
	putErr  error

	getRC  io.ReadCloser
	getErr error

	removeErr error

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, _ string, _ io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putOpts = opts
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}
func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "files")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "files", c.bucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(ctx, api, "files")
	require.NoError(t, err)
	assert.Equal(t, "files", c.bucket)
}

func TestNewClientWithAPI_BucketExistsError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExistsErr: errors.New("boom")}
	c, err := NewClientWithAPI(ctx, api, "files")
	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestNewClientWithAPI_MakeBucketError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false, makeBucketErr: errors.New("fail")}
	c, err := NewClientWithAPI(ctx, api, "files")
	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "files"}
		err := c.Upload(ctx, "post-id/cat.png", bytes.NewReader([]byte("data")))
		assert.NoError(t, err)
		assert.Equal(t, "image/png", api.putOpts.ContentType)
	})

	t.Run("unknown extension", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "files"}
		err := c.Upload(ctx, "post-id/blob", bytes.NewReader([]byte("data")))
		assert.NoError(t, err)
		assert.Empty(t, api.putOpts.ContentType)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		c := &Client{api: api, bucket: "files"}
		err := c.Upload(ctx, "post-id/cat.png", bytes.NewReader([]byte("data")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload attachment")
	})

	t.Run("deadline expiry is store unavailable", func(t *testing.T) {
		api := &fakeMinio{putErr: context.DeadlineExceeded}
		c := &Client{api: api, bucket: "files"}
		err := c.Upload(ctx, "post-id/cat.png", bytes.NewReader([]byte("data")))
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rc := io.NopCloser(bytes.NewReader([]byte("data")))
		api := &fakeMinio{getRC: rc}
		c := &Client{api: api, bucket: "files"}
		got, err := c.Download(ctx, "post-id/cat.png")
		require.NoError(t, err)
		assert.Equal(t, rc, got)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{getErr: errors.New("get-fail")}
		c := &Client{api: api, bucket: "files"}
		_, err := c.Download(ctx, "post-id/cat.png")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get attachment")
	})

	t.Run("deadline expiry is store unavailable", func(t *testing.T) {
		api := &fakeMinio{getErr: context.DeadlineExceeded}
		c := &Client{api: api, bucket: "files"}
		_, err := c.Download(ctx, "post-id/cat.png")
		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := &Client{api: &fakeMinio{}, bucket: "files"}
		assert.NoError(t, c.Delete(ctx, "post-id/cat.png"))
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{removeErr: errors.New("rm-fail")}, bucket: "files"}
		err := c.Delete(ctx, "post-id/cat.png")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete attachment")
	})
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		c := &Client{api: &fakeMinio{}, bucket: "files"}
		ok, err := c.Exists(ctx, "post-id/cat.png")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{statErr: errors.New("stat-fail")}, bucket: "files"}
		_, err := c.Exists(ctx, "post-id/cat.png")
		assert.Error(t, err)
	})
}
