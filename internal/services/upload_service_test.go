package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploadKey = regexp.MustCompile(`^uploads/[0-9a-f-]{36}(\.[a-z0-9]{1,10})?$`)

func TestCreateUpload(t *testing.T) {
	p := &testutil.Presigner{}
	svc := services.NewUploadService(testutil.NewSigner(p), "https://cdn.test/")

	resp, err := svc.CreateUpload(context.Background(), &dto.UploadRequest{
		FileName:    "Clip.MP4",
		ContentType: "Video/MP4",
	})
	require.NoError(t, err)

	assert.Regexp(t, uploadKey, resp.Key)
	assert.Regexp(t, `\.mp4$`, resp.Key)
	assert.Equal(t, "https://cdn.test/"+resp.Key, resp.ObjectURL)
	assert.Equal(t, "video/mp4", resp.ContentType)

	reqs := p.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, storage.OpPutObject, reqs[0].Op)
	assert.Equal(t, resp.Key, reqs[0].Key)
	assert.Equal(t, "video/mp4", reqs[0].ContentType)
}

func TestCreateUpload_ObjectURLMapsBackToKey(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		wantExt     string
	}{
		{name: "fragment in name", fileName: "clip.mp4#x", contentType: "video/mp4", wantExt: ".mp4"},
		{name: "query in name", fileName: "pic.png?v=1", contentType: "image/png", wantExt: ".png"},
		{name: "content type wins over name", fileName: "photo.exe", contentType: "image/jpeg", wantExt: ".jpg"},
		{name: "content type parameters", fileName: "a.webm", contentType: "video/webm; codecs=vp9", wantExt: ".webm"},
		{name: "unknown type keeps safe extension", fileName: "scan.TIFF", contentType: "image/tiff", wantExt: ".tiff"},
		{name: "unknown type drops unsafe extension", fileName: "scan.ti?ff", contentType: "image/tiff", wantExt: ""},
		{name: "unknown type without extension", fileName: "scan", contentType: "image/x-raw", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewUploadService(testutil.NewSigner(&testutil.Presigner{}), "https://cdn.test")

			resp, err := svc.CreateUpload(context.Background(), &dto.UploadRequest{
				FileName:    tt.fileName,
				ContentType: tt.contentType,
			})
			require.NoError(t, err)

			assert.Regexp(t, uploadKey, resp.Key)
			assert.Regexp(t, regexp.QuoteMeta(tt.wantExt)+"$", resp.Key)
			if tt.wantExt == "" {
				assert.NotContains(t, resp.Key[len("uploads/"):], ".")
			}

			key, err := storage.KeyFromURL(resp.ObjectURL)
			require.NoError(t, err)
			assert.Equal(t, resp.Key, key)
		})
	}
}

func TestCreateUpload_RejectsNonMedia(t *testing.T) {
	for _, contentType := range []string{"application/pdf", "text/x-shellscript", "image", ";;"} {
		p := &testutil.Presigner{}
		svc := services.NewUploadService(testutil.NewSigner(p), "https://cdn.test")

		_, err := svc.CreateUpload(context.Background(), &dto.UploadRequest{
			FileName:    "notes.pdf",
			ContentType: contentType,
		})
		assert.ErrorIs(t, err, services.ErrUnsupportedMedia, contentType)
		assert.Empty(t, p.Calls())
	}
}
