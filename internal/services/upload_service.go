package services

import (
	"context"
	"errors"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

var ErrUnsupportedMedia = errors.New("only image and video uploads are allowed")

// mediaExtensions maps accepted content types to the key extension.
var mediaExtensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"image/webp":       ".webp",
	"image/heic":       ".heic",
	"image/avif":       ".avif",
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
	"video/quicktime":  ".mov",
	"video/x-matroska": ".mkv",
	"video/ogg":        ".ogv",
	"video/mpeg":       ".mpeg",
}

var safeExtension = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// UploadService hands out write URLs for media that spaces and reviews
// later reference by their object URL.
type UploadService struct {
	signer  *storage.Signer
	baseURL string
}

func NewUploadService(signer *storage.Signer, objectBaseURL string) *UploadService {
	return &UploadService{signer: signer, baseURL: strings.TrimRight(objectBaseURL, "/")}
}

func (s *UploadService) CreateUpload(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResponse, error) {
	contentType, err := mediaType(req.ContentType)
	if err != nil {
		return nil, err
	}

	key := "uploads/" + uuid.NewString() + uploadExtension(contentType, req.FileName)
	uploadURL, err := s.signer.SignUpload(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		UploadURL:   uploadURL,
		ObjectURL:   s.baseURL + "/" + key,
		Key:         key,
		ContentType: contentType,
	}, nil
}

// mediaType normalizes a Content-Type value and accepts only image/* and
// video/* types.
func mediaType(raw string) (string, error) {
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", ErrUnsupportedMedia
	}
	if !strings.HasPrefix(mt, "image/") && !strings.HasPrefix(mt, "video/") {
		return "", ErrUnsupportedMedia
	}
	return mt, nil
}

// uploadExtension prefers the extension known for the content type. The
// file name is only consulted for other types, and only when its extension
// is plain alphanumerics, so the key never carries URL syntax.
func uploadExtension(contentType, fileName string) string {
	if ext, ok := mediaExtensions[contentType]; ok {
		return ext
	}
	ext := strings.ToLower(path.Ext(fileName))
	if safeExtension.MatchString(ext) {
		return ext
	}
	return ""
}
