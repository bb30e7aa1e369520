package model

import "errors"

const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	AvatarWidth        = 400
	AvatarHeight       = 400
	AvatarFolder       = "avatars"
	AvatarExt          = ".jpg"
	AvatarCacheControl = "public, max-age=31536000" // 1 year

	CoverFolder     = "covers"
	MaxCoverSize    = 10 * 1024 * 1024
	CoverURLExpiryS = 600
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// IsAllowedImageType reports if the provided content type is supported.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// UploadResult is the uploaded object location. Key is the object key inside
// the bucket, kept for later deletes.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// PresignCoverRequest asks for a presigned URL to upload a cover image
// directly to object storage.
type PresignCoverRequest struct {
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// PresignCoverResponse returns upload details for a direct upload. The client
// PUTs the bytes to UploadURL and references PublicURL as the post's cover.
type PresignCoverResponse struct {
	UploadURL  string `json:"upload_url"`
	PublicURL  string `json:"public_url"`
	Key        string `json:"key"`
	ExpiresInS int    `json:"expires_in"`
}
