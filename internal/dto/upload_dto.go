package dto

type UploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
}

// UploadResponse carries the write URL. The PUT must send ContentType as
// its Content-Type header.
type UploadResponse struct {
	UploadURL   string `json:"uploadUrl"`
	ObjectURL   string `json:"objectUrl"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}
