package dto

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

type UploadedImageResponse struct {
	ID           uint   `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	FileType     string `json:"file_type"`
	URL          string `json:"url"`
	CreatedAt    string `json:"created_at"`
}

type DeleteUploadRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
