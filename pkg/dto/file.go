package dto

type UploadDraftRequest struct {
	ItemID   int64  `json:"itemid,omitempty"`
	FilePath string `json:"filepath,omitempty"`
	FileName string `json:"filename"`
	MimeType string `json:"mimetype,omitempty"`
	// Content is the base64 encoded file body.
	Content string `json:"content"`
}

type DraftFileResponse struct {
	ItemID   int64  `json:"itemid"`
	FilePath string `json:"filepath"`
	FileName string `json:"filename"`
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
