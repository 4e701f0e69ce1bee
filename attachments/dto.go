package attachments

// CreateAttachmentRequest is the payload for POST /api/attachments.
type CreateAttachmentRequest struct {
	FileName   string `json:"fileName" example:"report.pdf"`
	FilePath   string `json:"filePath" example:"/uploads/report.pdf"`
	FileType   string `json:"fileType" example:"application/pdf"`
	Task       string `json:"task" example:"662a1b2c3d4e5f6a7b8c9d10"`
	UploadedBy string `json:"uploadedBy" example:"662a1b2c3d4e5f6a7b8c9d0e"`
}
