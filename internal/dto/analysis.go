package dto

// AnalyzeFileRequest asks the AI integration to analyze an uploaded clip.
type AnalyzeFileRequest struct {
	FileURL string `json:"file_url" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=video audio"`
}

// AnalyzeFileResponse carries the analysis text back to the client.
type AnalyzeFileResponse struct {
	Analysis string `json:"analysis"`
}
