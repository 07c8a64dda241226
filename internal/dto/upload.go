package dto

// UploadFileResponse is returned by the upload side-channel. FileRef is the
// tagged reference callers should store on an entry; FileURL is the same
// reference already resolved to a playable URL, kept for clients that only
// want something to put in a player.
type UploadFileResponse struct {
	FileURL     string      `json:"file_url"`
	FileRef     MediaRefDTO `json:"file_ref"`
	ContentType string      `json:"content_type"`
	Size        int64       `json:"size"`
}
