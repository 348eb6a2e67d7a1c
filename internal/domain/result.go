package domain

// DownloadResult describes the outcome of one download attempt. On success
// FilePath points at the local artifact; the artifact is deleted once
// delivery completes or fails.
type DownloadResult struct {
	URL      string `json:"url"`
	FilePath string `json:"file_path,omitempty"`
	Size     int64  `json:"size_bytes"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
