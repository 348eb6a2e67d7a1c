package domain

import "time"

// DownloadRequest describes a single /download command. It lives for the
// duration of one request and is discarded after the reply is sent.
type DownloadRequest struct {
	ChatID    int64
	MessageID int
	URL       string
	Clip      *ClipRange
}

// ClipRange restricts the downloaded span of a source video. A zero End
// means the range is open-ended and runs to the end of the video.
type ClipRange struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end,omitempty"`
}

// OpenEnded reports whether the range has no explicit end offset.
func (c ClipRange) OpenEnded() bool {
	return c.End == 0
}
