package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/veranemoloko/clipbot/internal/clip"
	"github.com/veranemoloko/clipbot/internal/domain"
	"github.com/veranemoloko/clipbot/internal/downloader"
	errpkg "github.com/veranemoloko/clipbot/internal/errors"
	"github.com/veranemoloko/clipbot/internal/metrics"
	"github.com/veranemoloko/clipbot/internal/validation"
)

// Progress edits are throttled so long downloads do not hammer the Bot API
// rate limit.
const progressEditEvery = 2500 * time.Millisecond

// handleDownload validates the /download arguments and, once a download slot
// is free, runs the request. Tokens beyond "<url> [start] [end]" are ignored.
func (b *Bot) handleDownload(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.replyTo(msg.Chat.ID, msg.MessageID, msgUsage)
		return
	}

	url := args[0]
	if err := validation.ValidateURL(url); err != nil {
		b.logger.Info("rejected download url", "chat_id", msg.Chat.ID, "error", err)
		b.replyTo(msg.Chat.ID, msg.MessageID, msgBadURL)
		return
	}

	var startStr, endStr string
	if len(args) > 1 {
		startStr = args[1]
	}
	if len(args) > 2 {
		endStr = args[2]
	}

	clipRange, err := clip.ParseRange(startStr, endStr)
	if err != nil {
		b.replyTo(msg.Chat.ID, msg.MessageID, rangeErrorText(err))
		return
	}

	req := &domain.DownloadRequest{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		URL:       url,
		Clip:      clipRange,
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		b.logger.Warn("download slot not acquired", "chat_id", req.ChatID, "error", err)
		return
	}
	defer b.sem.Release(1)

	b.processDownload(ctx, req)
}

func rangeErrorText(err error) string {
	if errors.Is(err, errpkg.ErrInvalidRange) {
		return msgBadRange
	}
	return msgBadTimestamp
}

// processDownload walks one request through download, delivery and cleanup.
// The request dir is removed whatever the outcome.
func (b *Bot) processDownload(ctx context.Context, req *domain.DownloadRequest) {
	dir, err := b.workspace.CreateRequestDir()
	if err != nil {
		b.logger.Error("failed to create request dir", "chat_id", req.ChatID, "error", err)
		b.replyTo(req.ChatID, req.MessageID, msgUnexpected)
		return
	}
	defer func() {
		if err := b.workspace.Remove(dir); err != nil {
			b.logger.Warn("failed to remove request dir", "dir", dir, "error", err)
		}
	}()

	processing := tgbotapi.NewMessage(req.ChatID, msgProcessing)
	processing.ReplyToMessageID = req.MessageID
	status, err := b.api.Send(processing)
	if err != nil {
		b.logger.Warn("failed to send processing message", "chat_id", req.ChatID, "error", err)
	}
	b.chatAction(req.ChatID)

	res, err := b.dl.Download(ctx, req, dir, b.progressEditor(req.ChatID, status.MessageID))
	if err != nil {
		b.edit(req.ChatID, status.MessageID, failureText(res, err))
		return
	}

	b.edit(req.ChatID, status.MessageID, msgUploading)
	b.chatAction(req.ChatID)

	if err := b.deliver(req, res); err != nil {
		metrics.UploadFailures.Inc()
		b.logger.Error("video upload failed", "chat_id", req.ChatID, "error", err)
		b.edit(req.ChatID, status.MessageID, fmt.Sprintf(msgUploadFailed, err))
		return
	}

	metrics.UploadsTotal.Inc()
	b.deleteMessage(req.ChatID, status.MessageID)
	b.logger.Info("video delivered",
		"chat_id", req.ChatID, "url", req.URL, "size_bytes", res.Size)
}

// deliver streams the artifact to the originating chat as a video upload.
func (b *Bot) deliver(req *domain.DownloadRequest, res *domain.DownloadResult) error {
	video := tgbotapi.NewVideo(req.ChatID, tgbotapi.FilePath(res.FilePath))
	video.Caption = fmt.Sprintf(captionFmt, req.URL)
	video.SupportsStreaming = true
	video.ReplyToMessageID = req.MessageID

	if _, err := b.api.Send(video); err != nil {
		return fmt.Errorf("%w: %v", errpkg.ErrDeliveryFailed, err)
	}
	return nil
}

// progressEditor returns a callback that edits the status message in place,
// skipping repeats and edits closer together than progressEditEvery.
func (b *Bot) progressEditor(chatID int64, messageID int) downloader.ProgressFunc {
	var mu sync.Mutex
	var lastEdit time.Time
	var lastPercent string

	return func(percent string) {
		mu.Lock()
		defer mu.Unlock()
		if percent == lastPercent || time.Since(lastEdit) < progressEditEvery {
			return
		}
		lastPercent = percent
		lastEdit = time.Now()
		b.edit(chatID, messageID, fmt.Sprintf(msgProgressFmt, percent))
	}
}

// failureText picks the reply for a failed download. The downloader usually
// supplies chat-ready text in the result; the sentinel mapping is the
// fallback.
func failureText(res *domain.DownloadResult, err error) string {
	if res != nil && res.Error != "" {
		return res.Error
	}
	switch {
	case errors.Is(err, errpkg.ErrFileTooLarge):
		return msgTooLarge
	case errors.Is(err, errpkg.ErrDownloadFailed):
		return msgDownloadFailed
	default:
		return msgUnexpected
	}
}
