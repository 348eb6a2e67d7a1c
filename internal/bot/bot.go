// Package bot is the Telegram surface: it long-polls for updates, dispatches
// the recognized commands, and walks each /download request through download,
// delivery and cleanup.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"github.com/veranemoloko/clipbot/internal/config"
	"github.com/veranemoloko/clipbot/internal/domain"
	"github.com/veranemoloko/clipbot/internal/downloader"
	"github.com/veranemoloko/clipbot/internal/metrics"
	"github.com/veranemoloko/clipbot/internal/storage"
)

// command enumerates the recognized chat commands so dispatch stays a closed
// set.
type command string

const (
	cmdStart    command = "start"
	cmdHelp     command = "help"
	cmdDownload command = "download"
)

// telegram is the slice of the tgbotapi client the bot uses. Production code
// passes *tgbotapi.BotAPI; tests provide a fake.
type telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Downloader fetches the video for one request into destDir. The concrete
// implementation is injected in main.
type Downloader interface {
	Download(ctx context.Context, req *domain.DownloadRequest, destDir string, progress downloader.ProgressFunc) (*domain.DownloadResult, error)
}

// Bot holds the Telegram client and every dependency a request handler needs.
type Bot struct {
	api       telegram
	cfg       *config.Config
	dl        Downloader
	workspace *storage.Workspace
	logger    *slog.Logger
	sem       *semaphore.Weighted
	wg        sync.WaitGroup
}

// New authenticates against the Bot API and registers the command menu.
func New(cfg *config.Config, dl Downloader, ws *storage.Workspace, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	api.Debug = cfg.Debug
	logger.Info("authorized on telegram", "account", api.Self.UserName)

	b := &Bot{
		api:       api,
		cfg:       cfg,
		dl:        dl,
		workspace: ws,
		logger:    logger,
		sem:       semaphore.NewWeighted(cfg.MaxConcurrent),
	}

	if err := b.registerCommands(); err != nil {
		logger.Warn("failed to register command menu", "error", err)
	}

	return b, nil
}

func (b *Bot) registerCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: string(cmdStart), Description: "Starts the bot and shows a welcome message."},
		tgbotapi.BotCommand{Command: string(cmdHelp), Description: "Shows the help message with instructions."},
		tgbotapi.BotCommand{Command: string(cmdDownload), Description: "Downloads a video or segment. Usage: /download <URL> [start] [end]"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

// Run long-polls for updates until ctx is cancelled. Each update is handled
// in its own goroutine; Run waits for in-flight handlers before returning.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot listening for updates", "poll_timeout", b.cfg.PollTimeout)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return errors.New("telegram updates channel closed")
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

// handleUpdate dispatches one inbound update. A panic anywhere below here is
// converted into a generic error reply so a single bad request cannot take
// the process down.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update",
				"chat_id", msg.Chat.ID, "panic", r, "stack", string(debug.Stack()))
			b.replyTo(msg.Chat.ID, msg.MessageID, msgUnexpected)
		}
	}()

	switch command(msg.Command()) {
	case cmdStart:
		metrics.CommandsTotal.WithLabelValues(string(cmdStart)).Inc()
		b.handleStart(msg)
	case cmdHelp:
		metrics.CommandsTotal.WithLabelValues(string(cmdHelp)).Inc()
		b.handleHelp(msg)
	case cmdDownload:
		metrics.CommandsTotal.WithLabelValues(string(cmdDownload)).Inc()
		b.handleDownload(ctx, msg)
	default:
		metrics.CommandsTotal.WithLabelValues("unknown").Inc()
		b.replyTo(msg.Chat.ID, msg.MessageID, msgUnknownCommand)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	mention := "there"
	if from := msg.From; from != nil {
		name := from.FirstName
		if name == "" {
			name = from.UserName
		}
		mention = fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, from.ID, html.EscapeString(name))
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(welcomeTemplate, mention))
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = msg.MessageID
	b.send(reply)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, helpText)
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyToMessageID = msg.MessageID
	b.send(reply)
}

// send pushes a message out; chat errors are logged, never fatal to the
// handler.
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("failed to send message", "error", err)
	}
}

func (b *Bot) replyTo(chatID int64, messageID int, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyToMessageID = messageID
	b.send(reply)
}

// edit replaces the status message text in place. Edit failures are expected
// noise (message deleted, text unchanged) and only logged at debug.
func (b *Bot) edit(chatID int64, messageID int, text string) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.logger.Debug("failed to edit status message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) chatAction(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVideo)); err != nil {
		b.logger.Debug("failed to send chat action", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Debug("failed to delete status message", "chat_id", chatID, "error", err)
	}
}
