package bot

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

const previewLength = 200

// TgBot sends clinic alerts to the admin chat.
type TgBot struct {
	log     *slog.Logger
	api     *tgbotapi.Bot
	adminId int64
}

func NewTgBot(apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	return &TgBot{
		log:     log.With(sl.Module("tgbot")),
		api:     api,
		adminId: adminId,
	}, nil
}

// SendMessage delivers plain text to the admin chat.
func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

// NotifyNewMessage alerts the admin about a patient message.
func (t *TgBot) NotifyNewMessage(m entity.Message) {
	t.SendMessage(formatNewMessage(m))
}

func formatNewMessage(m entity.Message) string {
	text := strings.TrimSpace(m.Text)
	if r := []rune(text); len(r) > previewLength {
		text = string(r[:previewLength]) + "..."
	}
	return fmt.Sprintf("**New message from %s**\n%s", m.DisplayName(), text)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	// markdown bold from the formatter uses **, MarkdownV2 expects *
	text = strings.ReplaceAll(text, "**", "*")

	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(slog.Int64("id", chatId)).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err == nil {
		return
	}
	t.log.With(slog.Int64("id", chatId)).Warn("sending message", sl.Err(err))
	if _, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{}); err != nil {
		t.log.With(slog.Int64("id", chatId)).Error("sending plain message", sl.Err(err))
	}
}

// sanitize escapes MarkdownV2 reserved characters, leaving * for bold.
func sanitize(input string) string {
	const reserved = "\\`_{}#+-.!|()[]~>="
	var b strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reserved, char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
