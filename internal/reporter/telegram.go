package reporter

import (
	"fmt"
	"strings"
	"time"

	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/pipeline"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the reporter uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot    sender
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendRunSummary(stats pipeline.Stats) error {
	return t.SendMessage(FormatRunSummary(stats))
}

func (t *TelegramReporter) SendJob(job models.Job) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatJob(job))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if job.SourceURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 Ver vaga", job.SourceURL)),
		)
	}
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>Vagas pipeline error</b>:\n%s", esc(errReq.Error())))
}

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// FormatJob renders one job as a Telegram HTML message.
func FormatJob(job models.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 <b>%s</b>\n", esc(job.Title))
	fmt.Fprintf(&b, "🏢 %s\n", esc(orNA(job.Company)))
	if s := salary(job); s != "" {
		fmt.Fprintf(&b, "💰 %s\n", esc(s))
	}
	fmt.Fprintf(&b, "📍 %s · %s\n", esc(location(job)), esc(string(job.Modality)))
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, "🛠 %s\n", esc(strings.Join(job.Skills, ", ")))
	}
	if job.PublishedAt != nil {
		fmt.Fprintf(&b, "📅 %s\n", esc(*job.PublishedAt))
	}
	fmt.Fprintf(&b, "🔖 %s", esc(job.Sector))
	return b.String()
}

// FormatRunSummary renders the run statistics as a Telegram HTML message.
func FormatRunSummary(s pipeline.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Run %s</b>\n", esc(s.RunID))
	fmt.Fprintf(&b, "📥 %d raw, %d normalized, %d skipped\n", s.Input, s.Normalized, s.Skipped)
	fmt.Fprintf(&b, "🚫 %d filtered, %d duplicates, %d already seen\n", s.Filtered, s.Duplicates, s.Seen)
	fmt.Fprintf(&b, "📤 %d uploaded\n", s.Uploaded)
	c := s.Coverage
	if c.Total > 0 {
		fmt.Fprintf(&b, "💰 salary on %d/%d, 📍 location on %d/%d\n", c.WithSalary, c.Total, c.WithLocation, c.Total)
		for _, m := range c.TopModalities {
			fmt.Fprintf(&b, "• %s: %d\n", esc(m.Name), m.Count)
		}
	}
	fmt.Fprintf(&b, "⏱ %s", s.Duration.Round(time.Millisecond))
	return b.String()
}
