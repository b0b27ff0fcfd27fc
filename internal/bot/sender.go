// internal/bot/sender.go
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// safeSend delivers a message and, if Telegram rejects it (usually malformed
// Markdown in AI-generated text), retries once with the parse mode stripped.
func (t *TelegramBot) safeSend(msg tgbotapi.MessageConfig) {
	if _, err := t.bot.Send(msg); err != nil {
		if msg.ParseMode == "" {
			t.logger.Errorf("failed to send message to %d: %v", msg.ChatID, err)
			return
		}
		t.logger.Warnf("send with parse mode %q failed, retrying plain: %v", msg.ParseMode, err)
		msg.ParseMode = ""
		if _, err := t.bot.Send(msg); err != nil {
			t.logger.Errorf("failed to send message to %d: %v", msg.ChatID, err)
		}
	}
}

func (t *TelegramBot) sendText(chatID int64, text string) {
	t.safeSend(tgbotapi.NewMessage(chatID, text))
}

func (t *TelegramBot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	t.safeSend(msg)
}

func (t *TelegramBot) sendWithKeyboard(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	t.safeSend(msg)
}

func (t *TelegramBot) sendMarkdownWithKeyboard(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = markup
	t.safeSend(msg)
}

func (t *TelegramBot) answerCallback(id string) {
	if _, err := t.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		t.logger.Warnf("failed to answer callback: %v", err)
	}
}

// The methods below satisfy the scheduler's Sender interface.

func (t *TelegramBot) SendText(chatID int64, text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *TelegramBot) SendMarkdown(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		msg.ParseMode = ""
		_, err = t.bot.Send(msg)
		return err
	}
	return nil
}

func (t *TelegramBot) SendWorkoutPrompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = workoutDoneKeyboard()
	if _, err := t.bot.Send(msg); err != nil {
		msg.ParseMode = ""
		_, err = t.bot.Send(msg)
		return err
	}
	return nil
}

func (t *TelegramBot) SendFeedbackPrompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = feedbackRatingKeyboard()
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramBot) SendGroupInvite(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = groupInviteKeyboard(t.groupInviteLink)
	_, err := t.bot.Send(msg)
	return err
}
