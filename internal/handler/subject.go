package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleSubject handles /subject: three labeled subject-line
// suggestions over the command payload or the chat's current text
func (h *Handler) handleSubject(c tele.Context) error {
	chatID := c.Chat().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	_ = c.Notify(tele.Typing)

	ctx, cancel := h.completionContext()
	defer cancel()

	payload := strings.TrimSpace(c.Message().Payload)
	reply, err := h.subjects(ctx, chatID, c.Sender().ID, payload)
	if err != nil {
		h.logger.Error("Subject generation failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return c.Send(userMessage(err))
	}

	return c.Send(reply, tele.ModeHTML)
}
