package handler

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"grammarbot/internal/format"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText queues an inbound text so that consecutive fragments sent
// in quick succession are corrected as one message
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	chatID := c.Chat().ID

	h.pendingMux.Lock()
	h.pending[chatID] = append(h.pending[chatID], pendingText{text: text, msg: c.Message()})
	h.pendingMux.Unlock()

	time.AfterFunc(h.cfg.CombineDelay, func() {
		h.flushPending(c)
	})
	return nil
}

// flushPending drains the chat's queued fragments and runs the grammar
// correction over the combined text. The first timer to fire does the
// work; later ones find an empty queue.
func (h *Handler) flushPending(c tele.Context) {
	chatID := c.Chat().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	h.pendingMux.Lock()
	queued := h.pending[chatID]
	delete(h.pending, chatID)
	h.pendingMux.Unlock()

	if len(queued) == 0 {
		return
	}

	fragments := make([]string, len(queued))
	for i, p := range queued {
		fragments[i] = p.text
	}
	combined := format.Combine(fragments)
	replyTo := queued[0].msg

	if utf8.RuneCountInString(combined) > h.cfg.MaxMessageLength {
		h.send(c, replyTo, fmt.Sprintf(
			"The message is too long. Please send a shorter text (maximum %d characters).",
			h.cfg.MaxMessageLength,
		))
		return
	}

	_ = c.Notify(tele.Typing)

	ctx, cancel := h.completionContext()
	defer cancel()

	reply, err := h.correct(ctx, chatID, c.Sender().ID, combined)
	if err != nil {
		h.logger.Error("Grammar correction failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.send(c, replyTo, userMessage(err))
		return
	}

	h.send(c, replyTo, reply, correctionMarkup())
}

// send replies to a specific message, logging delivery failures
func (h *Handler) send(c tele.Context, replyTo *tele.Message, text string, extra ...interface{}) {
	opts := append([]interface{}{
		&tele.SendOptions{ReplyTo: replyTo, ParseMode: tele.ModeHTML},
	}, extra...)

	if err := c.Send(text, opts...); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
	}
}
