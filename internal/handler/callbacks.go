package handler

import (
	"strings"
	"unicode"

	"grammarbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles callbacks whose button identity was lost in
// transit; the payload is parsed into a typed action instead of being
// string-matched at every call site
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	action := domain.ParseAction(data)

	switch action.Kind {
	case domain.ActionExplain:
		return h.handleExplain(c)
	case domain.ActionFluencyMenu:
		return h.handleFluencyMenu(c)
	case domain.ActionStyle:
		return h.styleHandler(action.Style)(c)
	case domain.ActionReformulate:
		return h.handleReformulate(c)
	case domain.ActionNavPrev:
		return h.navHandler(-1)(c)
	case domain.ActionNavNext:
		return h.navHandler(+1)(c)
	case domain.ActionNoop:
		return c.Respond()
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleExplain replies with an explanation of what the correction
// changed; the session state stays as it was
func (h *Handler) handleExplain(c tele.Context) error {
	chatID := c.Chat().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	_ = c.Respond()
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.completionContext()
	defer cancel()

	parts, err := h.explain(ctx, chatID, c.Sender().ID)
	if err != nil {
		h.logger.Error("Explanation failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.send(c, c.Message(), userMessage(err))
		return nil
	}

	for _, part := range parts {
		h.send(c, c.Message(), part)
	}
	return nil
}

// handleFluencyMenu swaps the keyboard for the style picker
func (h *Handler) handleFluencyMenu(c tele.Context) error {
	if err := c.Edit(styleMarkup()); err != nil {
		if handled := h.handleEditError(err, c); handled == nil {
			return nil
		}
		h.send(c, c.Message(), "Choose a style:", styleMarkup())
		return nil
	}
	return c.Respond()
}

// styleHandler rewrites the corrected text in one fluency style
func (h *Handler) styleHandler(style domain.FluencyStyle) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Chat().ID

		lock := h.chatLock(chatID)
		lock.Lock()
		defer lock.Unlock()

		_ = c.Respond()
		_ = c.Notify(tele.Typing)

		ctx, cancel := h.completionContext()
		defer cancel()

		reply, err := h.improve(ctx, chatID, c.Sender().ID, style)
		if err != nil {
			h.logger.Error("Fluency rewrite failed",
				zap.Int64("chat_id", chatID),
				zap.String("style", string(style)),
				zap.Error(err),
			)
			h.send(c, c.Message(), userMessage(err))
			return nil
		}

		h.send(c, c.Message(), reply, reformulateMarkup())
		return nil
	}
}

// handleReformulate produces another phrasing in the selected style and
// edits it into the message, with version navigation attached
func (h *Handler) handleReformulate(c tele.Context) error {
	chatID := c.Chat().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	_ = c.Respond()
	_ = c.Notify(tele.Typing)

	ctx, cancel := h.completionContext()
	defer cancel()

	reply, index, total, err := h.reformulate(ctx, chatID, c.Sender().ID)
	if err != nil {
		h.logger.Error("Reformulation failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.send(c, c.Message(), userMessage(err))
		return nil
	}

	if err := c.Edit(reply, &tele.SendOptions{ParseMode: tele.ModeHTML}, navMarkup(index, total)); err != nil {
		if handled := h.handleEditError(err, c); handled == nil {
			return nil
		}
		h.send(c, c.Message(), reply, navMarkup(index, total))
	}
	return nil
}

// navHandler moves between stored reformulation versions
func (h *Handler) navHandler(delta int) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Chat().ID

		lock := h.chatLock(chatID)
		lock.Lock()
		defer lock.Unlock()

		reply, index, total, changed := h.navigate(chatID, delta)
		if !changed {
			return c.Respond()
		}

		if err := c.Edit(reply, &tele.SendOptions{ParseMode: tele.ModeHTML}, navMarkup(index, total)); err != nil {
			if handled := h.handleEditError(err, c); handled == nil {
				return nil
			}
			h.send(c, c.Message(), reply, navMarkup(index, total))
			return nil
		}
		return c.Respond()
	}
}

// handleEditError handles errors from c.Edit() - if the message is not
// modified, just acknowledge the callback; otherwise acknowledge and
// return the error so the caller can send a new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", c.Chat().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}
