package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"grammarbot/internal/domain"
	"grammarbot/internal/format"
	"grammarbot/internal/prompts"
	"grammarbot/internal/service"
)

// Dispatcher-level failures, mapped to user messages by userMessage.
var (
	errNoSession       = errors.New("no stored conversation for this chat")
	errResponseTooLong = errors.New("generated text exceeds the message limit")
	errNoSubjectText   = errors.New("no text available for subject generation")
)

// correct runs a grammar correction over text and, on success, replaces
// the chat's session. A failure leaves the previous session untouched.
func (h *Handler) correct(ctx context.Context, chatID, userID int64, text string) (string, error) {
	res, err := h.completer.Complete(ctx, domain.ModeGrammar, text)
	if err != nil {
		return "", err
	}
	h.ledger.RecordUsage(userID, res.TokensUsed)

	corrected := format.StripTags(format.MarkdownToHTML(res.Text))
	if utf8.RuneCountInString(corrected) > h.cfg.MaxMessageLength {
		return "", errResponseTooLong
	}

	h.SetSession(chatID, domain.Session{
		State:     domain.StateAwaitingAction,
		Original:  text,
		Corrected: corrected,
	})

	return copyableBlock(corrected), nil
}

// explain describes what the correction changed. The session is read,
// never written, so the chat stays in AwaitingAction.
func (h *Handler) explain(ctx context.Context, chatID, userID int64) ([]string, error) {
	s := h.Session(chatID)
	if s.State != domain.StateAwaitingAction || s.Original == "" || s.Corrected == "" {
		return nil, errNoSession
	}

	pair := fmt.Sprintf("Original: %s\nCorrected: %s", s.Original, s.Corrected)
	res, err := h.completer.Complete(ctx, domain.ModeExplain, pair)
	if err != nil {
		return nil, err
	}
	h.ledger.RecordUsage(userID, res.TokensUsed)

	explanation := format.MarkdownToHTML(res.Text)
	return format.Split(explanation, h.cfg.MaxMessageLength), nil
}

// improve rewrites the corrected text in the chosen style and makes the
// rewrite the chat's current corrected text
func (h *Handler) improve(ctx context.Context, chatID, userID int64, style domain.FluencyStyle) (string, error) {
	mode, ok := domain.FluencyMode(style)
	if !ok {
		return "", fmt.Errorf("%w: style %q", prompts.ErrUnknownMode, style)
	}

	s := h.Session(chatID)
	if s.State != domain.StateAwaitingAction || s.Corrected == "" {
		return "", errNoSession
	}

	res, err := h.completer.Complete(ctx, mode, s.Corrected)
	if err != nil {
		return "", err
	}
	h.ledger.RecordUsage(userID, res.TokensUsed)

	improved := format.StripTags(format.MarkdownToHTML(res.Text))
	if utf8.RuneCountInString(improved) > h.cfg.MaxMessageLength {
		return "", errResponseTooLong
	}

	next := s.Clone()
	next.Corrected = improved
	next.SelectedStyle = style
	next.Versions = []string{improved}
	next.VersionIndex = 0
	h.SetSession(chatID, next)

	return copyableBlock(improved), nil
}

// reformulate produces an alternative phrasing in the already selected
// style and appends it to the chat's version history
func (h *Handler) reformulate(ctx context.Context, chatID, userID int64) (string, int, int, error) {
	s := h.Session(chatID)
	if s.Original == "" || s.SelectedStyle == "" || len(s.Versions) == 0 {
		return "", 0, 0, errNoSession
	}

	mode, ok := domain.FluencyMode(s.SelectedStyle)
	if !ok {
		return "", 0, 0, fmt.Errorf("%w: style %q", prompts.ErrUnknownMode, s.SelectedStyle)
	}

	res, err := h.completer.Complete(ctx, mode, reformulationRequest(s.Original, s.Versions))
	if err != nil {
		return "", 0, 0, err
	}
	h.ledger.RecordUsage(userID, res.TokensUsed)

	version := format.StripTags(format.MarkdownToHTML(res.Text))
	if utf8.RuneCountInString(version) > h.cfg.MaxMessageLength {
		return "", 0, 0, errResponseTooLong
	}

	next := s.Clone()
	next.Versions = append(next.Versions, version)
	next.VersionIndex = len(next.Versions) - 1
	next.Corrected = version
	h.SetSession(chatID, next)

	return copyableBlock(version), next.VersionIndex, len(next.Versions), nil
}

// navigate moves the displayed version by delta and reports whether the
// position changed
func (h *Handler) navigate(chatID int64, delta int) (string, int, int, bool) {
	s := h.Session(chatID)
	if len(s.Versions) == 0 {
		return "", 0, 0, false
	}

	index := s.VersionIndex + delta
	if index < 0 {
		index = 0
	}
	if index > len(s.Versions)-1 {
		index = len(s.Versions) - 1
	}
	if index == s.VersionIndex {
		return "", s.VersionIndex, len(s.Versions), false
	}

	next := s.Clone()
	next.VersionIndex = index
	h.SetSession(chatID, next)

	return copyableBlock(s.Versions[index]), index, len(s.Versions), true
}

// subjects generates the three email subject suggestions over the given
// text, falling back to the chat's session text when text is empty
func (h *Handler) subjects(ctx context.Context, chatID, userID int64, text string) (string, error) {
	if text == "" {
		s := h.Session(chatID)
		text = s.Corrected
		if text == "" {
			text = s.Original
		}
	}
	if text == "" {
		return "", errNoSubjectText
	}

	suggestions := []struct {
		label string
		mode  domain.Mode
	}{
		{"✉️ Short", domain.ModeSubjectShort},
		{"🎩 Formal", domain.ModeSubjectFormal},
		{"🎯 Catchy", domain.ModeSubjectCatchy},
	}

	var b strings.Builder
	b.WriteString("📧 <b>Subject Suggestions</b>\n\n")
	for _, sg := range suggestions {
		res, err := h.completer.Complete(ctx, sg.mode, text)
		if err != nil {
			return "", err
		}
		h.ledger.RecordUsage(userID, res.TokensUsed)

		subject := firstLine(format.StripTags(format.MarkdownToHTML(res.Text)))
		fmt.Fprintf(&b, "%s: %s\n", sg.label, html.EscapeString(subject))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// reformulationRequest asks for a new wording while listing previous
// attempts so the model does not repeat them
func reformulationRequest(original string, versions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original text: %s\n\n", original)
	b.WriteString("Previous formulations:\n")
	for i, v := range versions {
		fmt.Fprintf(&b, "Version %d: %s\n\n", i+1, v)
	}
	b.WriteString("Please provide a NEW formulation that maintains the same style and tone but uses different wording. Do not repeat any of the previous versions.")
	return b.String()
}

// copyableBlock wraps plain text in <pre> so Telegram renders it as a
// tap-and-hold copyable block
func copyableBlock(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func positionLabel(index, total int) string {
	return fmt.Sprintf("%d/%d", index+1, total)
}

// userMessage converts a dispatcher failure into the reply shown to the
// user; every failure path ends up here or in a log line
func userMessage(err error) string {
	switch {
	case errors.Is(err, errNoSession):
		return "Sorry, I couldn't find the original message. Please send your text again."
	case errors.Is(err, errNoSubjectText):
		return "Send me a text first, or use /subject <your text>."
	case errors.Is(err, errResponseTooLong):
		return "The generated message is too long. Telegram doesn't support messages of this length. Please try with shorter text."
	case errors.Is(err, service.ErrTimeout):
		return "⏳ The language model took too long to respond. Please try again."
	case errors.Is(err, service.ErrRateLimited):
		return "🚦 The language model is handling too many requests right now. Please try again in a moment."
	case errors.Is(err, service.ErrUnauthorized):
		return "⚠️ The bot's API credentials were rejected. Please contact the administrator."
	case errors.Is(err, service.ErrMalformed), errors.Is(err, prompts.ErrUnknownMode):
		return "Sorry, I received an unusable response from the language model. Please try again."
	default:
		return "Sorry, an error occurred while processing your message. Please try again."
	}
}
