package handler

import (
	"context"
	"sync"
	"time"

	"grammarbot/internal/config"
	"grammarbot/internal/domain"
	"grammarbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	ledger    *service.LedgerService
	stats     *service.StatsService
	completer service.Completer
	cfg       *config.Config
	logger    *zap.Logger

	// Per-chat sessions (in-memory state machine)
	sessions   map[int64]domain.Session
	sessionMux sync.RWMutex

	// Per-chat locks keep actions within one chat in arrival order
	chatLocks map[int64]*sync.Mutex
	chatMux   sync.Mutex

	// Messages waiting to be combined before correction
	pending    map[int64][]pendingText
	pendingMux sync.Mutex
}

type pendingText struct {
	text string
	msg  *tele.Message
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	ledger *service.LedgerService,
	stats *service.StatsService,
	completer service.Completer,
	cfg *config.Config,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		ledger:    ledger,
		stats:     stats,
		completer: completer,
		cfg:       cfg,
		logger:    logger,
		sessions:  make(map[int64]domain.Session),
		chatLocks: make(map[int64]*sync.Mutex),
		pending:   make(map[int64][]pendingText),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/subject", h.handleSubject)
	h.bot.Handle("/admin_stats", h.handleAdminStats)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnExplain, h.handleExplain)
	h.bot.Handle(&btnFluency, h.handleFluencyMenu)
	h.bot.Handle(&btnStyleCurrent, h.styleHandler(domain.StyleCurrent))
	h.bot.Handle(&btnStyleFormal, h.styleHandler(domain.StyleFormal))
	h.bot.Handle(&btnStyleFriendly, h.styleHandler(domain.StyleFriendly))
	h.bot.Handle(&btnStyleScientific, h.styleHandler(domain.StyleScientific))
	h.bot.Handle(&btnReformulate, h.handleReformulate)
	h.bot.Handle(&btnNavPrev, h.navHandler(-1))
	h.bot.Handle(&btnNavNext, h.navHandler(+1))

	// Generic callback handler for payloads that bypass the buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Session returns a copy of the chat's session, an idle one if absent
func (h *Handler) Session(chatID int64) domain.Session {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()

	s, exists := h.sessions[chatID]
	if !exists {
		return domain.Session{State: domain.StateIdle}
	}
	return s.Clone()
}

// SetSession stores the chat's session
func (h *Handler) SetSession(chatID int64, s domain.Session) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.sessions[chatID] = s.Clone()
}

// chatLock returns the mutex serializing work for one chat
func (h *Handler) chatLock(chatID int64) *sync.Mutex {
	h.chatMux.Lock()
	defer h.chatMux.Unlock()

	lock, exists := h.chatLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		h.chatLocks[chatID] = lock
	}
	return lock
}

// completionContext bounds one round trip to the language model
func (h *Handler) completionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

// Inline keyboard buttons
var (
	btnExplain = tele.Btn{
		Unique: "explain",
		Text:   "🔍 Explain Changes",
	}
	btnFluency = tele.Btn{
		Unique: "fluency",
		Text:   "✨ Improve Fluency",
	}
	btnStyleCurrent = tele.Btn{
		Unique: "style_current",
		Text:   "🔄 Current Style",
	}
	btnStyleFormal = tele.Btn{
		Unique: "style_formal",
		Text:   "🎩 Formal Style",
	}
	btnStyleFriendly = tele.Btn{
		Unique: "style_friendly",
		Text:   "😊 Friendly Style",
	}
	btnStyleScientific = tele.Btn{
		Unique: "style_scientific",
		Text:   "🔬 Scientific Style",
	}
	btnReformulate = tele.Btn{
		Unique: "reformulate",
		Text:   "🔄 Reformulate",
	}
	btnNavPrev = tele.Btn{
		Unique: "nav_prev",
		Text:   "◄",
	}
	btnNavNext = tele.Btn{
		Unique: "nav_next",
		Text:   "►",
	}
)

// correctionMarkup offers the follow-up actions after a correction
func correctionMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnExplain, btnFluency),
	)
	return menu
}

// styleMarkup offers the four fluency styles in a 2x2 grid
func styleMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStyleCurrent, btnStyleFormal),
		menu.Row(btnStyleFriendly, btnStyleScientific),
	)
	return menu
}

// reformulateMarkup offers another rewrite of the current version
func reformulateMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnReformulate),
	)
	return menu
}

// navMarkup offers rewriting plus version navigation
func navMarkup(index, total int) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	counter := menu.Data(positionLabel(index, total), "noop")
	menu.Inline(
		menu.Row(btnReformulate),
		menu.Row(btnNavPrev, counter, btnNavNext),
	)
	return menu
}
