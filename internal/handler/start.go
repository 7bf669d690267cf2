package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	welcome := fmt.Sprintf(
		"👋 <b>Welcome, %s!</b>\n\n"+
			"📝 I'm your Grammar Correction Bot - here to help you perfect your writing!\n\n"+
			"<b>✨ What I can do:</b>\n"+
			"• ✅ Check and correct grammar\n"+
			"• 🎨 Improve fluency with multiple styles\n"+
			"• 🔍 Explain what was changed\n"+
			"• 🔄 Generate alternative phrasings\n"+
			"• 📧 Suggest email subject lines\n\n"+
			"Just send me any text and I'll take care of the rest!\n\n"+
			"💡 Type /help for detailed instructions\n"+
			"🔗 <a href='%s'>GitHub Repository</a>",
		c.Sender().FirstName,
		h.cfg.RepoURL,
	)

	return c.Send(welcome, tele.ModeHTML)
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	help := fmt.Sprintf(
		"📖 <b>Grammar Correction Bot - Help</b>\n\n"+
			"⚙️ <b>Commands:</b>\n"+
			"/start - Welcome message\n"+
			"/help - Show this help message\n"+
			"/subject - Suggest email subject lines for your last text\n\n"+
			"📝 <b>How to use:</b>\n"+
			"1️⃣ Send any text message to check grammar\n"+
			"2️⃣ After correction, you can:\n"+
			"   • 🔍 <b>Explain Changes</b> - See what was modified\n"+
			"   • ✨ <b>Improve Fluency</b> - Choose a style:\n"+
			"      - 🔄 Current Style - Maintain original style\n"+
			"      - 🎩 Formal Style - Professional tone\n"+
			"      - 😊 Friendly Style - Casual and warm\n"+
			"      - 🔬 Scientific Style - Academic tone\n"+
			"   • 🔄 <b>Reformulate</b> - Generate alternatives\n\n"+
			"💡 <b>Tips:</b>\n"+
			"• Corrected text is copyable (tap and hold)\n"+
			"• Navigate between reformulations with ◄ ►\n"+
			"• View source code: <a href='%s'>GitHub</a>",
		h.cfg.RepoURL,
	)

	if h.ledger.IsAdmin(c.Sender().ID) {
		help += "\n\n🔐 <b>Admin Commands:</b>\n/admin_stats - View bot usage statistics"
	}

	return c.Send(help, tele.ModeHTML)
}
