package domain

// Mode selects which prompt template drives a completion request
type Mode string

const (
	ModeGrammar           Mode = "grammar_correction"
	ModeExplain           Mode = "change_explanation"
	ModeFluencyCurrent    Mode = "fluency_current"
	ModeFluencyFormal     Mode = "fluency_formal"
	ModeFluencyFriendly   Mode = "fluency_friendly"
	ModeFluencyScientific Mode = "fluency_scientific"
	ModeSubjectShort      Mode = "subject_short"
	ModeSubjectFormal     Mode = "subject_formal"
	ModeSubjectCatchy     Mode = "subject_catchy"
)

// Modes returns every mode a prompt template must exist for
func Modes() []Mode {
	return []Mode{
		ModeGrammar,
		ModeExplain,
		ModeFluencyCurrent,
		ModeFluencyFormal,
		ModeFluencyFriendly,
		ModeFluencyScientific,
		ModeSubjectShort,
		ModeSubjectFormal,
		ModeSubjectCatchy,
	}
}

// FluencyStyle names one of the rewrite styles offered after a correction
type FluencyStyle string

const (
	StyleCurrent    FluencyStyle = "current"
	StyleFormal     FluencyStyle = "formal"
	StyleFriendly   FluencyStyle = "friendly"
	StyleScientific FluencyStyle = "scientific"
)

// FluencyMode maps a style to its prompt mode
func FluencyMode(style FluencyStyle) (Mode, bool) {
	switch style {
	case StyleCurrent:
		return ModeFluencyCurrent, true
	case StyleFormal:
		return ModeFluencyFormal, true
	case StyleFriendly:
		return ModeFluencyFriendly, true
	case StyleScientific:
		return ModeFluencyScientific, true
	}
	return "", false
}

// Completion is the result of one exchange with the language model
type Completion struct {
	Text       string
	TokensUsed int
}
