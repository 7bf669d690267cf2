package domain

import "strings"

// ActionKind enumerates the follow-up actions a callback can trigger
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionExplain
	ActionFluencyMenu
	ActionStyle
	ActionReformulate
	ActionNavPrev
	ActionNavNext
	ActionNoop
)

// Action is the parsed form of a callback payload
type Action struct {
	Kind  ActionKind
	Style FluencyStyle
}

// ParseAction decodes raw callback data into a typed action.
// Unrecognized payloads come back as ActionUnknown so the caller
// can acknowledge them without guessing.
func ParseAction(data string) Action {
	data = strings.TrimSpace(data)
	switch data {
	case "explain":
		return Action{Kind: ActionExplain}
	case "fluency":
		return Action{Kind: ActionFluencyMenu}
	case "reformulate":
		return Action{Kind: ActionReformulate}
	case "nav_prev":
		return Action{Kind: ActionNavPrev}
	case "nav_next":
		return Action{Kind: ActionNavNext}
	case "noop":
		return Action{Kind: ActionNoop}
	}

	if style, ok := strings.CutPrefix(data, "style_"); ok {
		s := FluencyStyle(style)
		if _, valid := FluencyMode(s); valid {
			return Action{Kind: ActionStyle, Style: s}
		}
	}

	return Action{Kind: ActionUnknown}
}
