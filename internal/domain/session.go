package domain

// SessionState represents a chat's position in the correction flow
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StateAwaitingAction SessionState = "awaiting_action"
)

// Session holds the per-chat conversation data needed to service
// follow-up actions without resending the original text.
// It lives only in process memory and is lost on restart.
type Session struct {
	State         SessionState
	Original      string
	Corrected     string
	SelectedStyle FluencyStyle
	Versions      []string
	VersionIndex  int
}

// CurrentVersion returns the fluency version being displayed,
// falling back to the corrected text when no rewrite happened yet
func (s Session) CurrentVersion() string {
	if len(s.Versions) == 0 {
		return s.Corrected
	}
	if s.VersionIndex < 0 || s.VersionIndex >= len(s.Versions) {
		return s.Versions[len(s.Versions)-1]
	}
	return s.Versions[s.VersionIndex]
}

// Clone returns a deep copy so callers can stage changes without
// touching the stored session until the operation succeeds
func (s Session) Clone() Session {
	out := s
	out.Versions = append([]string(nil), s.Versions...)
	return out
}
