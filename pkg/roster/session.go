package roster

import (
	"fmt"
	"strings"
)

// Session is the ceremony session a graduate attends.
type Session int

const (
	SessionUnknown Session = iota
	Morning
	Afternoon
)

// Sessions lists the sessions in output order.
var Sessions = []Session{Morning, Afternoon}

// ParseSession accepts "morning"/"pagi" and "afternoon"/"siang" in any case.
func ParseSession(s string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "pagi":
		return Morning, nil
	case "afternoon", "siang":
		return Afternoon, nil
	default:
		return SessionUnknown, fmt.Errorf("unknown session %q", s)
	}
}

func (s Session) String() string {
	switch s {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Session) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Session) UnmarshalText(b []byte) error {
	v, err := ParseSession(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
