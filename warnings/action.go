package warnings

import (
	"errors"
	"fmt"
	"strings"

	"housekeeping/internal/match"
)

var ErrInvalidAction = errors.New("invalid warning filter action")

// Action decides what happens to a record matched by a filter.
type Action string

const (
	ActionDefault Action = "default"
	ActionAlways  Action = "always"
	ActionOnce    Action = "once"
	ActionModule  Action = "module"
	ActionIgnore  Action = "ignore"
	ActionError   Action = "error"
)

var actions = []Action{ActionDefault, ActionAlways, ActionOnce, ActionModule, ActionIgnore, ActionError}

// ParseAction accepts a full action name or an unambiguous prefix of one.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ActionDefault, nil
	}

	var found []Action
	for _, a := range actions {
		if string(a) == s {
			return a, nil
		}

		if strings.HasPrefix(string(a), s) {
			found = append(found, a)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		if a, ok := match.Closest(s, actions, 2); ok {
			return "", fmt.Errorf("%w: %q, did you mean %q?", ErrInvalidAction, s, a)
		}

		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	default:
		return "", fmt.Errorf("%w: %q is ambiguous between %v", ErrInvalidAction, s, found)
	}
}
