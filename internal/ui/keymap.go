package ui

import (
	"github.com/oakwood-commons/pickx/internal/picker"
)

// keyEvent is the result of translating one key string. Tab and
// shift+tab toggle the highlighted row and then move, mirroring the
// usual multiselect convention, so a translation can carry up to two
// actions plus a control disposition.
type keyEvent struct {
	actions []picker.Action
	commit  bool
	cancel  bool
}

// translateKey maps a Bubble Tea key string to picker actions. Keys it
// does not claim fall through to the query input. Multiselect-only
// bindings are inert in single-select mode so the characters can still
// be typed (alt-modified keys aside, which never reach the input).
func translateKey(key string, multiselect bool) (keyEvent, bool) {
	switch key {
	case "ctrl+c", "esc":
		return keyEvent{cancel: true}, true
	case "enter":
		return keyEvent{commit: true}, true
	case "down", "ctrl+n":
		return keyEvent{actions: []picker.Action{picker.ActionMoveDown}}, true
	case "up", "ctrl+p":
		return keyEvent{actions: []picker.Action{picker.ActionMoveUp}}, true
	case "tab":
		if !multiselect {
			return keyEvent{}, false
		}
		return keyEvent{actions: []picker.Action{
			picker.ActionToggleCurrent,
			picker.ActionMoveDown,
		}}, true
	case "shift+tab":
		if !multiselect {
			return keyEvent{}, false
		}
		return keyEvent{actions: []picker.Action{
			picker.ActionToggleCurrent,
			picker.ActionMoveUp,
		}}, true
	case "alt+a":
		if !multiselect {
			return keyEvent{}, false
		}
		return keyEvent{actions: []picker.Action{picker.ActionToggleAllOn}}, true
	case "alt+d":
		if !multiselect {
			return keyEvent{}, false
		}
		return keyEvent{actions: []picker.Action{picker.ActionToggleAllOff}}, true
	case "alt+r":
		if !multiselect {
			return keyEvent{}, false
		}
		return keyEvent{actions: []picker.Action{picker.ActionToggleInvert}}, true
	}
	return keyEvent{}, false
}
