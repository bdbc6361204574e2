// Package keymap defines key bindings and action dispatch for the sound board.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Board navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Triggering
	ActionTrigger       Action = "trigger"        // play the selected profile
	ActionCrossFade     Action = "crossfade"      // sine crossfade into the selected profile
	ActionCrossFadeSqrt Action = "crossfade_sqrt" // sqrt crossfade into the selected profile
	ActionToggleDuck    Action = "toggle_duck"

	// Live voice control, applied to the most recent play
	ActionFadeOut     Action = "fade_out"
	ActionFadeIn      Action = "fade_in"
	ActionPauseToggle Action = "pause_toggle"
	ActionStop        Action = "stop"
	ActionStopAll     Action = "stop_all"

	// Output
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionMuteOutput Action = "mute_output"
)
