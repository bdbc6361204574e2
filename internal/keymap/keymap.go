package keymap

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "board", "voice", "output"
}

// Bindings contains every key binding of the sound board.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Board
	{ActionMoveUp, []string{"k", "up"}, "Previous profile", "board"},
	{ActionMoveDown, []string{"j", "down"}, "Next profile", "board"},
	{ActionJumpStart, []string{"g", "home"}, "First profile", "board"},
	{ActionJumpEnd, []string{"G", "end"}, "Last profile", "board"},
	{ActionTrigger, []string{"enter", " "}, "Play profile", "board"},
	{ActionCrossFade, []string{"x"}, "Crossfade into profile (sine)", "board"},
	{ActionCrossFadeSqrt, []string{"X"}, "Crossfade into profile (sqrt)", "board"},
	{ActionToggleDuck, []string{"d"}, "Toggle ducking", "board"},

	// Live voice
	{ActionFadeOut, []string{"f"}, "Fade out last play", "voice"},
	{ActionFadeIn, []string{"F"}, "Fade in last play", "voice"},
	{ActionPauseToggle, []string{"p"}, "Pause/resume last play", "voice"},
	{ActionStop, []string{"s"}, "Stop last play", "voice"},
	{ActionStopAll, []string{"S"}, "Stop all plays", "voice"},

	// Output
	{ActionVolumeUp, []string{"+", "="}, "Output volume up", "output"},
	{ActionVolumeDown, []string{"-"}, "Output volume down", "output"},
	{ActionMuteOutput, []string{"m"}, "Mute output", "output"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
