// Package board implements the sound board TUI: a list of profiles that can
// be triggered, faded and crossfaded, with the live plays of the pool.
package board

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
	"github.com/llehouerou/soundkit/internal/errmsg"
	"github.com/llehouerou/soundkit/internal/keymap"
	"github.com/llehouerou/soundkit/internal/profile"
	"github.com/llehouerou/soundkit/internal/sfx"
	"github.com/llehouerou/soundkit/internal/state"
)

// TickInterval is how often the pool is ticked.
const TickInterval = 16 * time.Millisecond

// Fade and crossfade lengths used by the board actions.
const (
	FadeDuration      = time.Second
	CrossFadeDuration = 2 * time.Second
	volumeStep        = 0.1
	maxOutputVolume   = 2.0
)

// Sound is a profile ready to play.
type Sound struct {
	Profile profile.Profile
	Clip    *clip.Clip
	Bus     device.Bus
}

// Output is an output bus whose level can be changed.
type Output interface {
	device.Bus
	Volume() float64
	SetVolume(v float64)
	Muted() bool
	SetMuted(m bool)
}

type tickMsg time.Time

type stderrMsg string

// Model is the bubbletea model of the sound board.
type Model struct {
	pool   *sfx.Pool
	sounds []Sound
	keys   *keymap.Resolver
	stderr <-chan string
	store  state.Interface

	names    map[*sfx.Handle]string
	paused   map[*sfx.Handle]bool
	cursor   int
	duck     bool
	showHelp bool
	status   string
	lastTick time.Time
	width    int
	height   int
}

// Option configures a Model.
type Option func(*Model)

// WithStderr shows lines captured from stderr on the status line.
func WithStderr(ch <-chan string) Option {
	return func(m *Model) { m.stderr = ch }
}

// WithStore restores the board and output levels from s and saves changes
// back to it.
func WithStore(s state.Interface) Option {
	return func(m *Model) { m.store = s }
}

// New creates a board playing sounds on pool.
func New(pool *sfx.Pool, sounds []Sound, opts ...Option) Model {
	m := Model{
		pool:   pool,
		sounds: sounds,
		keys:   keymap.NewResolver(keymap.Bindings),
		names:  make(map[*sfx.Handle]string),
		paused: make(map[*sfx.Handle]bool),
		duck:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.restore()
	return m
}

// restore applies saved state. A failing store only costs the saved state.
func (m *Model) restore() {
	if m.store == nil {
		return
	}
	if b, err := m.store.GetBoard(); err == nil && b != nil {
		m.duck = b.Ducking
		for i, s := range m.sounds {
			if s.Profile.Name == b.SelectedProfile {
				m.cursor = i
				break
			}
		}
	}
	outputs, err := m.store.GetOutputs()
	if err != nil {
		return
	}
	for _, s := range m.sounds {
		out, ok := s.Bus.(Output)
		if !ok {
			continue
		}
		if saved, ok := outputs[out.Name()]; ok {
			out.SetVolume(saved.Volume)
			out.SetMuted(saved.Muted)
		}
	}
}

func (m *Model) saveBoard() {
	if m.store == nil {
		return
	}
	var selected string
	if s, ok := m.selected(); ok {
		selected = s.Profile.Name
	}
	m.store.SaveBoard(state.BoardState{SelectedProfile: selected, Ducking: m.duck})
}

func (m *Model) saveOutput(out Output) {
	if m.store == nil {
		return
	}
	err := m.store.SaveOutput(state.OutputState{Name: out.Name(), Volume: out.Volume(), Muted: out.Muted()})
	if err != nil {
		m.status = errmsg.FormatWith(errmsg.OpSaveState, out.Name(), err)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitStderr(m.stderr))
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitStderr(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return stderrMsg(line)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.tick(time.Time(msg))
		return m, tickCmd()

	case stderrMsg:
		m.status = string(msg)
		return m, waitStderr(m.stderr)

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

// tick advances the pool by the time since the previous tick.
func (m *Model) tick(now time.Time) {
	dt := TickInterval
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.pool.Tick(dt)

	for h := range m.names {
		if h.IsReleased() {
			delete(m.names, h)
			delete(m.paused, h)
		}
	}
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(key)
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionMoveUp:
		m.cursor = max(m.cursor-1, 0)
	case keymap.ActionMoveDown:
		m.cursor = max(min(m.cursor+1, len(m.sounds)-1), 0)
	case keymap.ActionJumpStart:
		m.cursor = 0
	case keymap.ActionJumpEnd:
		m.cursor = max(len(m.sounds)-1, 0)
	case keymap.ActionTrigger:
		m.trigger()
	case keymap.ActionCrossFade:
		m.crossFade(sfx.Sine)
	case keymap.ActionCrossFadeSqrt:
		m.crossFade(sfx.Sqrt)
	case keymap.ActionToggleDuck:
		m.duck = !m.duck
		m.status = fmt.Sprintf("Ducking %s", onOff(m.duck))
	case keymap.ActionFadeOut:
		m.fade(0, sfx.Decibel)
	case keymap.ActionFadeIn:
		m.fade(1, sfx.Linear)
	case keymap.ActionPauseToggle:
		m.togglePause()
	case keymap.ActionStop:
		m.stopLast()
	case keymap.ActionStopAll:
		m.stopAll()
	case keymap.ActionVolumeUp:
		m.changeOutputVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.changeOutputVolume(-volumeStep)
	case keymap.ActionMuteOutput:
		m.toggleMute()
	}

	switch action {
	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionJumpStart,
		keymap.ActionJumpEnd, keymap.ActionToggleDuck:
		m.saveBoard()
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) selected() (Sound, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sounds) {
		return Sound{}, false
	}
	return m.sounds[m.cursor], true
}

// last returns the most recent live play.
func (m *Model) last() *sfx.Handle {
	for _, h := range m.pool.ActiveHandles() {
		if !h.IsReleased() {
			return h
		}
	}
	return nil
}

func (m *Model) descriptor(s Sound) (sfx.Descriptor, error) {
	b := s.Profile.ToBuilder(s.Clip, s.Bus)
	if m.duck && s.Profile.Duck {
		b.Duck(m.pool)
	}
	return b.Build()
}

func (m *Model) play(s Sound, d sfx.Descriptor) *sfx.Handle {
	h := m.pool.Play(d)
	if h == nil {
		m.status = errmsg.Dropped(s.Profile.Name)
		return nil
	}
	m.names[h] = s.Profile.Name
	return h
}

func (m *Model) trigger() {
	s, ok := m.selected()
	if !ok {
		return
	}
	d, err := m.descriptor(s)
	if err != nil {
		m.status = errmsg.FormatWith(errmsg.OpPlay, s.Profile.Name, err)
		return
	}
	if m.play(s, d) != nil {
		m.status = fmt.Sprintf("Playing '%s'", s.Profile.Name)
	}
}

// crossFade starts the selected sound silent and crossfades the last play
// into it. With nothing playing it is a plain trigger.
func (m *Model) crossFade(curve sfx.Curve) {
	s, ok := m.selected()
	if !ok {
		return
	}
	from := m.last()
	if from == nil {
		m.trigger()
		return
	}

	d, err := m.descriptor(s)
	if err != nil {
		m.status = errmsg.FormatWith(errmsg.OpCrossFade, s.Profile.Name, err)
		return
	}
	to := m.play(s, d.WithVolume(0))
	if to == nil {
		return
	}
	if _, err := from.CrossFade(context.Background(), to, CrossFadeDuration, d.Volume(), curve); err != nil {
		m.status = errmsg.FormatWith(errmsg.OpCrossFade, s.Profile.Name, err)
		return
	}
	m.status = fmt.Sprintf("Crossfading '%s' into '%s' (%s)", m.names[from], s.Profile.Name, curve)
}

func (m *Model) fade(target float64, space sfx.FadeSpace) {
	h := m.last()
	if h == nil {
		return
	}
	if _, err := h.FadeVolume(context.Background(), target, FadeDuration, space); err != nil {
		m.status = errmsg.FormatWith(errmsg.OpFade, m.names[h], err)
		return
	}
	m.status = fmt.Sprintf("Fading '%s' to %.0f%%", m.names[h], target*100)
}

func (m *Model) togglePause() {
	h := m.last()
	if h == nil {
		return
	}
	var err error
	if m.paused[h] {
		err = h.Unpause()
	} else {
		err = h.Pause()
	}
	if err != nil {
		m.status = errmsg.FormatWith(errmsg.OpPause, m.names[h], err)
		return
	}
	m.paused[h] = !m.paused[h]
}

func (m *Model) stopLast() {
	h := m.last()
	if h == nil {
		return
	}
	if err := h.Stop(); err != nil {
		m.status = errmsg.FormatWith(errmsg.OpStop, m.names[h], err)
	}
}

func (m *Model) stopAll() {
	for _, h := range m.pool.ActiveHandles() {
		_ = h.Stop()
	}
	m.status = "Stopped all plays"
}

func (m *Model) output() (Output, bool) {
	s, ok := m.selected()
	if !ok {
		return nil, false
	}
	out, ok := s.Bus.(Output)
	return out, ok
}

func (m *Model) changeOutputVolume(delta float64) {
	out, ok := m.output()
	if !ok {
		m.status = "Selected profile has no output group"
		return
	}
	v := min(max(out.Volume()+delta, 0), maxOutputVolume)
	out.SetVolume(v)
	m.status = fmt.Sprintf("Output '%s' at %.0f%%", out.Name(), v*100)
	m.saveOutput(out)
}

func (m *Model) toggleMute() {
	out, ok := m.output()
	if !ok {
		m.status = "Selected profile has no output group"
		return
	}
	out.SetMuted(!out.Muted())
	m.status = fmt.Sprintf("Output '%s' muted: %s", out.Name(), onOff(out.Muted()))
	m.saveOutput(out)
}
