// Package profile loads named playback presets from a YAML bank.
//
// A bank looks like:
//
//	profiles:
//	  - name: click
//	    clip: ui/click.wav
//	    output: ui
//	    volume: 0.8
//	    volume_random: [0.7, 0.9]
//	    duck: true
//	  - name: engine
//	    clip: loops/engine.ogg
//	    loop_count: -1
//	    loop_start_sample: 4410
//
// Fields left out take the same defaults as sfx.NewBuilder.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/device"
	"github.com/llehouerou/soundkit/internal/sfx"
)

// ErrUnknownProfile is returned when a profile name is not in the bank.
var ErrUnknownProfile = errors.New("unknown profile")

// Bank is a set of profiles.
type Bank struct {
	Profiles []Profile `yaml:"profiles"`
}

// Profile is a saved set of descriptor fields plus the clip to play.
type Profile struct {
	Name   string `yaml:"name"`
	Clip   string `yaml:"clip"`   // path, relative to the sounds directory
	Output string `yaml:"output"` // output group name, empty for master

	Mute     bool     `yaml:"mute"`
	Volume   *float64 `yaml:"volume"`   // default: 1
	Pitch    *float64 `yaml:"pitch"`    // default: 1
	Priority *int     `yaml:"priority"` // default: 128
	Pan      float64  `yaml:"pan"`

	StartSample      int   `yaml:"start_sample"`
	EndSample        *int  `yaml:"end_sample"` // default: -1 (whole clip)
	LoopStartSample  int   `yaml:"loop_start_sample"`
	LoopCount        int   `yaml:"loop_count"`
	LoopGapPreserved *bool `yaml:"loop_gap_preserved"` // default: true

	Timing           string   `yaml:"timing"`       // immediate, schedule, delay
	TimingValue      float64  `yaml:"timing_value"` // seconds
	ScheduledEndTime *float64 `yaml:"scheduled_end_time"`

	VolumeRandom []float64 `yaml:"volume_random"` // [min, max]
	PitchRandom  []float64 `yaml:"pitch_random"`  // [min, max]
	Duck         bool      `yaml:"duck"`
}

// Load reads a bank from a YAML file.
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: open bank %q: %w", path, err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("profile: parse bank %q: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a bank. Unknown keys are rejected.
func Parse(r io.Reader) (*Bank, error) {
	var b Bank
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile: decode yaml: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks names are unique and every profile is well formed.
func (b *Bank) Validate() error {
	seen := make(map[string]bool, len(b.Profiles))
	for i, p := range b.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile %d: missing name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("profile %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if err := p.validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return nil
}

// Names returns the profile names in bank order.
func (b *Bank) Names() []string {
	names := make([]string, len(b.Profiles))
	for i, p := range b.Profiles {
		names[i] = p.Name
	}
	return names
}

// Get returns the profile called name.
func (b *Bank) Get(name string) (Profile, error) {
	for _, p := range b.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// ClipPath returns the clip path, joined to dir when relative.
func (p Profile) ClipPath(dir string) string {
	if dir == "" || filepath.IsAbs(p.Clip) {
		return p.Clip
	}
	return filepath.Join(dir, p.Clip)
}

func (p Profile) validate() error {
	if p.Clip == "" {
		return errors.New("missing clip")
	}
	mode, err := parseTiming(p.Timing)
	if err != nil {
		return err
	}
	if mode != sfx.Immediate && p.TimingValue < 0 {
		return fmt.Errorf("timing %s needs a non-negative timing_value, got %g", p.Timing, p.TimingValue)
	}
	if len(p.VolumeRandom) != 0 && len(p.VolumeRandom) != 2 {
		return errors.New("volume_random needs [min, max]")
	}
	if len(p.PitchRandom) != 0 && len(p.PitchRandom) != 2 {
		return errors.New("pitch_random needs [min, max]")
	}
	return nil
}

func parseTiming(s string) (sfx.TimingMode, error) {
	switch s {
	case "", "immediate":
		return sfx.Immediate, nil
	case "schedule":
		return sfx.Schedule, nil
	case "delay":
		return sfx.Delay, nil
	default:
		return 0, fmt.Errorf("unknown timing %q", s)
	}
}

// ToBuilder returns a builder for c seeded with the profile's fields.
// Random ranges are drawn now. Ducking needs a pool, so callers apply it
// themselves when Duck is set.
func (p Profile) ToBuilder(c *clip.Clip, bus device.Bus) *sfx.Builder {
	b := sfx.NewBuilder(c).
		SetOutput(bus).
		SetMute(p.Mute).
		SetPan(p.Pan).
		SetStartSample(p.StartSample).
		SetLoopStartSample(p.LoopStartSample).
		SetLoopCount(p.LoopCount)

	if p.Volume != nil {
		b.SetVolume(*p.Volume)
	}
	if p.Pitch != nil {
		b.SetPitch(*p.Pitch)
	}
	if p.Priority != nil {
		b.SetPriority(*p.Priority)
	}
	if p.EndSample != nil {
		b.SetEndSample(*p.EndSample)
	}
	if p.LoopGapPreserved != nil {
		b.SetLoopGapPreserved(*p.LoopGapPreserved)
	}
	if p.ScheduledEndTime != nil {
		b.SetScheduledEndTime(*p.ScheduledEndTime)
	}

	mode, _ := parseTiming(p.Timing)
	switch mode {
	case sfx.Schedule:
		b.SetSchedule(p.TimingValue)
	case sfx.Delay:
		b.SetDelay(p.TimingValue)
	}

	if len(p.VolumeRandom) == 2 {
		b.SetVolumeRandom(p.VolumeRandom[0], p.VolumeRandom[1])
	}
	if len(p.PitchRandom) == 2 {
		b.SetPitchRandom(p.PitchRandom[0], p.PitchRandom[1])
	}
	return b
}

// ToDescriptor builds the descriptor for c.
func (p Profile) ToDescriptor(c *clip.Clip, bus device.Bus) (sfx.Descriptor, error) {
	return p.ToBuilder(c, bus).Build()
}
