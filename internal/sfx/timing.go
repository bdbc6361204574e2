package sfx

import "github.com/llehouerou/soundkit/internal/device"

// TimingMode selects how a play is started.
type TimingMode int

const (
	// Immediate starts the play on the next device render.
	Immediate TimingMode = iota
	// Schedule starts the play at an absolute device clock time.
	Schedule
	// Delay starts the play after a delay relative to the device clock.
	Delay
)

func (m TimingMode) String() string {
	switch m {
	case Immediate:
		return "immediate"
	case Schedule:
		return "schedule"
	case Delay:
		return "delay"
	default:
		return "unknown"
	}
}

// startTime resolves the device clock instant a play with this timing starts.
func startTime(clock device.Clock, mode TimingMode, value float64) float64 {
	switch mode {
	case Schedule:
		return value
	case Delay:
		return clock.Now() + value
	default:
		return clock.Now()
	}
}

// EndReason tells why a play ended.
type EndReason int

const (
	// Finish means the play reached its end sample with no loops left.
	Finish EndReason = iota
	// Stop means the play was stopped through its handle.
	Stop
	// Destroy means the voice was torn down while playing.
	Destroy
)

func (r EndReason) String() string {
	switch r {
	case Finish:
		return "finish"
	case Stop:
		return "stop"
	case Destroy:
		return "destroy"
	default:
		return "unknown"
	}
}
