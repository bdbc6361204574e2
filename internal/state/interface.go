// internal/state/interface.go
package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetBoard() (*BoardState, error)
	SaveBoard(state BoardState)
	GetOutputs() (map[string]OutputState, error)
	SaveOutput(o OutputState) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
