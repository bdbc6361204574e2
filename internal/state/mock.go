// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	board   *BoardState
	outputs map[string]OutputState
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{outputs: make(map[string]OutputState)}
}

func (m *Mock) GetBoard() (*BoardState, error) {
	return m.board, nil
}

func (m *Mock) SaveBoard(state BoardState) {
	m.board = &state
}

func (m *Mock) GetOutputs() (map[string]OutputState, error) {
	out := make(map[string]OutputState, len(m.outputs))
	for k, v := range m.outputs {
		out[k] = v
	}
	return out, nil
}

func (m *Mock) SaveOutput(o OutputState) error {
	m.outputs[o.Name] = o
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) Board() *BoardState { return m.board }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
