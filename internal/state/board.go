package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/soundkit/internal/db"
)

// BoardState is the sound board position restored on the next run.
type BoardState struct {
	SelectedProfile string
	Ducking         bool
}

func getBoard(db *sql.DB) (*BoardState, error) {
	row := db.QueryRow(`SELECT selected_profile, ducking FROM board_state WHERE id = 1`)

	var state BoardState
	var selected sql.NullString
	err := row.Scan(&selected, &state.Ducking)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.SelectedProfile = dbutil.NullStringValue(selected)
	return &state, nil
}

func saveBoard(db *sql.DB, state BoardState) error {
	_, err := db.Exec(`
		INSERT INTO board_state (id, selected_profile, ducking)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			selected_profile = excluded.selected_profile,
			ducking = excluded.ducking
	`, dbutil.NullString(state.SelectedProfile), state.Ducking)
	return err
}
