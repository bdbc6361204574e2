package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/soundkit/internal/db"
)

// OutputState is the saved level of one output group.
type OutputState struct {
	Name   string
	Volume float64
	Muted  bool
}

func getOutputs(db *sql.DB) (map[string]OutputState, error) {
	rows, err := db.Query(`SELECT name, volume, muted FROM output_state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outputs := make(map[string]OutputState)
	for rows.Next() {
		var o OutputState
		if err := rows.Scan(&o.Name, &o.Volume, &o.Muted); err != nil {
			return nil, err
		}
		outputs[o.Name] = o
	}
	return outputs, rows.Err()
}

func saveOutputs(db *sql.DB, outputs []OutputState) error {
	now := time.Now().Unix()
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		for _, o := range outputs {
			_, err := tx.Exec(`
				INSERT INTO output_state (name, volume, muted, updated_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET
					volume = excluded.volume,
					muted = excluded.muted,
					updated_at = excluded.updated_at
			`, o.Name, o.Volume, o.Muted, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
