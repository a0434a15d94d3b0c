package simulation

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shahtr4sh/FYPFN/model"
)

// EventDB stores simulation events in a sqlite database. Events are cached
// in memory and written in one transaction per flush so the round loop is
// not bottlenecked on per-event commits.
type EventDB struct {
	db        *sql.DB
	cache     []*model.EventRecord
	cacheSize int
}

// OpenEventDB opens (creating if needed) the event database at filename.
func OpenEventDB(filename string, cacheSize int) (*EventDB, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			round INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create events table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transmission_events (
			event_id INTEGER PRIMARY KEY,
			source INTEGER NOT NULL,
			target INTEGER NOT NULL,
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create transmission_events table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS round_stats_events (
			event_id INTEGER PRIMARY KEY,
			abm_believers INTEGER NOT NULL,
			pbm_believers REAL NOT NULL,
			intervention BOOLEAN NOT NULL,
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create round_stats_events table: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if cacheSize < 1 {
		cacheSize = 1
	}

	return &EventDB{db: db, cacheSize: cacheSize}, nil
}

// StoreEvent caches an event, flushing when the cache is full.
func (edb *EventDB) StoreEvent(event *model.EventRecord) error {
	edb.cache = append(edb.cache, event)
	if len(edb.cache) >= edb.cacheSize {
		return edb.Flush()
	}
	return nil
}

// Flush writes all cached events in one transaction.
func (edb *EventDB) Flush() error {
	if len(edb.cache) == 0 {
		return nil
	}

	tx, err := edb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, event := range edb.cache {
		var result sql.Result
		result, err = tx.Exec(
			"INSERT INTO events (type, round) VALUES (?, ?)",
			string(event.Type), event.Round,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}

		var eventID int64
		eventID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}

		switch event.Type {
		case model.EventTransmission:
			body, ok := event.Body.(model.TransmissionRecord)
			if !ok {
				err = fmt.Errorf("invalid TransmissionRecord body")
				return err
			}
			_, err = tx.Exec(
				"INSERT INTO transmission_events (event_id, source, target) VALUES (?, ?, ?)",
				eventID, body.Source, body.Target,
			)
			if err != nil {
				return fmt.Errorf("failed to insert transmission event: %w", err)
			}

		case model.EventRoundStats:
			body, ok := event.Body.(model.RoundStatsBody)
			if !ok {
				err = fmt.Errorf("invalid RoundStatsBody body")
				return err
			}
			_, err = tx.Exec(
				"INSERT INTO round_stats_events (event_id, abm_believers, pbm_believers, intervention) VALUES (?, ?, ?, ?)",
				eventID, body.ABMBelievers, body.PBMBelievers, body.Intervention,
			)
			if err != nil {
				return fmt.Errorf("failed to insert round stats event: %w", err)
			}

		default:
			err = fmt.Errorf("unknown event type: %s", event.Type)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}

	edb.cache = edb.cache[:0]
	return nil
}

// GetTransmissions loads every stored transmission record in round order.
func (edb *EventDB) GetTransmissions() ([]*model.EventRecord, error) {
	rows, err := edb.db.Query(`
		SELECT e.round, t.source, t.target
		FROM events e JOIN transmission_events t ON t.event_id = e.id
		ORDER BY e.round ASC, e.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transmissions: %w", err)
	}
	defer rows.Close()

	var events []*model.EventRecord
	for rows.Next() {
		var round, source, target int
		if err := rows.Scan(&round, &source, &target); err != nil {
			return nil, fmt.Errorf("failed to scan transmission: %w", err)
		}
		events = append(events, &model.EventRecord{
			Type:  model.EventTransmission,
			Round: round,
			Body:  model.TransmissionRecord{Source: source, Target: target},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transmissions: %w", err)
	}

	return events, nil
}

// Close flushes and closes the database.
func (edb *EventDB) Close() error {
	if err := edb.Flush(); err != nil {
		return err
	}
	return edb.db.Close()
}
