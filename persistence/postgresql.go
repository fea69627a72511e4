// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/wfunc/drawparty/models"
)

// PostgreSQL is the database/sql implementation of Database.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(16) NOT NULL,
            rounds INT NOT NULL,
            scores JSONB NOT NULL,
            winner_id VARCHAR(64),
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS participant_stats (
            id SERIAL PRIMARY KEY,
            participant_id VARCHAR(64) UNIQUE NOT NULL,
            games_played INT NOT NULL DEFAULT 0,
            wins INT NOT NULL DEFAULT 0,
            total_points INT NOT NULL DEFAULT 0,
            best_score INT NOT NULL DEFAULT 0,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS rooms (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(16) UNIQUE NOT NULL,
            status VARCHAR(16) NOT NULL,
            members JSONB NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_code ON game_records(room_code);
        CREATE INDEX IF NOT EXISTS idx_game_records_created_at ON game_records(created_at);
        CREATE INDEX IF NOT EXISTS idx_rooms_room_code ON rooms(room_code);
    `)

	return err
}

// ApplyGameResult inserts the record and bumps every participant's
// aggregates inside one transaction.
func (p *PostgreSQL) ApplyGameResult(record *models.GameRecord) error {
	scoresJSON, err := json.Marshal(record.Scores)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO game_records (room_code, rounds, scores, winner_id)
        VALUES ($1, $2, $3, $4)
    `, record.RoomCode, record.Rounds, scoresJSON, record.WinnerID)
	if err != nil {
		return err
	}

	for participantID, points := range record.Scores {
		won := 0
		if participantID == record.WinnerID {
			won = 1
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO participant_stats (participant_id, games_played, wins, total_points, best_score)
            VALUES ($1, 1, $2, $3, $3)
            ON CONFLICT (participant_id)
            DO UPDATE SET
                games_played = participant_stats.games_played + 1,
                wins = participant_stats.wins + $2,
                total_points = participant_stats.total_points + $3,
                best_score = GREATEST(participant_stats.best_score, $3),
                updated_at = CURRENT_TIMESTAMP
        `, participantID, won, points)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgreSQL) GetParticipantStats(participantID string) (*models.ParticipantStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := &models.ParticipantStats{ParticipantID: participantID}
	err := p.db.QueryRowContext(ctx, `
        SELECT games_played, wins, total_points, best_score
        FROM participant_stats WHERE participant_id = $1
    `, participantID).Scan(&stats.GamesPlayed, &stats.Wins, &stats.TotalPoints, &stats.BestScore)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return stats, nil
}

func (p *PostgreSQL) SaveRoomState(roomCode, status string, membersJSON string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := p.db.ExecContext(ctx, `
        INSERT INTO rooms (room_code, status, members)
        VALUES ($1, $2, $3)
        ON CONFLICT (room_code)
        DO UPDATE SET status = $2, members = $3, updated_at = CURRENT_TIMESTAMP
    `, roomCode, status, membersJSON)
	return err
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
