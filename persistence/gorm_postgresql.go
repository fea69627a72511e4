// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/drawparty/models"
)

// GormPostgreSQL is the GORM implementation of Database.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	logger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.GormGameRecord{},
		&models.GormParticipantStats{},
		&models.GormRoom{},
	); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// ApplyGameResult stores the record and updates participant aggregates in
// one transaction.
func (g *GormPostgreSQL) ApplyGameResult(record *models.GameRecord) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		row := models.GormGameRecord{
			RoomCode: record.RoomCode,
			Rounds:   record.Rounds,
			Scores:   record.Scores,
			WinnerID: record.WinnerID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		for participantID, points := range record.Scores {
			var stats models.GormParticipantStats
			err := tx.Where("participant_id = ?", participantID).First(&stats).Error
			if err == gorm.ErrRecordNotFound {
				stats = models.GormParticipantStats{ParticipantID: participantID}
			} else if err != nil {
				return err
			}

			stats.GamesPlayed++
			stats.TotalPoints += points
			if participantID == record.WinnerID {
				stats.Wins++
			}
			if points > stats.BestScore {
				stats.BestScore = points
			}

			if stats.ID == 0 {
				err = tx.Create(&stats).Error
			} else {
				err = tx.Save(&stats).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *GormPostgreSQL) GetParticipantStats(participantID string) (*models.ParticipantStats, error) {
	var stats models.GormParticipantStats
	err := g.db.Where("participant_id = ?", participantID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrRecordNotFound
	} else if err != nil {
		return nil, err
	}

	return &models.ParticipantStats{
		ParticipantID: stats.ParticipantID,
		GamesPlayed:   stats.GamesPlayed,
		Wins:          stats.Wins,
		TotalPoints:   stats.TotalPoints,
		BestScore:     stats.BestScore,
	}, nil
}

func (g *GormPostgreSQL) SaveRoomState(roomCode, status string, membersJSON string) error {
	if !json.Valid([]byte(membersJSON)) {
		return fmt.Errorf("members is not valid JSON")
	}

	row := models.GormRoom{
		RoomCode: roomCode,
		Status:   status,
		Members:  membersJSON,
	}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "members", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
