package storage

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = time.Hour
)

// Storage persists users, groups and their membership links.
type Storage struct {
	db *gorm.DB
}

// New opens the database behind the given dialector, bounds its connection
// pool and migrates the schema.
func New(dialector gorm.Dialector) (*Storage, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		slog.Error("storage: Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("storage: Failed to access connection pool", "error", err)
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) migrate() error {
	err := s.db.AutoMigrate(&User{}, &Group{}, &UserGroup{})
	if err != nil {
		slog.Error("storage: Failed to migrate database", "error", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// UpsertParticipation records that a user wrote in a group: the user row is
// inserted or updated with the latest profile fields, the group row is
// inserted if absent (its first seen name sticks), and the membership link
// is inserted if absent. All three writes happen in one transaction.
func (s *Storage) UpsertParticipation(userID int64, firstName, username string, groupID int64, groupName string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user := User{UserID: userID, FirstName: firstName, Username: username}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "username"}),
		}).Create(&user)
		if result.Error != nil {
			return result.Error
		}

		group := Group{GroupID: groupID, Name: groupName}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&group)
		if result.Error != nil {
			return result.Error
		}

		link := UserGroup{UserID: userID, GroupID: groupID}
		result = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)

		return result.Error
	})
	if err != nil {
		slog.Error("storage: Failed to upsert participation", "error", err,
			"user_id", userID, "group_id", groupID)
		return fmt.Errorf("failed to upsert participation: %w", err)
	}

	return nil
}

// GroupRoster returns every user linked to the group. An unknown or empty
// group yields an empty slice.
func (s *Storage) GroupRoster(groupID int64) ([]User, error) {
	var users []User
	result := s.db.
		Joins("JOIN user_groups ON user_groups.user_id = users.user_id").
		Where("user_groups.group_id = ?", groupID).
		Find(&users)
	if result.Error != nil {
		slog.Error("storage: Failed to get group roster", "error", result.Error, "group_id", groupID)
		return nil, fmt.Errorf("failed to get group roster: %w", result.Error)
	}

	return users, nil
}

// Counts returns the total number of tracked users and groups.
func (s *Storage) Counts() (int64, int64, error) {
	var users, groups int64

	result := s.db.Model(&User{}).Count(&users)
	if result.Error != nil {
		slog.Error("storage: Failed to count users", "error", result.Error)
		return 0, 0, fmt.Errorf("failed to count users: %w", result.Error)
	}

	result = s.db.Model(&Group{}).Count(&groups)
	if result.Error != nil {
		slog.Error("storage: Failed to count groups", "error", result.Error)
		return 0, 0, fmt.Errorf("failed to count groups: %w", result.Error)
	}

	return users, groups, nil
}
