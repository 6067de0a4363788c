package storage

// User is a Telegram user seen writing in at least one tracked group.
// An empty Username means the user has no public handle.
type User struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	FirstName string
	Username  string
}

// Group is a Telegram group or supergroup chat. Name keeps the title the
// chat had when it was first seen.
type Group struct {
	GroupID int64 `gorm:"primaryKey;autoIncrement:false"`
	Name    string
}

// UserGroup links a user to a group they have written in.
type UserGroup struct {
	UserID  int64 `gorm:"primaryKey;autoIncrement:false"`
	GroupID int64 `gorm:"primaryKey;autoIncrement:false"`
}
