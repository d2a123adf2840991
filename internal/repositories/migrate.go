package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every relational table, including the unique indexes that
// back the like, reaction and follow invariants and the cascading foreign keys to users and
// posts. Notifications carry no foreign keys so both inbox stores behave alike.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Reaction{},
		&models.Notification{},
	)
}
