package dao

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
)

// Migrate applies all pending schema migrations. The initial migration
// creates the full schema; later structural changes get their own IDs so
// existing deployments upgrade in place.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901-init",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.User{},
					&model.Project{},
					&model.Column{},
					&model.Task{},
					&model.Label{},
					&model.Comment{},
					&model.Attachment{},
					&model.Notification{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"notifications", "attachments", "comments",
					"task_labels", "labels", "tasks", "columns",
					"project_members", "projects", "users",
				)
			},
		},
	})
	return m.Migrate()
}
