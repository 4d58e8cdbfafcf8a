package cronjob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raids-lab/taskflow/dao/model"
)

func TestPurgeReadNotifications(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Notification{}))

	old := time.Now().AddDate(0, 0, -60)
	rows := []model.Notification{
		{UserID: 1, Message: "old read", Type: model.NotifyInfo, Read: true},
		{UserID: 1, Message: "old unread", Type: model.NotifyInfo},
		{UserID: 1, Message: "fresh read", Type: model.NotifyInfo, Read: true},
	}
	rows[0].CreatedAt = old
	rows[1].CreatedAt = old
	require.NoError(t, db.Create(&rows).Error)

	mgr := NewManager(db, 30)
	mgr.purgeReadNotifications()

	var remaining []model.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, n := range remaining {
		assert.NotEqual(t, "old read", n.Message)
	}
}
