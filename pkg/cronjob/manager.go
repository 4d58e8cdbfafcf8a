package cronjob

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/pkg/logutils"
)

// Manager owns the maintenance schedule. The board core has no background
// worker; the only periodic job is housekeeping of old read notifications.
type Manager struct {
	cron          *cron.Cron
	db            *gorm.DB
	retentionDays int
}

func NewManager(db *gorm.DB, retentionDays int) *Manager {
	return &Manager{
		cron:          cron.New(),
		db:            db,
		retentionDays: retentionDays,
	}
}

// Start registers the cleanup job and launches the scheduler.
func (m *Manager) Start() error {
	// Daily, off-peak.
	if _, err := m.cron.AddFunc("30 3 * * *", m.purgeReadNotifications); err != nil {
		return err
	}
	m.cron.Start()
	return nil
}

func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
}

// purgeReadNotifications hard-deletes read notifications older than the
// retention window. Unread rows are kept indefinitely.
func (m *Manager) purgeReadNotifications() {
	cutoff := time.Now().AddDate(0, 0, -m.retentionDays)
	res := m.db.Unscoped().
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{})
	if res.Error != nil {
		logutils.Log.Errorf("purge read notifications: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		logutils.Log.Infof("purged %d read notifications older than %d days", res.RowsAffected, m.retentionDays)
	}
}
