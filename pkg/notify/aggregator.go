package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/dao/model"
	"github.com/raids-lab/taskflow/pkg/logutils"
	"github.com/raids-lab/taskflow/pkg/metrics"
)

const aggregatedMarker = "multiple updates"

// Aggregator collapses bursts of same-type notifications to the same user
// inside a time window into a single unread row instead of stacking
// duplicates.
type Aggregator struct {
	db     *gorm.DB
	window time.Duration
	mailer Mailer
	now    func() time.Time
}

func NewAggregator(db *gorm.DB, window time.Duration, mailer Mailer) *Aggregator {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Aggregator{
		db:     db,
		window: window,
		mailer: mailer,
		now:    time.Now,
	}
}

func (a *Aggregator) NotifyUser(ctx context.Context, userID uint, message, typ string) {
	if typ == "" {
		typ = model.NotifyInfo
	}
	n := model.Notification{UserID: userID, Message: message, Type: typ}
	if err := a.db.WithContext(ctx).Create(&n).Error; err != nil {
		logutils.Log.WithFields(logutils.Fields{"user": userID, "type": typ}).
			Errorf("create notification: %v", err)
		return
	}
	metrics.NotificationsCreated.Inc()
	a.mail(ctx, userID, message)
}

func (a *Aggregator) NotifyProject(ctx context.Context, projectID uint, message string, excludeUserID uint, typ string) {
	if typ == "" {
		typ = model.NotifyProjectUpdate
	}

	var project model.Project
	if err := a.db.WithContext(ctx).Preload("Members").First(&project, projectID).Error; err != nil {
		logutils.Log.Errorf("notify project %d: load project: %v", projectID, err)
		return
	}

	recipients := lo.Map(project.Members, func(u model.User, _ int) uint { return u.ID })
	recipients = append(recipients, project.ManagerID)
	recipients = lo.Uniq(recipients)
	recipients = lo.Filter(recipients, func(id uint, _ int) bool { return id != excludeUserID })

	for _, userID := range recipients {
		a.deliver(ctx, userID, &project, message, typ)
	}
}

// deliver updates the most recent unread notification of the same type for
// the user when one exists inside the window, otherwise inserts a new row.
//
// The read-then-write pair is not isolated: two concurrent broadcasts for
// the same (user, type) can both miss the other's row and insert duplicates.
// Dedup is best effort; the window bounds spam, it does not guarantee
// exactly-once.
func (a *Aggregator) deliver(ctx context.Context, userID uint, project *model.Project, message, typ string) {
	cutoff := a.now().Add(-a.window)

	var existing model.Notification
	err := a.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND read = ? AND created_at > ?", userID, typ, false, cutoff).
		Order("created_at DESC").
		First(&existing).Error

	switch {
	case err == nil:
		newMessage := existing.Message
		if !strings.Contains(newMessage, aggregatedMarker) {
			newMessage = fmt.Sprintf("%s made %s in %s", firstWord(message), aggregatedMarker, project.Title)
		}
		updateErr := a.db.WithContext(ctx).Model(&model.Notification{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{"message": newMessage, "created_at": a.now()}).Error
		if updateErr != nil {
			logutils.Log.Errorf("aggregate notification %d: %v", existing.ID, updateErr)
			return
		}
		metrics.NotificationsAggregated.Inc()
	case errors.Is(err, gorm.ErrRecordNotFound):
		n := model.Notification{UserID: userID, Message: message, Type: typ}
		if createErr := a.db.WithContext(ctx).Create(&n).Error; createErr != nil {
			logutils.Log.Errorf("create notification for user %d: %v", userID, createErr)
			return
		}
		metrics.NotificationsCreated.Inc()
	default:
		logutils.Log.Errorf("lookup recent notification for user %d: %v", userID, err)
	}
}

func (a *Aggregator) mail(ctx context.Context, userID uint, message string) {
	if a.mailer == nil {
		return
	}
	var user model.User
	if err := a.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		logutils.Log.Errorf("mail notification: load user %d: %v", userID, err)
		return
	}
	if err := a.mailer.Send(user.Email, "Taskflow notification", message); err != nil {
		logutils.Log.Errorf("mail notification to %s: %v", user.Email, err)
	}
}

// GetForUser returns the user's most recent notifications, newest first,
// capped at 20.
func (a *Aggregator) GetForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead flips the read flag. Idempotent: marking an already-read
// notification succeeds without effect.
func (a *Aggregator) MarkAsRead(ctx context.Context, userID, notificationID uint) error {
	return a.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
