package board

import (
	"context"

	"gorm.io/gorm"

	"github.com/raids-lab/taskflow/pkg/logutils"
	"github.com/raids-lab/taskflow/pkg/metrics"
	"github.com/raids-lab/taskflow/pkg/notify"
)

// ViewInvalidator receives a completion signal after every successful
// mutation so cached views of the affected project can be dropped.
type ViewInvalidator interface {
	InvalidateProject(projectID uint)
}

type logInvalidator struct{}

func (logInvalidator) InvalidateProject(projectID uint) {
	metrics.ProjectInvalidations.Inc()
	logutils.Log.Debugf("invalidate views of project %d", projectID)
}

// NewViewInvalidator returns the default invalidator, which bumps the
// invalidation counter and logs. A CDN or page-cache integration can
// replace it at wiring time.
func NewViewInvalidator() ViewInvalidator { return logInvalidator{} }

// Service orchestrates column/task/project mutations, composing the
// permission evaluator, the ordering engine and the notification
// aggregator. All dependencies are injected at construction.
type Service struct {
	db             *gorm.DB
	perms          *PermissionEvaluator
	ordering       *OrderingEngine
	notifier       notify.Notifier
	invalidator    ViewInvalidator
	storageBaseURL string
}

func NewService(
	db *gorm.DB,
	perms *PermissionEvaluator,
	ordering *OrderingEngine,
	notifier notify.Notifier,
	invalidator ViewInvalidator,
	storageBaseURL string,
) *Service {
	if invalidator == nil {
		invalidator = NewViewInvalidator()
	}
	return &Service{
		db:             db,
		perms:          perms,
		ordering:       ordering,
		notifier:       notifier,
		invalidator:    invalidator,
		storageBaseURL: storageBaseURL,
	}
}

// authorize runs steps (1) and (3) of every mutation: an absent actor is
// Unauthorized, a present one without edit permission on the project is
// Forbidden.
func (s *Service) authorize(ctx context.Context, actor Actor, projectID uint) error {
	if actor.ID == 0 {
		return errUnauthorized()
	}
	if !s.perms.CanEditProject(ctx, projectID, actor.ID, actor.Role) {
		return errForbidden(projectID)
	}
	return nil
}

// done records the operation outcome and, on success, signals view
// invalidation for the project.
func (s *Service) done(op string, projectID uint, err error) error {
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(op, KindOf(err).String()).Inc()
		return err
	}
	metrics.MutationsTotal.WithLabelValues(op, "OK").Inc()
	s.invalidator.InvalidateProject(projectID)
	return nil
}
