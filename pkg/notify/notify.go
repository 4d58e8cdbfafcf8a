package notify

import "context"

// Notifier is what the board mutation service talks to. Implementations must
// never propagate delivery failures to the caller: a failed notification
// must not fail the mutation it describes.
type Notifier interface {
	// NotifyProject fans message out to the project's members and manager,
	// excluding excludeUserID (0 excludes nobody).
	NotifyProject(ctx context.Context, projectID uint, message string, excludeUserID uint, typ string)
	// NotifyUser delivers a single-recipient notification, e.g. a direct
	// assignment or a comment reply.
	NotifyUser(ctx context.Context, userID uint, message, typ string)
}

// Mailer mirrors a notification out of band. Optional; a nil Mailer keeps
// notifications in-app only.
type Mailer interface {
	Send(to, subject, body string) error
}
