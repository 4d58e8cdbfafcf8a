// Constants mapped to database columns.
// Gin cannot bind a required field to its zero value, so enums start at
// iota + 1 and handlers take pointers where the zero value is meaningful.
package model

// Role is the platform-wide role of a user.
type Role uint8

const (
	RoleMember Role = iota + 1
	RoleManager
	RoleAdmin
)

// UserStatus tracks the verification state of an account.
// A freshly registered user is Pending until an admin verifies it.
type UserStatus uint8

const (
	UserPending UserStatus = iota + 1
	UserActive
	UserRejected
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus uint8

const (
	ProjectActive ProjectStatus = iota + 1
	ProjectInactive
	ProjectCompleted
	ProjectArchived
)

// TaskStatus is informational and independent of column placement:
// moving a task into a column named "Done" never forces StatusDone.
type TaskStatus uint8

const (
	StatusTodo TaskStatus = iota + 1
	StatusInProgress
	StatusDone
)

// Priority of a task. Tasks may carry no priority at all (NULL column).
type Priority uint8

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// Well-known notification type tags. The column is free-form so feature
// code may introduce ad-hoc tags without a migration.
const (
	NotifyInfo          = "INFO"
	NotifyWarning       = "WARNING"
	NotifySuccess       = "SUCCESS"
	NotifyError         = "ERROR"
	NotifyProjectUpdate = "PROJECT_UPDATE"
)
