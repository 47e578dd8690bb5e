package constants

// Account roles
const (
	RoleJobseeker = "jobseeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// Notification kinds
const (
	NotificationEmployerPending = "employer_pending_approval"
)
