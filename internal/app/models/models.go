package models

// Role names resolved from the identity collections.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Interview statuses.
const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
	InterviewMissed    = "missed"
)

// Notification types.
const (
	NotificationApplication  = "application"
	NotificationAnnouncement = "announcement"
	NotificationMessage      = "message"
	NotificationInterview    = "interview"
)

// ValidApplicationStatus reports whether s is an accepted application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// ValidInterviewStatus reports whether s is an accepted interview status.
func ValidInterviewStatus(s string) bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewMissed:
		return true
	}
	return false
}
