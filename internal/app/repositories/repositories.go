package repositories

import (
	"github.com/savi/placement-portal/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	CompanyRepository      *CompanyRepository
	ApplicationRepository  *ApplicationRepository
	AnnouncementRepository *AnnouncementRepository
	MessageRepository      *MessageRepository
	NotificationRepository *NotificationRepository
	InterviewRepository    *InterviewRepository
	AdminRepository        *AdminRepository
	FacultyRepository      *FacultyRepository
}

// NewRepositories initializes all repositories
func NewRepositories(mongo *db.Mongo) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(mongo),
		CompanyRepository:      NewCompanyRepository(mongo),
		ApplicationRepository:  NewApplicationRepository(mongo),
		AnnouncementRepository: NewAnnouncementRepository(mongo),
		MessageRepository:      NewMessageRepository(mongo),
		NotificationRepository: NewNotificationRepository(mongo),
		InterviewRepository:    NewInterviewRepository(mongo),
		AdminRepository:        NewAdminRepository(mongo),
		FacultyRepository:      NewFacultyRepository(mongo),
	}
}
