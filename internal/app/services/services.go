package services

// Services defined in this package:
// - AuthService: registration, login and token issuance for all roles
// - ProfileService: student profile and portfolio management
// - CompanyService: job postings and the application lifecycle
// - AnnouncementService: portal-wide announcements with broadcasts
// - MessageService: direct messages between students
// - NotificationService: per-user notification feed
// - DashboardService: role-specific dashboard statistics
// - SearchService: cross-collection keyword search
// - RecommendationService: skill and interest based posting scores
// - InterviewService: interview scheduling and status tracking
// - AnalyticsService: admin-facing aggregate reports
// - AdminService: student administration
