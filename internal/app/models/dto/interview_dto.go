package dto

// InterviewCreateRequest schedules an interview for a student (admin only).
type InterviewCreateRequest struct {
	CompanyName string `json:"company_name"`
	StudentID   string `json:"student_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Mode        string `json:"mode"`
}

// InterviewStatusRequest changes an interview's status.
type InterviewStatusRequest struct {
	Status string `json:"status"`
}
