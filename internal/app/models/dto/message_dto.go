package dto

// SendMessageRequest sends a direct message to another student.
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
}
