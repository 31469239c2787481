package dto

// AnnouncementCreateRequest creates an announcement (admin only). The
// attachment arrives separately as a multipart file when present.
type AnnouncementCreateRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}
