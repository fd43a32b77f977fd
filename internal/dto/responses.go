package dto

import "github.com/transitdesk/lostfound-backend/internal/models"

// LostSubmissionResponse is returned by POST /lost
type LostSubmissionResponse struct {
	ReferenceNumber string           `json:"referenceNumber"`
	Report          *models.LostItem `json:"report"`
	Matches         []models.Claim   `json:"matches"`
}

// FoundSubmissionResponse is returned by POST /found
type FoundSubmissionResponse struct {
	ReferenceNumber string            `json:"referenceNumber"`
	Report          *models.FoundItem `json:"report"`
	Matches         []models.Claim    `json:"matches"`
}

// UnreadCountResponse is returned by GET /notifications/unread/count
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ImageUploadResponse is returned by POST /media/images
type ImageUploadResponse struct {
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
