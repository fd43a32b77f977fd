package dto

import "github.com/transitdesk/lostfound-backend/internal/service"

// CreateLostItemRequest represents the body of POST /lost
type CreateLostItemRequest struct {
	Description       string  `json:"description"`
	Type              string  `json:"type"`
	Color             *string `json:"color"`
	Brand             *string `json:"brand"`
	UniqueIdentifiers *string `json:"uniqueIdentifiers"`
	Date              *string `json:"date"`
	Time              *string `json:"time"`
	Route             string  `json:"route"`
	Station           string  `json:"station"`
	ContactInfo       string  `json:"contactInfo"`
	Image             *string `json:"image"`
}

// ToInput converts the request into service input
func (r CreateLostItemRequest) ToInput() service.LostReportInput {
	return service.LostReportInput{
		Description:       r.Description,
		Type:              r.Type,
		Color:             r.Color,
		Brand:             r.Brand,
		UniqueIdentifiers: r.UniqueIdentifiers,
		Date:              r.Date,
		Time:              r.Time,
		Route:             r.Route,
		Station:           r.Station,
		ContactInfo:       r.ContactInfo,
		Image:             r.Image,
	}
}

// CreateFoundItemRequest represents the body of POST /found
type CreateFoundItemRequest struct {
	Description     string  `json:"description"`
	Type            string  `json:"type"`
	Color           *string `json:"color"`
	VehicleNumber   string  `json:"vehicleNumber"`
	StorageLocation string  `json:"storageLocation"`
	DateFound       *string `json:"dateFound"`
	TimeFound       *string `json:"timeFound"`
	Image           *string `json:"image"`
}

// ToInput converts the request into service input
func (r CreateFoundItemRequest) ToInput() service.FoundReportInput {
	return service.FoundReportInput{
		Description:     r.Description,
		Type:            r.Type,
		Color:           r.Color,
		VehicleNumber:   r.VehicleNumber,
		StorageLocation: r.StorageLocation,
		DateFound:       r.DateFound,
		TimeFound:       r.TimeFound,
		Image:           r.Image,
	}
}

// ResolveClaimRequest represents the body of PUT /claims/:id
type ResolveClaimRequest struct {
	Status string `json:"status" binding:"required"`
}

// StaffLoginRequest represents the body of POST /auth/staff
type StaffLoginRequest struct {
	StaffID  string `json:"staffId" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}
