package validation

import "github.com/transitdesk/lostfound-backend/internal/models"

// ValidateLostItem проверяет заявление о потере до любых побочных эффектов.
func ValidateLostItem(item *models.LostItem) error {
	err := validateFields([]field{
		{"description", item.Description, MaxDescriptionLength},
		{"type", item.Type, MaxShortFieldLength},
		{"route", item.Route, MaxShortFieldLength},
		{"station", item.Station, MaxShortFieldLength},
		{"contactInfo", item.ContactInfo, MaxContactLength},
	})
	if err != nil {
		return err
	}
	if err := ValidateDate("date", item.Date); err != nil {
		return err
	}
	return ValidateTime("time", item.Time)
}

// ValidateFoundItem проверяет запись о находке.
func ValidateFoundItem(item *models.FoundItem) error {
	err := validateFields([]field{
		{"description", item.Description, MaxDescriptionLength},
		{"type", item.Type, MaxShortFieldLength},
		{"vehicleNumber", item.VehicleNumber, MaxShortFieldLength},
		{"storageLocation", item.StorageLocation, MaxShortFieldLength},
	})
	if err != nil {
		return err
	}
	if err := ValidateDate("dateFound", item.DateFound); err != nil {
		return err
	}
	return ValidateTime("timeFound", item.TimeFound)
}
