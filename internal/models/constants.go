package models

// Статусы заявлений о потере.
const (
	LostStatusPending     = "Pending"
	LostStatusUnderReview = "Under Review"
	LostStatusFound       = "Found"
	LostStatusClaimed     = "Claimed"
)

// Статусы найденных вещей.
const (
	FoundStatusStored  = "Stored"
	FoundStatusClaimed = "Claimed"
)

// Уровни уверенности совпадения.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Роли вызывающей стороны.
const (
	RolePassenger = "passenger"
	RoleStaff     = "staff"
)

// Префиксы номеров заявлений.
const (
	LostReferencePrefix  = "LF"
	FoundReferencePrefix = "FF"
)

// ValidLostStatuses список валидных статусов заявлений о потере
var ValidLostStatuses = map[string]struct{}{
	LostStatusPending:     {},
	LostStatusUnderReview: {},
	LostStatusFound:       {},
	LostStatusClaimed:     {},
}

// ValidFoundStatuses список валидных статусов найденных вещей
var ValidFoundStatuses = map[string]struct{}{
	FoundStatusStored:  {},
	FoundStatusClaimed: {},
}

// MatchableLostStatuses статусы заявлений, участвующих в подборе совпадений.
var MatchableLostStatuses = []string{LostStatusPending, LostStatusUnderReview}

// MatchableFoundStatuses статусы находок, участвующих в подборе совпадений.
var MatchableFoundStatuses = []string{FoundStatusStored}
