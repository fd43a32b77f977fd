// Package matching оценивает, насколько заявление о потере совпадает с находкой.
package matching

import (
	"strings"

	"github.com/transitdesk/lostfound-backend/internal/models"
)

// Веса правил; сумма равна 100.
const (
	TypePoints        = 30
	ColorPoints       = 20
	DescriptionPoints = 30
	RoutePoints       = 20

	HighThreshold   = 80
	MediumThreshold = 50
)

const (
	ReasonHigh   = "Strong match based on type, color, description, and route"
	ReasonMedium = "Moderate match based on type and description"
	ReasonLow    = "Weak match, verify details"
)

// Result итог оценки пары.
type Result struct {
	Score      int
	Confidence string
	Reason     string
}

// Qualifies сообщает, достаточно ли совпадение для создания заявки.
func (r Result) Qualifies() bool {
	return r.Confidence != models.ConfidenceLow
}

// Score сравнивает заявление о потере с находкой.
// Тип сравнивается строго с учётом регистра, остальные поля без учёта.
func Score(lost *models.LostItem, found *models.FoundItem) Result {
	score := 0

	if lost.Type == found.Type {
		score += TypePoints
	}

	lostColor, foundColor := deref(lost.Color), deref(found.Color)
	if lostColor != "" && foundColor != "" && strings.EqualFold(lostColor, foundColor) {
		score += ColorPoints
	}

	if DescriptionsOverlap(lost.Description, found.Description) {
		score += DescriptionPoints
	}

	if strings.EqualFold(lost.Route, found.VehicleNumber) {
		score += RoutePoints
	}

	return classify(score)
}

func classify(score int) Result {
	switch {
	case score >= HighThreshold:
		return Result{Score: score, Confidence: models.ConfidenceHigh, Reason: ReasonHigh}
	case score >= MediumThreshold:
		return Result{Score: score, Confidence: models.ConfidenceMedium, Reason: ReasonMedium}
	default:
		return Result{Score: score, Confidence: models.ConfidenceLow, Reason: ReasonLow}
	}
}

// DescriptionsOverlap истинно, если одно описание содержит другое
// или оба содержат общую фразу хотя бы из двух подряд идущих слов.
func DescriptionsOverlap(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return sharesPhrase(strings.Fields(a), strings.Fields(b))
}

func sharesPhrase(a, b []string) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	bigrams := make(map[[2]string]struct{}, len(a)-1)
	for i := 0; i+1 < len(a); i++ {
		bigrams[[2]string{a[i], a[i+1]}] = struct{}{}
	}
	for i := 0; i+1 < len(b); i++ {
		if _, ok := bigrams[[2]string{b[i], b[i+1]}]; ok {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
