package valueobject

import "github.com/transitdesk/lostfound-backend/internal/pkg/apperror"

type ClaimStatus string

const (
	ClaimStatusUnderReview    ClaimStatus = "Under Review"
	ClaimStatusClaimRequested ClaimStatus = "Claim Requested"
	ClaimStatusApproved       ClaimStatus = "Approved"
	ClaimStatusRejected       ClaimStatus = "Rejected"
	ClaimStatusReadyForPickup ClaimStatus = "Ready for Pickup"
	ClaimStatusClaimed        ClaimStatus = "Claimed"
	ClaimStatusPending        ClaimStatus = "Pending"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusUnderReview, ClaimStatusClaimRequested, ClaimStatusApproved, ClaimStatusRejected,
		ClaimStatusReadyForPickup, ClaimStatusClaimed, ClaimStatusPending:
		return true
	}
	return false
}

// Pending и Ready for Pickup зарезервированы: в них нельзя перейти и из них нельзя выйти.
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusUnderReview:    {ClaimStatusClaimRequested},
	ClaimStatusClaimRequested: {ClaimStatusApproved, ClaimStatusRejected},
	ClaimStatusApproved:       {},
	ClaimStatusRejected:       {},
	ClaimStatusReadyForPickup: {},
	ClaimStatusClaimed:        {},
	ClaimStatusPending:        {},
}

func (s ClaimStatus) CanTransitionTo(newStatus ClaimStatus) bool {
	for _, status := range claimTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, что из статуса нет переходов.
func (s ClaimStatus) IsTerminal() bool {
	return len(claimTransitions[s]) == 0
}

func (s ClaimStatus) String() string {
	return string(s)
}

func NewClaimStatus(status string) (ClaimStatus, error) {
	s := ClaimStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("status", "invalid claim status")
	}
	return s, nil
}

// ClaimDecision решение персонала по запрошенной заявке.
type ClaimDecision string

const (
	DecisionApprove ClaimDecision = "approve"
	DecisionReject  ClaimDecision = "reject"
)

// Target возвращает статус, в который переводит решение.
func (d ClaimDecision) Target() (ClaimStatus, error) {
	switch d {
	case DecisionApprove:
		return ClaimStatusApproved, nil
	case DecisionReject:
		return ClaimStatusRejected, nil
	}
	return "", apperror.Validation("status", "decision must be approve or reject")
}

// DecisionFromStatus принимает тело PUT /claims/:id, где решение передаётся статусом.
func DecisionFromStatus(status string) (ClaimDecision, error) {
	switch ClaimStatus(status) {
	case ClaimStatusApproved:
		return DecisionApprove, nil
	case ClaimStatusRejected:
		return DecisionReject, nil
	}
	return "", apperror.Validation("status", `status must be "Approved" or "Rejected"`)
}
