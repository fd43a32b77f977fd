package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

func TestClaimStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ClaimStatus
		want     bool
	}{
		{ClaimStatusUnderReview, ClaimStatusClaimRequested, true},
		{ClaimStatusClaimRequested, ClaimStatusApproved, true},
		{ClaimStatusClaimRequested, ClaimStatusRejected, true},
		{ClaimStatusUnderReview, ClaimStatusApproved, false},
		{ClaimStatusUnderReview, ClaimStatusRejected, false},
		{ClaimStatusApproved, ClaimStatusRejected, false},
		{ClaimStatusRejected, ClaimStatusApproved, false},
		{ClaimStatusClaimRequested, ClaimStatusClaimRequested, false},
		{ClaimStatusPending, ClaimStatusClaimRequested, false},
		{ClaimStatusUnderReview, ClaimStatusReadyForPickup, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestClaimStatus_IsTerminal(t *testing.T) {
	assert.True(t, ClaimStatusApproved.IsTerminal())
	assert.True(t, ClaimStatusRejected.IsTerminal())
	assert.False(t, ClaimStatusUnderReview.IsTerminal())
	assert.False(t, ClaimStatusClaimRequested.IsTerminal())
}

func TestNewClaimStatus(t *testing.T) {
	s, err := NewClaimStatus("Ready for Pickup")
	require.NoError(t, err)
	assert.Equal(t, ClaimStatusReadyForPickup, s)

	_, err = NewClaimStatus("approved")
	assert.True(t, apperror.IsValidation(err))
}

func TestDecisionFromStatus(t *testing.T) {
	d, err := DecisionFromStatus("Approved")
	require.NoError(t, err)
	target, err := d.Target()
	require.NoError(t, err)
	assert.Equal(t, ClaimStatusApproved, target)

	d, err = DecisionFromStatus("Rejected")
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, d)

	_, err = DecisionFromStatus("Claimed")
	assert.True(t, apperror.IsValidation(err))

	_, err = ClaimDecision("maybe").Target()
	assert.True(t, apperror.IsValidation(err))
}
