package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

func init() {
	logger.Discard()
}

func newEngine(d *memoryDesk, n Notifier) *ClaimEngine {
	return NewClaimEngine(d.lostStore(), d.foundStore(), d.claimStore(), n)
}

func TestClaimEngine_FoundReportCreatesHighClaim(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := &recordingNotifier{}
	engine := newEngine(d, notifier)

	lost := walletLost()
	require.NoError(t, d.lostStore().Create(ctx, lost))
	found := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, found))

	claims, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	require.Len(t, claims, 1)

	claim := claims[0]
	assert.Equal(t, lost.ReferenceNumber, claim.LostReference)
	assert.Equal(t, found.ReferenceNumber, claim.FoundReference)
	assert.Equal(t, models.ConfidenceHigh, claim.MatchConfidence)
	assert.Equal(t, "Strong match based on type, color, description, and route", claim.MatchReason)
	assert.Equal(t, "Under Review", claim.Status)
	assert.Equal(t, lost.Description, claim.Description)
	assert.Equal(t, lost.ContactInfo, claim.ContactInfo)

	require.Len(t, notifier.sent, 1)
	sent := notifier.sent[0]
	assert.Equal(t, TitleMatchFound, sent.Title)
	require.NotNil(t, sent.UserID)
	assert.Equal(t, "passenger-1", *sent.UserID)
	require.NotNil(t, sent.Reference)
	assert.Equal(t, lost.ReferenceNumber, *sent.Reference)
	assert.Contains(t, sent.Message, lost.ReferenceNumber)
}

func TestClaimEngine_LostReportScansStoredItems(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := &recordingNotifier{}
	engine := newEngine(d, notifier)

	stored := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, stored))
	handedOver := walletFound()
	handedOver.Status = models.FoundStatusClaimed
	require.NoError(t, d.foundStore().Create(ctx, handedOver))

	lost := walletLost()
	require.NoError(t, d.lostStore().Create(ctx, lost))

	claims, err := engine.OnLostReportCreated(ctx, lost)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, stored.ReferenceNumber, claims[0].FoundReference)
}

func TestClaimEngine_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := &recordingNotifier{}
	engine := newEngine(d, notifier)

	require.NoError(t, d.lostStore().Create(ctx, walletLost()))
	found := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, found))

	first, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	assert.Empty(t, second)

	assert.Equal(t, 1, d.claimCount())
	assert.Len(t, notifier.sent, 1)
}

func TestClaimEngine_DiscardsLowScores(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := &recordingNotifier{}
	engine := newEngine(d, notifier)

	require.NoError(t, d.lostStore().Create(ctx, walletLost()))
	umbrella := &models.FoundItem{
		Description:     "Blue umbrella",
		Type:            "Umbrella",
		Color:           strPtr("Blue"),
		VehicleNumber:   "B7",
		StorageLocation: "Depot A",
	}
	require.NoError(t, d.foundStore().Create(ctx, umbrella))

	claims, err := engine.OnFoundReportCreated(ctx, umbrella)
	require.NoError(t, err)
	assert.Empty(t, claims)
	assert.Zero(t, d.claimCount())
	assert.Empty(t, notifier.sent)
}

func TestClaimEngine_MediumMatch(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	engine := newEngine(d, &recordingNotifier{})

	lost := walletLost()
	lost.Color = nil
	require.NoError(t, d.lostStore().Create(ctx, lost))
	found := walletFound()
	found.VehicleNumber = "B99"
	require.NoError(t, d.foundStore().Create(ctx, found))

	claims, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, models.ConfidenceMedium, claims[0].MatchConfidence)
	assert.Equal(t, "Moderate match based on type and description", claims[0].MatchReason)
}

func TestClaimEngine_SkipsFailedCandidate(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := &recordingNotifier{}
	engine := newEngine(d, notifier)

	broken := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, broken))
	healthy := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, healthy))
	d.failFound = broken.ReferenceNumber

	lost := walletLost()
	require.NoError(t, d.lostStore().Create(ctx, lost))

	claims, err := engine.OnLostReportCreated(ctx, lost)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, healthy.ReferenceNumber, claims[0].FoundReference)
	assert.Len(t, notifier.sent, 1)
}

func TestClaimEngine_CandidateListFailure(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	engine := newEngine(d, &recordingNotifier{})

	lost := walletLost()
	require.NoError(t, d.lostStore().Create(ctx, lost))
	d.failList = true

	_, err := engine.OnLostReportCreated(ctx, lost)
	assert.True(t, apperror.IsPersistence(err))
}

func TestClaimEngine_NotificationFailureKeepsClaim(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(errors.New("journal unavailable"))
	engine := newEngine(d, notifier)

	require.NoError(t, d.lostStore().Create(ctx, walletLost()))
	found := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, found))

	claims, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestClaimEngine_IgnoresClosedLostReports(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	engine := newEngine(d, &recordingNotifier{})

	lost := walletLost()
	lost.Status = models.LostStatusClaimed
	require.NoError(t, d.lostStore().Create(ctx, lost))
	found := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, found))

	claims, err := engine.OnFoundReportCreated(ctx, found)
	require.NoError(t, err)
	assert.Empty(t, claims)

	claims, err = engine.OnLostReportCreated(ctx, lost)
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestClaimEngine_Rescan(t *testing.T) {
	ctx := context.Background()
	d := newMemoryDesk()
	engine := newEngine(d, &recordingNotifier{})

	lost := walletLost()
	require.NoError(t, d.lostStore().Create(ctx, lost))
	found := walletFound()
	require.NoError(t, d.foundStore().Create(ctx, found))

	claims, err := engine.Rescan(ctx, found.ReferenceNumber)
	require.NoError(t, err)
	assert.Len(t, claims, 1)

	claims, err = engine.Rescan(ctx, lost.ReferenceNumber)
	require.NoError(t, err)
	assert.Empty(t, claims)

	_, err = engine.Rescan(ctx, "LF-2025-9999")
	assert.True(t, apperror.IsNotFound(err))
}
