package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitdesk/lostfound-backend/internal/app"
	"github.com/transitdesk/lostfound-backend/internal/config"
	"github.com/transitdesk/lostfound-backend/internal/db"
	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

func init() {
	color.NoColor = true
	logger.Discard()
}

func fileOpener(t *testing.T) Opener {
	t.Helper()
	cfg := &config.Config{
		Env:            "test",
		DBDriver:       db.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "desk.db"),
		MigrationsPath: "../../migrations",
		JWTSecret:      "cli-test-secret-with-32-characters!!",
		AccessTokenTTL: time.Hour,
	}
	return func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg)
	}
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seedRequestedClaim создаёт пару совпавших заявлений и запрашивает выдачу.
func seedRequestedClaim(t *testing.T, open Opener) (models.Claim, string) {
	t.Helper()
	ctx := context.Background()
	a, err := open(ctx)
	require.NoError(t, err)
	defer a.Close()

	black := "Black"
	found, err := a.ReportSvc.SubmitFoundReport(ctx, models.Identity{}, service.FoundReportInput{
		Description: "Black leather wallet", Type: "Wallet", Color: &black,
		VehicleNumber: "Bus 42", StorageLocation: "Depot A",
	})
	require.NoError(t, err)

	lost, err := a.ReportSvc.SubmitLostReport(ctx, models.Identity{UserID: "passenger-1"}, service.LostReportInput{
		Description: "leather wallet lost", Type: "Wallet", Color: &black,
		Route: "Bus 42", Station: "Central", ContactInfo: "a@b.com",
	})
	require.NoError(t, err)
	require.Len(t, lost.Matches, 1)

	claim, err := a.ClaimSvc.RequestClaim(ctx, models.Identity{UserID: "passenger-1"}, lost.Matches[0].ID)
	require.NoError(t, err)
	return *claim, found.Report.ReferenceNumber
}

func TestMigrate(t *testing.T) {
	open := fileOpener(t)

	out, err := run(t, open, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied (sqlite3)")

	// Повторный запуск не падает на уже применённых миграциях.
	_, err = run(t, open, "migrate")
	assert.NoError(t, err)
}

func TestClaimsListAndApprove(t *testing.T) {
	open := fileOpener(t)
	claim, _ := seedRequestedClaim(t, open)

	out, err := run(t, open, "claims", "list", "--status", "Claim Requested")
	require.NoError(t, err)
	assert.Contains(t, out, claim.ID.String())
	assert.Contains(t, out, "Claim Requested")

	out, err = run(t, open, "claims", "approve", claim.ID.String(), "--actor", "staff-7")
	require.NoError(t, err)
	assert.Contains(t, out, "is now Approved")

	_, err = run(t, open, "claims", "reject", claim.ID.String())
	assert.Error(t, err)

	out, err = run(t, open, "claims", "list", "--status", "Rejected")
	require.NoError(t, err)
	assert.Contains(t, out, "No claims found.")
}

func TestClaimsRejectInvalidID(t *testing.T) {
	_, err := run(t, fileOpener(t), "claims", "reject", "nope")
	assert.Error(t, err)
}

func TestRescan(t *testing.T) {
	open := fileOpener(t)
	_, foundRef := seedRequestedClaim(t, open)

	out, err := run(t, open, "rescan", foundRef)
	require.NoError(t, err)
	assert.Contains(t, out, "No new matches for "+foundRef)

	_, err = run(t, open, "rescan", "LF-1999-0000")
	assert.Error(t, err)
}
