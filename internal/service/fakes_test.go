package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/repository"
	"github.com/transitdesk/lostfound-backend/internal/repository/common"
)

// memoryDesk хранит заявления и заявки в памяти и ведёт себя как SQL-репозитории.
type memoryDesk struct {
	mu     sync.Mutex
	lost   []*models.LostItem
	found  []*models.FoundItem
	claims []*models.Claim
	seq    int

	// failPair заставляет CreateIfAbsent падать для заданной находки.
	failFound string
	// failList заставляет ListByStatus возвращать ошибку.
	failList bool
}

func newMemoryDesk() *memoryDesk {
	return &memoryDesk{}
}

type memoryLostStore struct{ d *memoryDesk }
type memoryFoundStore struct{ d *memoryDesk }
type memoryClaimStore struct{ d *memoryDesk }

func (d *memoryDesk) lostStore() *memoryLostStore   { return &memoryLostStore{d} }
func (d *memoryDesk) foundStore() *memoryFoundStore { return &memoryFoundStore{d} }
func (d *memoryDesk) claimStore() *memoryClaimStore { return &memoryClaimStore{d} }

func (s *memoryLostStore) Create(_ context.Context, item *models.LostItem) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.seq++
	item.ID = int64(s.d.seq)
	item.ReferenceNumber = fmt.Sprintf("LF-2025-%04d", s.d.seq)
	if item.Status == "" {
		item.Status = models.LostStatusPending
	}
	cp := *item
	s.d.lost = append(s.d.lost, &cp)
	return nil
}

func (s *memoryLostStore) GetByReference(_ context.Context, ref string) (*models.LostItem, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, item := range s.d.lost {
		if item.ReferenceNumber == ref {
			cp := *item
			return &cp, nil
		}
	}
	return nil, repository.ErrLostItemNotFound
}

func (s *memoryLostStore) ListByStatus(_ context.Context, statuses []string, _ models.Page) ([]models.LostItem, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if s.d.failList {
		return nil, errors.New("connection refused")
	}
	items := []models.LostItem{}
	for _, item := range s.d.lost {
		if len(statuses) == 0 || slices.Contains(statuses, item.Status) {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *memoryFoundStore) Create(_ context.Context, item *models.FoundItem) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.seq++
	item.ID = int64(s.d.seq)
	item.ReferenceNumber = fmt.Sprintf("FF-2025-%04d", s.d.seq)
	if item.Status == "" {
		item.Status = models.FoundStatusStored
	}
	cp := *item
	s.d.found = append(s.d.found, &cp)
	return nil
}

func (s *memoryFoundStore) GetByReference(_ context.Context, ref string) (*models.FoundItem, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, item := range s.d.found {
		if item.ReferenceNumber == ref {
			cp := *item
			return &cp, nil
		}
	}
	return nil, repository.ErrFoundItemNotFound
}

func (s *memoryFoundStore) ListByStatus(_ context.Context, statuses []string, _ models.Page) ([]models.FoundItem, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if s.d.failList {
		return nil, errors.New("connection refused")
	}
	items := []models.FoundItem{}
	for _, item := range s.d.found {
		if len(statuses) == 0 || slices.Contains(statuses, item.Status) {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *memoryClaimStore) CreateIfAbsent(_ context.Context, claim *models.Claim) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if s.d.failFound != "" && claim.FoundReference == s.d.failFound {
		return false, errors.New("disk full")
	}
	for _, existing := range s.d.claims {
		if existing.LostReference == claim.LostReference && existing.FoundReference == claim.FoundReference {
			return false, nil
		}
	}
	claim.ID = uuid.New()
	claim.SubmittedAt = time.Now().UTC()
	claim.UpdatedAt = claim.SubmittedAt
	cp := *claim
	s.d.claims = append(s.d.claims, &cp)
	return true, nil
}

func (s *memoryClaimStore) GetByID(_ context.Context, id uuid.UUID) (*models.Claim, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, claim := range s.d.claims {
		if claim.ID == id {
			cp := *claim
			return &cp, nil
		}
	}
	return nil, repository.ErrClaimNotFound
}

func (s *memoryClaimStore) List(_ context.Context, statuses []string, _ models.Page) ([]models.Claim, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	claims := []models.Claim{}
	for _, claim := range s.d.claims {
		if len(statuses) == 0 || slices.Contains(statuses, claim.Status) {
			claims = append(claims, *claim)
		}
	}
	return claims, nil
}

func (s *memoryClaimStore) ListByReference(_ context.Context, ref string) ([]models.Claim, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	claims := []models.Claim{}
	for _, claim := range s.d.claims {
		if claim.LostReference == ref || claim.FoundReference == ref {
			claims = append(claims, *claim)
		}
	}
	return claims, nil
}

func (s *memoryClaimStore) Transition(_ context.Context, t repository.ClaimTransition) (*models.Claim, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, claim := range s.d.claims {
		if claim.ID != t.ID {
			continue
		}
		if claim.Status != t.From {
			return nil, common.ErrStaleState
		}
		var lost *models.LostItem
		var found *models.FoundItem
		if t.CascadeReports {
			lost = s.d.lostByRef(claim.LostReference)
			found = s.d.foundByRef(claim.FoundReference)
			if lost == nil || lost.Status == models.LostStatusClaimed ||
				found == nil || found.Status != models.FoundStatusStored {
				return nil, repository.ErrReportClaimed
			}
		}
		now := time.Now().UTC()
		claim.Status = t.To
		claim.UpdatedAt = now
		if t.Resolution {
			claim.ResolvedBy = t.Actor
			claim.ResolvedAt = &now
		} else {
			claim.RequestedBy = t.Actor
		}
		if t.CascadeReports {
			lost.Status = models.LostStatusClaimed
			found.Status = models.FoundStatusClaimed
		}
		cp := *claim
		return &cp, nil
	}
	return nil, repository.ErrClaimNotFound
}

func (d *memoryDesk) lostByRef(ref string) *models.LostItem {
	for _, item := range d.lost {
		if item.ReferenceNumber == ref {
			return item
		}
	}
	return nil
}

func (d *memoryDesk) foundByRef(ref string) *models.FoundItem {
	for _, item := range d.found {
		if item.ReferenceNumber == ref {
			return item
		}
	}
	return nil
}

// setFoundStatus меняет статус находки в обход сервисов.
func (d *memoryDesk) setFoundStatus(ref, status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if item := d.foundByRef(ref); item != nil {
		item.Status = status
	}
}

func (d *memoryDesk) lostStatus(ref string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range d.lost {
		if item.ReferenceNumber == ref {
			return item.Status
		}
	}
	return ""
}

func (d *memoryDesk) foundStatus(ref string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range d.found {
		if item.ReferenceNumber == ref {
			return item.Status
		}
	}
	return ""
}

func (d *memoryDesk) claimCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.claims)
}

// recordingNotifier запоминает уведомления.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification *models.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *notification)
	return nil
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	titles := make([]string, 0, len(n.sent))
	for _, s := range n.sent {
		titles = append(titles, s.Title)
	}
	return titles
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func walletLost() *models.LostItem {
	return &models.LostItem{
		Description: "Black leather wallet with ID cards",
		Type:        "Wallet",
		Color:       strPtr("Black"),
		Route:       "R12",
		Station:     "Central",
		ContactInfo: "rider@example.com",
		OwnerID:     strPtr("passenger-1"),
		Status:      models.LostStatusPending,
	}
}

func walletFound() *models.FoundItem {
	return &models.FoundItem{
		Description:     "Black leather wallet",
		Type:            "Wallet",
		Color:           strPtr("black"),
		VehicleNumber:   "r12",
		StorageLocation: "Depot A",
		Status:          models.FoundStatusStored,
	}
}
