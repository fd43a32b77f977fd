package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/transitdesk/lostfound-backend/internal/logger"
	"github.com/transitdesk/lostfound-backend/internal/models"
	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
	"github.com/transitdesk/lostfound-backend/internal/repository"
	"github.com/transitdesk/lostfound-backend/internal/validation"
)

// LostReportInput поля заявления о потере, пришедшие от клиента.
type LostReportInput struct {
	Description       string
	Type              string
	Color             *string
	Brand             *string
	UniqueIdentifiers *string
	Date              *string
	Time              *string
	Route             string
	Station           string
	ContactInfo       string
	Image             *string
}

// FoundReportInput поля записи о находке.
type FoundReportInput struct {
	Description     string
	Type            string
	Color           *string
	VehicleNumber   string
	StorageLocation string
	DateFound       *string
	TimeFound       *string
	Image           *string
}

// LostSubmission результат подачи заявления о потере.
type LostSubmission struct {
	Report  *models.LostItem
	Matches []models.Claim
}

// FoundSubmission результат подачи записи о находке.
type FoundSubmission struct {
	Report  *models.FoundItem
	Matches []models.Claim
}

// ReportService принимает заявления и запускает сопоставление.
type ReportService struct {
	lost   LostItemStore
	found  FoundItemStore
	engine *ClaimEngine
}

// NewReportService создаёт сервис заявлений.
func NewReportService(lost LostItemStore, found FoundItemStore, engine *ClaimEngine) *ReportService {
	return &ReportService{lost: lost, found: found, engine: engine}
}

// SubmitLostReport валидирует и сохраняет заявление, затем ищет совпадения.
func (s *ReportService) SubmitLostReport(ctx context.Context, identity models.Identity, in LostReportInput) (*LostSubmission, error) {
	item := &models.LostItem{
		Description:       in.Description,
		Type:              in.Type,
		Color:             nonEmpty(in.Color),
		Brand:             nonEmpty(in.Brand),
		UniqueIdentifiers: nonEmpty(in.UniqueIdentifiers),
		Date:              nonEmpty(in.Date),
		Time:              nonEmpty(in.Time),
		Route:             in.Route,
		Station:           in.Station,
		ContactInfo:       in.ContactInfo,
		Image:             nonEmpty(in.Image),
		OwnerID:           identity.UserRef(),
		Status:            models.LostStatusPending,
	}
	if err := validation.ValidateLostItem(item); err != nil {
		return nil, err
	}

	if err := s.lost.Create(ctx, item); err != nil {
		return nil, apperror.Persistence(err, "failed to save lost item report")
	}

	matches, err := s.engine.OnLostReportCreated(ctx, item)
	if err != nil {
		// Заявление уже сохранено; совпадения найдутся при следующей находке или повторном сканировании.
		logger.Log.WithError(err).WithField("lost_ref", item.ReferenceNumber).Error("report service: matching failed")
		matches = []models.Claim{}
	}

	logger.Log.WithFields(logrus.Fields{
		"lost_ref": item.ReferenceNumber,
		"matches":  len(matches),
	}).Info("report service: lost item reported")

	return &LostSubmission{Report: item, Matches: matches}, nil
}

// SubmitFoundReport валидирует и сохраняет находку, затем ищет совпадения.
func (s *ReportService) SubmitFoundReport(ctx context.Context, identity models.Identity, in FoundReportInput) (*FoundSubmission, error) {
	item := &models.FoundItem{
		Description:     in.Description,
		Type:            in.Type,
		Color:           nonEmpty(in.Color),
		VehicleNumber:   in.VehicleNumber,
		StorageLocation: in.StorageLocation,
		DateFound:       nonEmpty(in.DateFound),
		TimeFound:       nonEmpty(in.TimeFound),
		Image:           nonEmpty(in.Image),
		ReporterID:      identity.UserRef(),
		Status:          models.FoundStatusStored,
	}
	if err := validation.ValidateFoundItem(item); err != nil {
		return nil, err
	}

	if err := s.found.Create(ctx, item); err != nil {
		return nil, apperror.Persistence(err, "failed to save found item report")
	}

	matches, err := s.engine.OnFoundReportCreated(ctx, item)
	if err != nil {
		logger.Log.WithError(err).WithField("found_ref", item.ReferenceNumber).Error("report service: matching failed")
		matches = []models.Claim{}
	}

	logger.Log.WithFields(logrus.Fields{
		"found_ref": item.ReferenceNumber,
		"matches":   len(matches),
	}).Info("report service: found item reported")

	return &FoundSubmission{Report: item, Matches: matches}, nil
}

// ListLostReports возвращает заявления о потере с фильтром по статусу.
func (s *ReportService) ListLostReports(ctx context.Context, statuses []string, page models.Page) ([]models.LostItem, error) {
	if err := checkStatuses(statuses, models.ValidLostStatuses); err != nil {
		return nil, err
	}
	items, err := s.lost.ListByStatus(ctx, statuses, page)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to list lost items")
	}
	return items, nil
}

// ListFoundReports возвращает находки с фильтром по статусу.
func (s *ReportService) ListFoundReports(ctx context.Context, statuses []string, page models.Page) ([]models.FoundItem, error) {
	if err := checkStatuses(statuses, models.ValidFoundStatuses); err != nil {
		return nil, err
	}
	items, err := s.found.ListByStatus(ctx, statuses, page)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to list found items")
	}
	return items, nil
}

// GetLostReport возвращает заявление по номеру.
func (s *ReportService) GetLostReport(ctx context.Context, ref string) (*models.LostItem, error) {
	item, err := s.lost.GetByReference(ctx, ref)
	if errors.Is(err, repository.ErrLostItemNotFound) {
		return nil, apperror.ErrLostItemNotFound
	}
	if err != nil {
		return nil, apperror.Persistence(err, "failed to load lost item")
	}
	return item, nil
}

// GetFoundReport возвращает находку по номеру.
func (s *ReportService) GetFoundReport(ctx context.Context, ref string) (*models.FoundItem, error) {
	item, err := s.found.GetByReference(ctx, ref)
	if errors.Is(err, repository.ErrFoundItemNotFound) {
		return nil, apperror.ErrFoundItemNotFound
	}
	if err != nil {
		return nil, apperror.Persistence(err, "failed to load found item")
	}
	return item, nil
}

func checkStatuses(statuses []string, valid map[string]struct{}) error {
	for _, status := range statuses {
		if _, ok := valid[status]; !ok {
			return apperror.Validation("status", fmt.Sprintf("unknown status %q", status))
		}
	}
	return nil
}

// nonEmpty превращает пустую строку в отсутствующее значение.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
