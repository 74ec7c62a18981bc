package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/cache"
	"github.com/shidoukh/shidoukh/internal/models"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
	"github.com/shidoukh/shidoukh/pkg/logger"
)

// MeetingService manages arranged encounters between personnes.
type MeetingService struct {
	db    *gorm.DB
	views viewCache
}

// NewMeetingService builds a MeetingService. store may be nil.
func NewMeetingService(db *gorm.DB, store cache.Store, viewTTL time.Duration) *MeetingService {
	return &MeetingService{
		db:    db,
		views: newViewCache(store, viewTTL),
	}
}

// MeetingInput carries the create/update form fields.
type MeetingInput struct {
	Personne1 string    `json:"personne_1"`
	Personne2 string    `json:"personne_2"`
	Date      time.Time `json:"date"`
}

// List returns all meetings with participant names joined in, most recent
// date first. Errors are swallowed into an empty slice, like the personnes
// view.
func (s *MeetingService) List(ctx context.Context) []models.MeetingWithNames {
	var meetings []models.MeetingWithNames
	if s.views.lookup(ctx, viewMeetings, &meetings) {
		return meetings
	}

	err := s.db.WithContext(ctx).
		Table("meetings").
		Select("meetings.id, meetings.personne_1, meetings.personne_2, meetings.date, meetings.created_at, p1.name AS personne_1_name, p2.name AS personne_2_name").
		Joins("LEFT JOIN personnes p1 ON p1.id = meetings.personne_1").
		Joins("LEFT JOIN personnes p2 ON p2.id = meetings.personne_2").
		Order("meetings.date DESC").
		Scan(&meetings).Error
	if err != nil {
		logger.Error("listing meetings failed", zap.Error(err))
		return []models.MeetingWithNames{}
	}
	if meetings == nil {
		meetings = []models.MeetingWithNames{}
	}

	s.views.fill(ctx, viewMeetings, meetings)
	return meetings
}

// Get fetches a single meeting by id.
func (s *MeetingService) Get(ctx context.Context, id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.db.WithContext(ctx).First(&meeting, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, ErrGeneric.WithInternal(err)
	}
	return &meeting, nil
}

// Create inserts a meeting after checking the participants differ. The
// distinct-participants rule is validated here and backed by the CHECK
// constraint, so no same-person row can appear even under races.
func (s *MeetingService) Create(ctx context.Context, input MeetingInput) (*models.Meeting, error) {
	if input.Personne1 == "" || input.Personne2 == "" || input.Date.IsZero() {
		return nil, ErrRequiredFields
	}
	if input.Personne1 == input.Personne2 {
		return nil, ErrDifferentPersons
	}

	meeting := models.Meeting{
		Personne1: input.Personne1,
		Personne2: input.Personne2,
		Date:      input.Date,
	}

	if err := s.db.WithContext(ctx).Create(&meeting).Error; err != nil {
		return nil, ErrMeetingCreate.WithInternal(err)
	}

	s.views.invalidate(ctx, viewMeetings)
	return &meeting, nil
}

// Update modifies an existing meeting, re-applying the distinct-participants
// check against the updated pair.
func (s *MeetingService) Update(ctx context.Context, id uint, input MeetingInput) (*models.Meeting, error) {
	if input.Personne1 == "" || input.Personne2 == "" || input.Date.IsZero() {
		return nil, ErrRequiredFields
	}
	if input.Personne1 == input.Personne2 {
		return nil, ErrDifferentPersons
	}

	var meeting models.Meeting
	err := s.db.WithContext(ctx).First(&meeting, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, ErrMeetingUpdate.WithInternal(err)
	}

	meeting.Personne1 = input.Personne1
	meeting.Personne2 = input.Personne2
	meeting.Date = input.Date

	if err := s.db.WithContext(ctx).Save(&meeting).Error; err != nil {
		return nil, ErrMeetingUpdate.WithInternal(err)
	}

	s.views.invalidate(ctx, viewMeetings)
	return &meeting, nil
}

// Delete removes a meeting.
func (s *MeetingService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return ErrMeetingDelete.WithInternal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.views.invalidate(ctx, viewMeetings)
	return nil
}
