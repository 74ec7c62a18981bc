package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/cache"
	"github.com/shidoukh/shidoukh/internal/models"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
	"github.com/shidoukh/shidoukh/pkg/logger"
)

// PersonneService manages profiles and keeps the cached list views coherent.
type PersonneService struct {
	db    *gorm.DB
	views viewCache
}

// NewPersonneService builds a PersonneService. store may be nil, in which
// case list reads always hit the database.
func NewPersonneService(db *gorm.DB, store cache.Store, viewTTL time.Duration) *PersonneService {
	return &PersonneService{
		db:    db,
		views: newViewCache(store, viewTTL),
	}
}

// PersonneInput carries the create/update form fields.
type PersonneInput struct {
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	ReligiousLevel   int      `json:"religious_level"`
	CenterOfInterest []string `json:"center_of_interest"`
	Phone            *string  `json:"phone"`
}

// List returns all personnes, newest first. Errors are swallowed: the
// dashboard renders an empty table rather than an error page.
func (s *PersonneService) List(ctx context.Context) []models.Personne {
	var personnes []models.Personne
	if s.views.lookup(ctx, viewPersonnes, &personnes) {
		return personnes
	}

	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&personnes).Error
	if err != nil {
		logger.Error("listing personnes failed", zap.Error(err))
		return []models.Personne{}
	}
	if personnes == nil {
		personnes = []models.Personne{}
	}

	s.views.fill(ctx, viewPersonnes, personnes)
	return personnes
}

// Get fetches a single personne by id.
func (s *PersonneService) Get(ctx context.Context, id string) (*models.Personne, error) {
	var personne models.Personne
	err := s.db.WithContext(ctx).First(&personne, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, ErrGeneric.WithInternal(err)
	}
	return &personne, nil
}

// Create inserts a new personne and invalidates both list views.
func (s *PersonneService) Create(ctx context.Context, input PersonneInput) (*models.Personne, error) {
	if strings.TrimSpace(input.Name) == "" || input.Age <= 0 || input.ReligiousLevel <= 0 {
		return nil, ErrRequiredFields
	}

	personne := models.Personne{
		Name:             strings.TrimSpace(input.Name),
		Age:              input.Age,
		ReligiousLevel:   input.ReligiousLevel,
		CenterOfInterest: datatypes.NewJSONSlice(input.CenterOfInterest),
		Phone:            input.Phone,
	}

	if err := s.db.WithContext(ctx).Create(&personne).Error; err != nil {
		return nil, ErrPersonneCreate.WithInternal(err)
	}

	s.views.invalidate(ctx, viewPersonnes, viewMeetings)
	return &personne, nil
}

// Update modifies an existing personne and invalidates both list views.
func (s *PersonneService) Update(ctx context.Context, id string, input PersonneInput) (*models.Personne, error) {
	if strings.TrimSpace(input.Name) == "" || input.Age <= 0 || input.ReligiousLevel <= 0 {
		return nil, ErrRequiredFields
	}

	var personne models.Personne
	err := s.db.WithContext(ctx).First(&personne, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, ErrPersonneUpdate.WithInternal(err)
	}

	personne.Name = strings.TrimSpace(input.Name)
	personne.Age = input.Age
	personne.ReligiousLevel = input.ReligiousLevel
	personne.CenterOfInterest = datatypes.NewJSONSlice(input.CenterOfInterest)
	personne.Phone = input.Phone

	if err := s.db.WithContext(ctx).Save(&personne).Error; err != nil {
		return nil, ErrPersonneUpdate.WithInternal(err)
	}

	s.views.invalidate(ctx, viewPersonnes, viewMeetings)
	return &personne, nil
}

// Delete removes a personne. Meetings referencing it are removed by the
// cascade constraint, so both views are invalidated.
func (s *PersonneService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Personne{}, "id = ?", id)
	if result.Error != nil {
		return ErrPersonneDelete.WithInternal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.views.invalidate(ctx, viewPersonnes, viewMeetings)
	return nil
}
