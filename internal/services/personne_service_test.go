package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shidoukh/shidoukh/internal/cache"
	"github.com/shidoukh/shidoukh/internal/models"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestPersonneCRUD(t *testing.T) {
	db := openTestDB(t)
	svc := NewPersonneService(db, cache.NewMemoryStore(), time.Minute)
	ctx := context.Background()

	created, err := svc.Create(ctx, PersonneInput{
		Name:             "Sarah Cohen",
		Age:              28,
		ReligiousLevel:   models.ReligiousLevelPratiquant,
		CenterOfInterest: []string{"Lecture", "Cuisine"},
		Phone:            strPtr("0612345678"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Sarah Cohen", got.Name)
	require.Equal(t, []string{"Lecture", "Cuisine"}, []string(got.CenterOfInterest))

	updated, err := svc.Update(ctx, created.ID, PersonneInput{
		Name:           "Sarah Lévy",
		Age:            29,
		ReligiousLevel: models.ReligiousLevelTresPratiquant,
	})
	require.NoError(t, err)
	require.Equal(t, "Sarah Lévy", updated.Name)
	require.Equal(t, 29, updated.Age)
	require.Nil(t, updated.Phone)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPersonneValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewPersonneService(db, nil, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, PersonneInput{Name: "  ", Age: 30, ReligiousLevel: 2})
	require.ErrorIs(t, err, ErrRequiredFields)

	_, err = svc.Create(ctx, PersonneInput{Name: "David", Age: 0, ReligiousLevel: 2})
	require.ErrorIs(t, err, ErrRequiredFields)

	_, err = svc.Create(ctx, PersonneInput{Name: "David", Age: 30})
	require.ErrorIs(t, err, ErrRequiredFields)

	_, err = svc.Update(ctx, "missing-id", PersonneInput{Name: "David", Age: 30, ReligiousLevel: 2})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "missing-id"), apperrors.ErrNotFound)

	// A missing practice level blocks updates too, and nothing is written.
	existing, err := svc.Create(ctx, PersonneInput{Name: "Dov", Age: 40, ReligiousLevel: 1})
	require.NoError(t, err)

	_, err = svc.Update(ctx, existing.ID, PersonneInput{Name: "Dov", Age: 41})
	require.ErrorIs(t, err, ErrRequiredFields)

	reloaded, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	require.Equal(t, 40, reloaded.Age)
	require.Equal(t, 1, reloaded.ReligiousLevel)
}

func TestPersonneListOrderAndCaching(t *testing.T) {
	db := openTestDB(t)
	store := cache.NewMemoryStore()
	svc := NewPersonneService(db, store, time.Minute)
	ctx := context.Background()

	older := models.Personne{Name: "Ancien", Age: 40, ReligiousLevel: 1, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Personne{Name: "Récent", Age: 25, ReligiousLevel: 2, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	list := svc.List(ctx)
	require.Len(t, list, 2)
	require.Equal(t, "Récent", list[0].Name)
	require.Equal(t, "Ancien", list[1].Name)

	// Second read is served from the cache: a row inserted behind the
	// service's back is not visible until an invalidating mutation.
	sneaky := models.Personne{Name: "Invisible", Age: 33, ReligiousLevel: 3}
	require.NoError(t, db.Create(&sneaky).Error)
	require.Len(t, svc.List(ctx), 2)

	_, err := svc.Create(ctx, PersonneInput{Name: "Déclencheur", Age: 22, ReligiousLevel: 1})
	require.NoError(t, err)
	require.Len(t, svc.List(ctx), 4)
}

func TestPersonneListSwallowsErrors(t *testing.T) {
	db := openTestDB(t)
	svc := NewPersonneService(db, nil, 0)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	list := svc.List(context.Background())
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestPersonneMutationsInvalidateMeetingsView(t *testing.T) {
	db := openTestDB(t)
	store := cache.NewMemoryStore()
	personnes := NewPersonneService(db, store, time.Minute)
	meetings := NewMeetingService(db, store, time.Minute)
	ctx := context.Background()

	p1, err := personnes.Create(ctx, PersonneInput{Name: "Avi", Age: 30, ReligiousLevel: 2})
	require.NoError(t, err)
	p2, err := personnes.Create(ctx, PersonneInput{Name: "Myriam", Age: 27, ReligiousLevel: 2})
	require.NoError(t, err)

	_, err = meetings.Create(ctx, MeetingInput{Personne1: p1.ID, Personne2: p2.ID, Date: time.Now()})
	require.NoError(t, err)

	list := meetings.List(ctx)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Personne1Name)
	require.Equal(t, "Avi", *list[0].Personne1Name)

	// Renaming a participant refreshes the denormalised name in the view.
	_, err = personnes.Update(ctx, p1.ID, PersonneInput{Name: "Avraham", Age: 30, ReligiousLevel: 2})
	require.NoError(t, err)

	list = meetings.List(ctx)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Personne1Name)
	require.Equal(t, "Avraham", *list[0].Personne1Name)
}
