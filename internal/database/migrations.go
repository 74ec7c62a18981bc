package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Personne{},
		&models.Meeting{},
	)
}

// DropAll removes the schema, meetings first so foreign keys never block.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.Meeting{},
		&models.Personne{},
		&models.User{},
	)
}

// SeedData inserts sample personnes when the table is empty.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Personne{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	personnes := []models.Personne{
		{Name: "Sarah Cohen", Age: 28, ReligiousLevel: models.ReligiousLevelPratiquant,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"lecture", "cuisine", "yoga", "voyages"})},
		{Name: "David Levy", Age: 32, ReligiousLevel: models.ReligiousLevelTraditionalist,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"sport", "musique", "technologie"})},
		{Name: "Rachel Klein", Age: 26, ReligiousLevel: models.ReligiousLevelTresPratiquant,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"art", "photographie", "randonnée"})},
		{Name: "Michael Rosen", Age: 30, ReligiousLevel: models.ReligiousLevelHiloni,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"cinéma", "littérature", "histoire"})},
		{Name: "Esther Gold", Age: 29, ReligiousLevel: models.ReligiousLevelHaredi,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"étude", "famille", "communauté", "bénévolat"})},
		{Name: "Jonathan Miller", Age: 35, ReligiousLevel: models.ReligiousLevelPratiquant,
			CenterOfInterest: datatypes.NewJSONSlice([]string{"business", "finance", "tennis"})},
	}

	return db.Create(&personnes).Error
}
