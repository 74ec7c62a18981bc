package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Religious practice levels, from secular to strictly observant.
const (
	ReligiousLevelHiloni         = 1
	ReligiousLevelTraditionalist = 2
	ReligiousLevelPratiquant     = 3
	ReligiousLevelTresPratiquant = 4
	ReligiousLevelHaredi         = 5
)

// ReligiousLevelLabels maps levels to their display names.
var ReligiousLevelLabels = map[int]string{
	ReligiousLevelHiloni:         "Hiloni",
	ReligiousLevelTraditionalist: "Traditionaliste",
	ReligiousLevelPratiquant:     "Pratiquant",
	ReligiousLevelTresPratiquant: "Très pratiquant",
	ReligiousLevelHaredi:         "Haredi",
}

// Personne is a profile managed through the dashboard.
type Personne struct {
	ID               string                      `gorm:"primaryKey;type:uuid" json:"id"`
	Name             string                      `gorm:"not null" json:"name"`
	Age              int                         `gorm:"not null" json:"age"`
	ReligiousLevel   int                         `gorm:"column:religious_level;not null" json:"religious_level"`
	CenterOfInterest datatypes.JSONSlice[string] `gorm:"column:center_of_interest" json:"center_of_interest"`
	Phone            *string                     `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (p *Personne) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
