package models

import "time"

// Meeting records an arranged encounter between two different personnes.
// Referential integrity is enforced at the store level: deleting either
// participant cascades to the meeting, and a CHECK constraint rejects a
// meeting whose two participants are the same row.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Personne1 string    `gorm:"column:personne_1;type:uuid;not null;index" json:"personne_1"`
	Personne2 string    `gorm:"column:personne_2;type:uuid;not null;index;check:chk_meetings_different,personne_1 <> personne_2" json:"personne_2"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`

	First  *Personne `gorm:"foreignKey:Personne1;constraint:OnDelete:CASCADE" json:"-"`
	Second *Personne `gorm:"foreignKey:Personne2;constraint:OnDelete:CASCADE" json:"-"`
}

// MeetingWithNames is the list-view projection joining participant names.
// Names are nullable in the projection for symmetry with the LEFT JOIN,
// though cascade deletes mean a missing participant never persists.
type MeetingWithNames struct {
	ID            uint      `json:"id"`
	Personne1     string    `gorm:"column:personne_1" json:"personne_1"`
	Personne2     string    `gorm:"column:personne_2" json:"personne_2"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	Personne1Name *string   `gorm:"column:personne_1_name" json:"personne_1_name"`
	Personne2Name *string   `gorm:"column:personne_2_name" json:"personne_2_name"`
}
