package models

import "time"

// Faculty represents one staff member, created from exactly one source row.
// Records are never merged, even when two rows carry the same name.
type Faculty struct {
	ID        EntityID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name             string  `json:"name" gorm:"not null;index"`
	Position         *string `json:"position,omitempty"`
	ResearchInterest *string `json:"research_interest,omitempty" gorm:"type:text"`
	// The unparsed affiliation cell, kept for audit.
	RawAffiliation string `json:"raw_affiliation" gorm:"type:text"`

	DepartmentIDs      RefList `json:"department_ids" gorm:"type:jsonb;serializer:json"`
	ArticleIDs         RefList `json:"article_ids" gorm:"type:jsonb;serializer:json"`
	ConferencePaperIDs RefList `json:"conference_paper_ids" gorm:"type:jsonb;serializer:json"`
}

// TableName sets the explicit table name for GORM.
func (Faculty) TableName() string {
	return "faculties"
}
