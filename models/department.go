package models

import "time"

// Structural department types, detected from the department name.
const (
	DepartmentTypeSchool  = "school"
	DepartmentTypeCentre  = "centre"
	DepartmentTypeGroup   = "group"
	DepartmentTypeCollege = "college"
	DepartmentTypeOther   = "other"
)

// Department represents an organisational unit a faculty member belongs to.
// Departments are created once per import run and never updated within it.
type Department struct {
	ID        EntityID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name string `json:"name" gorm:"not null"`
	// URL-safe key derived from the name; unique within a run and stable
	// across runs for identical names.
	Slug              string  `json:"slug" gorm:"uniqueIndex;not null"`
	Type              string  `json:"type" gorm:"index;default:'other'"`
	Description       *string `json:"description,omitempty" gorm:"type:text"`
	DisciplineRelated bool    `json:"discipline_related"`
}

// TableName sets the explicit table name for GORM.
func (Department) TableName() string {
	return "departments"
}
