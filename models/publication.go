package models

import "time"

// PublicationKind distinguishes the two publication columns of the source.
type PublicationKind string

const (
	KindArticle    PublicationKind = "article"
	KindConference PublicationKind = "conference"
)

// Publication represents one deduplicated publication. The pair (kind, title)
// is the dedup key: repeated mentions across rows merge into one record whose
// author list gains each distinct faculty once.
type Publication struct {
	ID        EntityID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Title string          `json:"title" gorm:"type:text;not null"`
	Kind  PublicationKind `json:"kind" gorm:"index;not null"`
	// Pre-lowercased keyword set backing the substring search.
	Keywords  []string `json:"keywords" gorm:"type:jsonb;serializer:json"`
	AuthorIDs RefList  `json:"author_ids" gorm:"type:jsonb;serializer:json"`

	// Provenance: which source column and data row first produced this record.
	SourceColumn   string `json:"source_column"`
	SourceRowIndex int    `json:"source_row_index"`
}

// TableName sets the explicit table name for GORM.
func (Publication) TableName() string {
	return "publications"
}
