package models

import "time"

const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusResolved = "Resolved"
)

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReviewed || s == StatusResolved
}

// Report is a citizen-submitted complaint. ReportCode is the public,
// human-shareable identifier; ID is only used internally.
type Report struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportCode     string     `gorm:"uniqueIndex;size:50;not null" json:"report_code"`
	CorruptionType string     `gorm:"size:100;not null" json:"corruption_type"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Location       string     `gorm:"size:255" json:"location,omitempty"`
	Status         string     `gorm:"size:30;not null;default:'Pending'" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Evidence       []Evidence `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"evidence"`
}

// CanEdit reports whether the submitter may still change the report.
// Only Pending reports are citizen-editable.
func (r *Report) CanEdit() bool {
	return r.Status == StatusPending
}
