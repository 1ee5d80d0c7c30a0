package models

import "time"

// Evidence is one uploaded file attached to a report. Filename is the
// collision-safe name on disk; OriginalFilename is what the uploader sent.
type Evidence struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename         string    `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FileType         string    `gorm:"size:50" json:"file_type"`
	FileSize         int64     `json:"file_size"`
	UploadedAt       time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	ReportID         uint      `gorm:"not null;index" json:"report_id"`
}
