package models

import "time"

// Resume holds the single resume a user may have on file. The unique index
// on UserID is what the storage-layer upsert conflicts against; there is
// never more than one row per user.
type Resume struct {
	ID           uint      `gorm:"primaryKey" json:"resume_id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	FilePath     string    `gorm:"size:512;not null" json:"file_path"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	MimeType     string    `gorm:"size:100;not null" json:"mime_type"`
	UploadDate   time.Time `gorm:"not null" json:"upload_date"`
	Score        *int      `json:"score"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
}

func (Resume) TableName() string {
	return "resumes"
}
