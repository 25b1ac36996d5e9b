package models

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ProfileRequest struct {
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Phone     string `json:"phone" validate:"max=20"`
	Headline  string `json:"headline" validate:"max=255"`
	Summary   string `json:"summary"`
}

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
}

// UploadResult is what the pipeline hands back to the handler after a
// successful upload: the persisted score/feedback plus file metadata.
type UploadResult struct {
	Score    int          `json:"score"`
	Feedback string       `json:"feedback"`
	File     UploadedFile `json:"file"`
}

// AdminResumeRow is one entry of the portal-wide resume listing, joined
// with the uploader's account and profile.
type AdminResumeRow struct {
	ResumeID     uint      `json:"resume_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	UploadDate   time.Time `json:"upload_date"`
	Score        *int      `json:"score"`
	Feedback     string    `json:"feedback"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
}
