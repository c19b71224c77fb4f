package domain

import "time"

// Offer is a time-boxed promotion shown to members while active.
type Offer struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage *int      `json:"discount_percentage"`
	ValidFrom          time.Time `json:"valid_from"`
	ValidUntil         time.Time `json:"valid_until"`
	IsActive           bool      `json:"is_active"`
	AdminName          string    `json:"admin_name,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OfferInput struct {
	Title              string
	Description        string
	DiscountPercentage *int
	ValidFrom          time.Time
	ValidUntil         time.Time
	IsActive           bool
}

type TrainingProgram struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TrainerName   string    `json:"trainer_name"`
	DurationWeeks *int      `json:"duration_weeks"`
	Price         *float64  `json:"price"`
	IsActive      bool      `json:"is_active"`
	AdminName     string    `json:"admin_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TrainingProgramInput struct {
	Title         string
	Description   string
	TrainerName   string
	DurationWeeks *int
	Price         *float64
	IsActive      bool
}

const DefaultRecordType = "note"

// MemberRecord is an admin-authored note or billing entry attached to one
// member.
type MemberRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      *float64  `json:"amount"`
	RecordType  string    `json:"record_type"`
	AdminName   string    `json:"admin_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberRecordInput struct {
	Title       string
	Description string
	Amount      *float64
	RecordType  string
}
