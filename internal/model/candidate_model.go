package model

import (
	"time"

	"github.com/google/uuid"
)

// Screening form field names, in the order the wizard asks them.
const (
	FieldFullName   = "Full Name"
	FieldEmail      = "Email"
	FieldPhone      = "Phone Number"
	FieldExperience = "Years of Experience"
	FieldPosition   = "Desired Position(s)"
	FieldLocation   = "Current Location"
	FieldTechStack  = "Tech Stack"
)

var ProfileFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldExperience,
	FieldPosition,
	FieldLocation,
	FieldTechStack,
}

// Question is one generated interview question for a single technology.
type Question struct {
	Tech     string `json:"tech"`
	Question string `json:"question"`
}

// TechnicalAnswer is an applicant's answer to one question, with the AI
// feedback recorded at answer time. Never mutated after creation.
type TechnicalAnswer struct {
	Tech     string `json:"tech"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback,omitempty"`
}

// Candidate is the stored screening record. Written exactly once per
// successful submission; never updated or deleted afterwards. Email and
// Phone are dedicated columns so the duplicate check can query them.
type Candidate struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string            `gorm:"type:varchar(255);index" json:"-"`
	Phone            string            `gorm:"type:varchar(32);index" json:"-"`
	BasicInfo        map[string]string `gorm:"serializer:json;type:jsonb" json:"basic_info"`
	TechnicalAnswers []TechnicalAnswer `gorm:"serializer:json;type:jsonb" json:"technical_answers"`
	ScorePercent     int               `json:"score_percent"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
