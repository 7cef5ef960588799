package dto

import (
	"github.com/google/uuid"
	"github.com/talentscout/screening/internal/model"
	"github.com/talentscout/screening/internal/wizard"
)

// ScreeningSessionDTO is the per-turn view of a session: what the form
// surface needs to render the next input.
type ScreeningSessionDTO struct {
	ID               uuid.UUID               `json:"id"`
	State            string                  `json:"state"`
	Progress         float64                 `json:"progress"`
	CurrentField     string                  `json:"current_field,omitempty"`
	Question         *model.Question         `json:"question,omitempty"`
	QuestionNumber   int                     `json:"question_number,omitempty"`
	QuestionCount    int                     `json:"question_count,omitempty"`
	BasicInfo        map[string]string       `json:"basic_info,omitempty"`
	TechnicalAnswers []model.TechnicalAnswer `json:"technical_answers,omitempty"`
	ScorePercent     *int                    `json:"score_percent,omitempty"`
}

func NewScreeningSessionDTO(id uuid.UUID, snap wizard.Snapshot) ScreeningSessionDTO {
	d := ScreeningSessionDTO{
		ID:               id,
		State:            snap.State,
		Progress:         snap.Progress,
		CurrentField:     snap.CurrentField,
		Question:         snap.CurrentQuestion,
		QuestionNumber:   snap.QuestionNumber,
		QuestionCount:    snap.QuestionCount,
		BasicInfo:        snap.Profile,
		TechnicalAnswers: snap.Answers,
	}
	if snap.Profile != nil {
		score := snap.ScorePercent
		d.ScorePercent = &score
	}
	return d
}
