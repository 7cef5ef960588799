// Package wizard implements the screening session: an explicit, caller-owned
// state machine that walks one applicant from profile collection through
// question generation, the answer loop, and final submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talentscout/screening/internal/model"
	"github.com/talentscout/screening/internal/prompts"
	"github.com/talentscout/screening/internal/repository"
	"github.com/talentscout/screening/internal/scoring"
	"github.com/talentscout/screening/internal/service"
	"github.com/talentscout/screening/internal/validation"
)

type State int

const (
	StateCollecting State = iota
	StateGenerating
	StateAsking
	StateSummary
	StateDone
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateGenerating:
		return "generating"
	case StateAsking:
		return "asking"
	case StateSummary:
		return "summary"
	case StateDone:
		return "done"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var (
	// ErrValidation wraps field and answer rejections; the session stays on
	// the same step and the user re-submits.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate means the email or phone is already screened. During
	// collection it is a hard stop: the session moves to Rejected and no
	// retry with different contact info is possible. At final submission
	// the session stays in Summary instead.
	ErrDuplicate = errors.New("applicant already screened")
	// ErrGeneration covers completion failures and unparseable responses
	// during question generation. The session survives in Generating.
	ErrGeneration = errors.New("question generation failed")
	// ErrFrozen rejects any action after a successful final submission.
	ErrFrozen = errors.New("screening already submitted")
	// ErrBadState rejects an action that does not belong to the current state.
	ErrBadState = errors.New("action not valid in current state")
)

// NoFeedback is recorded when feedback generation fails; it never blocks
// the interview.
const NoFeedback = "No feedback available."

// Session is the live screening aggregate. Transitions are strictly forward;
// no backward moves, no skipping. A Session is not safe for concurrent use;
// the owning registry serializes access.
type Session struct {
	store      repository.CandidateStore
	completion service.CompletionService

	state         State
	fieldIndex    int
	profile       map[string]string
	questions     []model.Question
	answers       []model.TechnicalAnswer
	questionIndex int
}

func NewSession(store repository.CandidateStore, completion service.CompletionService) *Session {
	return &Session{
		store:      store,
		completion: completion,
		profile:    make(map[string]string, len(model.ProfileFields)),
	}
}

func (s *Session) State() State { return s.state }

// CurrentField returns the profile field awaiting input while collecting.
func (s *Session) CurrentField() (string, bool) {
	if s.state != StateCollecting {
		return "", false
	}
	return model.ProfileFields[s.fieldIndex], true
}

// CurrentQuestion returns the question awaiting an answer while asking.
func (s *Session) CurrentQuestion() (model.Question, bool) {
	if s.state != StateAsking || s.questionIndex >= len(s.questions) {
		return model.Question{}, false
	}
	return s.questions[s.questionIndex], true
}

// Progress reports (step+1)/(fieldCount+2), capped at 1.0.
func (s *Session) Progress() float64 {
	var step int
	switch s.state {
	case StateCollecting, StateRejected:
		step = s.fieldIndex
	case StateGenerating:
		step = len(model.ProfileFields)
	case StateAsking:
		step = len(model.ProfileFields) + 1
	default:
		step = len(model.ProfileFields) + 2
	}

	progress := float64(step+1) / float64(len(model.ProfileFields)+2)
	if progress > 1 {
		return 1
	}
	return progress
}

// SubmitField validates and stores one profile field, then advances. After
// the Email and Phone Number fields the store is queried for an existing
// applicant; a match is a hard stop for this session.
func (s *Session) SubmitField(ctx context.Context, value string) error {
	if s.state == StateDone {
		return ErrFrozen
	}
	if s.state == StateRejected {
		return ErrDuplicate
	}
	if s.state != StateCollecting {
		return ErrBadState
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: please enter a value", ErrValidation)
	}

	field := model.ProfileFields[s.fieldIndex]
	switch field {
	case model.FieldFullName:
		if !validation.IsValidName(value) {
			return fmt.Errorf("%w: please enter a valid full name (letters and spaces, 2-50 characters)", ErrValidation)
		}
	case model.FieldEmail:
		if !validation.IsValidEmail(value) {
			return fmt.Errorf("%w: please enter a valid email address", ErrValidation)
		}
	case model.FieldPhone:
		if !validation.IsValidPhone(value) {
			return fmt.Errorf("%w: please enter a valid phone number", ErrValidation)
		}
	case model.FieldExperience:
		if !validation.IsValidExperience(value) {
			return fmt.Errorf("%w: please enter years of experience between 0 and 50", ErrValidation)
		}
	}

	// Duplicate check after every identifying field.
	if field == model.FieldEmail || field == model.FieldPhone {
		email := s.profile[model.FieldEmail]
		var phone string
		if field == model.FieldEmail {
			email = value
		} else {
			phone = value
		}
		exists, err := s.store.Exists(ctx, email, phone)
		if err != nil {
			return fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			s.state = StateRejected
			return ErrDuplicate
		}
	}

	s.profile[field] = value
	s.fieldIndex++
	if s.fieldIndex == len(model.ProfileFields) {
		s.state = StateGenerating
	}
	return nil
}

// GenerateQuestions asks the completion service for interview questions based
// on the collected tech stack. On failure the session remains in Generating
// with no questions; the caller may trigger it again.
func (s *Session) GenerateQuestions(ctx context.Context) error {
	if s.state == StateDone {
		return ErrFrozen
	}
	if s.state == StateRejected {
		return ErrDuplicate
	}
	if s.state != StateGenerating {
		return ErrBadState
	}

	techStack := s.profile[model.FieldTechStack]
	if techStack == "" {
		return fmt.Errorf("%w: tech stack not found", ErrGeneration)
	}

	raw, err := s.completion.Complete(ctx, prompts.Questions(techStack))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	questions, err := ParseQuestions(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	s.questions = questions
	s.questionIndex = 0
	s.state = StateAsking
	return nil
}

// SubmitAnswer records one answer to the current question, attaches feedback,
// and advances. After the last question the session moves to Summary.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) error {
	if s.state == StateDone {
		return ErrFrozen
	}
	if s.state == StateRejected {
		return ErrDuplicate
	}
	if s.state != StateAsking {
		return ErrBadState
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("%w: answer is required", ErrValidation)
	}

	q := s.questions[s.questionIndex]
	s.answers = append(s.answers, model.TechnicalAnswer{
		Tech:     q.Tech,
		Question: q.Question,
		Answer:   answer,
		Feedback: s.feedbackFor(ctx, answer, q.Tech),
	})
	s.questionIndex++
	if s.questionIndex == len(s.questions) {
		s.state = StateSummary
	}
	return nil
}

func (s *Session) feedbackFor(ctx context.Context, answer, tech string) string {
	raw, err := s.completion.Complete(ctx, prompts.Feedback(answer, tech))
	if err != nil {
		return NoFeedback
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return NoFeedback
	}
	return text
}

// Submit re-checks for duplicates, assembles the stored record, writes it,
// and freezes the session. On a duplicate the session stays in Summary and
// a later resubmission is possible.
func (s *Session) Submit(ctx context.Context) (*model.Candidate, error) {
	if s.state == StateDone {
		return nil, ErrFrozen
	}
	if s.state == StateRejected {
		return nil, ErrDuplicate
	}
	if s.state != StateSummary {
		return nil, ErrBadState
	}

	email := s.profile[model.FieldEmail]
	phone := s.profile[model.FieldPhone]
	exists, err := s.store.Exists(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	basicInfo := make(map[string]string, len(s.profile))
	for k, v := range s.profile {
		basicInfo[k] = v
	}

	candidate := &model.Candidate{
		ID:               uuid.New(),
		Email:            email,
		Phone:            phone,
		BasicInfo:        basicInfo,
		TechnicalAnswers: append([]model.TechnicalAnswer(nil), s.answers...),
		ScorePercent:     scoring.Score(s.answers),
		CreatedAt:        time.Now(),
	}
	if err := s.store.Insert(ctx, candidate); err != nil {
		return nil, fmt.Errorf("save candidate: %w", err)
	}

	s.state = StateDone
	return candidate, nil
}

// Snapshot is a read-only view of the session for the HTTP surface.
type Snapshot struct {
	State           string
	Progress        float64
	CurrentField    string
	CurrentQuestion *model.Question
	QuestionNumber  int
	QuestionCount   int
	Profile         map[string]string
	Answers         []model.TechnicalAnswer
	ScorePercent    int
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:         s.state.String(),
		Progress:      s.Progress(),
		QuestionCount: len(s.questions),
	}
	if field, ok := s.CurrentField(); ok {
		snap.CurrentField = field
	}
	if q, ok := s.CurrentQuestion(); ok {
		snap.CurrentQuestion = &q
		snap.QuestionNumber = s.questionIndex + 1
	}
	if s.state == StateSummary || s.state == StateDone {
		snap.Profile = make(map[string]string, len(s.profile))
		for k, v := range s.profile {
			snap.Profile[k] = v
		}
		snap.Answers = append([]model.TechnicalAnswer(nil), s.answers...)
		snap.ScorePercent = scoring.Score(s.answers)
	}
	return snap
}
