package wizard

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/talentscout/screening/internal/model"
)

type fakeStore struct {
	records   []model.Candidate
	existsErr error
	insertErr error
}

func (s *fakeStore) Insert(ctx context.Context, c *model.Candidate) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.records = append(s.records, *c)
	return nil
}

func (s *fakeStore) Exists(ctx context.Context, email, phone string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, r := range s.records {
		if email != "" && strings.EqualFold(r.BasicInfo[model.FieldEmail], email) {
			return true, nil
		}
		if phone != "" && r.BasicInfo[model.FieldPhone] == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Find(ctx context.Context, offset, limit int) ([]model.Candidate, int64, error) {
	return s.records, int64(len(s.records)), nil
}

type fakeCompletion struct {
	questionsJSON string
	questionsErr  error
	feedback      string
	feedbackErr   error
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "technical interview questions") {
		return f.questionsJSON, f.questionsErr
	}
	return f.feedback, f.feedbackErr
}

var validProfile = map[string]string{
	model.FieldFullName:   "Jane Doe",
	model.FieldEmail:      "jane@example.com",
	model.FieldPhone:      "+14155552671",
	model.FieldExperience: "5",
	model.FieldPosition:   "Backend Engineer",
	model.FieldLocation:   "Berlin",
	model.FieldTechStack:  "Go",
}

func collectProfile(t *testing.T, s *Session) {
	t.Helper()
	for _, field := range model.ProfileFields {
		if err := s.SubmitField(context.Background(), validProfile[field]); err != nil {
			t.Fatalf("SubmitField(%s): %v", field, err)
		}
	}
}

func newTestSession(completion *fakeCompletion) (*Session, *fakeStore) {
	store := &fakeStore{}
	return NewSession(store, completion), store
}

func TestCollectingAdvancesToGenerating(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{})

	if field, ok := s.CurrentField(); !ok || field != model.FieldFullName {
		t.Fatalf("initial field = %q, want %q", field, model.FieldFullName)
	}

	collectProfile(t, s)

	if s.State() != StateGenerating {
		t.Fatalf("state after all fields = %v, want generating", s.State())
	}
}

func TestInvalidFieldStaysOnSameStep(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{})
	ctx := context.Background()

	if err := s.SubmitField(ctx, "Jane Doe"); err != nil {
		t.Fatalf("name: %v", err)
	}
	err := s.SubmitField(ctx, "not-an-email")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if field, _ := s.CurrentField(); field != model.FieldEmail {
		t.Fatalf("field after rejection = %q, want %q", field, model.FieldEmail)
	}
	if err := s.SubmitField(ctx, "jane@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
}

func TestEmptyFieldRejected(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{})
	if err := s.SubmitField(context.Background(), "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank input, got %v", err)
	}
}

func TestDuplicateEmailRejectedBeforeGenerating(t *testing.T) {
	s, store := newTestSession(&fakeCompletion{})
	store.records = []model.Candidate{{
		BasicInfo: map[string]string{model.FieldEmail: "JANE@example.com"},
	}}
	ctx := context.Background()

	if err := s.SubmitField(ctx, "Jane Doe"); err != nil {
		t.Fatalf("name: %v", err)
	}
	err := s.SubmitField(ctx, "jane@example.com")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if s.State() != StateRejected {
		t.Fatalf("state = %v, want rejected", s.State())
	}

	// Hard stop: retrying with different contact info is not possible.
	if err := s.SubmitField(ctx, "other@example.com"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on retry, got %v", err)
	}
}

func TestDuplicatePhoneRejected(t *testing.T) {
	s, store := newTestSession(&fakeCompletion{})
	store.records = []model.Candidate{{
		BasicInfo: map[string]string{model.FieldPhone: "+14155552671"},
	}}
	ctx := context.Background()

	if err := s.SubmitField(ctx, "Jane Doe"); err != nil {
		t.Fatalf("name: %v", err)
	}
	if err := s.SubmitField(ctx, "jane@example.com"); err != nil {
		t.Fatalf("email: %v", err)
	}
	if err := s.SubmitField(ctx, "+14155552671"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGenerateQuestionsMovesToAsking(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedback:      "Good answer.",
	})
	collectProfile(t, s)

	if err := s.GenerateQuestions(context.Background()); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if s.State() != StateAsking {
		t.Fatalf("state = %v, want asking", s.State())
	}
	q, ok := s.CurrentQuestion()
	if !ok || q.Question != "q1" || q.Tech != "Go" {
		t.Fatalf("first question = %+v", q)
	}
}

func TestGenerateQuestionsFailureKeepsState(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{questionsJSON: "not json at all"})
	collectProfile(t, s)

	err := s.GenerateQuestions(context.Background())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if s.State() != StateGenerating {
		t.Fatalf("state = %v, want generating", s.State())
	}

	// A second attempt with the same session is allowed.
	if err := s.GenerateQuestions(context.Background()); !errors.Is(err, ErrGeneration) {
		t.Fatalf("retry: expected ErrGeneration, got %v", err)
	}
}

func TestAnswerLoopAndFeedback(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedback:      "  Solid explanation.  ",
	})
	ctx := context.Background()
	collectProfile(t, s)
	if err := s.GenerateQuestions(ctx); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}

	if err := s.SubmitAnswer(ctx, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty answer, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.SubmitAnswer(ctx, "channels and goroutines"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	if s.State() != StateSummary {
		t.Fatalf("state = %v, want summary", s.State())
	}

	snap := s.Snapshot()
	if len(snap.Answers) != 3 {
		t.Fatalf("got %d answers, want 3", len(snap.Answers))
	}
	if snap.Answers[0].Feedback != "Solid explanation." {
		t.Fatalf("feedback = %q", snap.Answers[0].Feedback)
	}
	if snap.Answers[1].Question != "q2" {
		t.Fatalf("answers out of order: %+v", snap.Answers)
	}
}

func TestFeedbackFailureUsesPlaceholder(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedbackErr:   errors.New("llm down"),
	})
	ctx := context.Background()
	collectProfile(t, s)
	if err := s.GenerateQuestions(ctx); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if err := s.SubmitAnswer(ctx, "an answer"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if got := s.answers[0].Feedback; got != NoFeedback {
		t.Fatalf("feedback = %q, want %q", got, NoFeedback)
	}
}

func TestSubmitWritesRecordAndFreezes(t *testing.T) {
	s, store := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedback:      "ok",
	})
	ctx := context.Background()
	collectProfile(t, s)
	if err := s.GenerateQuestions(ctx); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	long := strings.Repeat("a", 101)
	for i := 0; i < 3; i++ {
		if err := s.SubmitAnswer(ctx, long); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	candidate, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if candidate.ScorePercent != 100 {
		t.Fatalf("score = %d, want 100", candidate.ScorePercent)
	}
	if candidate.BasicInfo[model.FieldTechStack] != "Go" {
		t.Fatalf("basic info = %+v", candidate.BasicInfo)
	}
	if len(store.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(store.records))
	}
	if s.State() != StateDone {
		t.Fatalf("state = %v, want done", s.State())
	}

	if _, err := s.Submit(ctx); !errors.Is(err, ErrFrozen) {
		t.Fatalf("resubmission after success: expected ErrFrozen, got %v", err)
	}
	if err := s.SubmitField(ctx, "x"); !errors.Is(err, ErrFrozen) {
		t.Fatalf("field after done: expected ErrFrozen, got %v", err)
	}
}

func TestSubmitDuplicateStaysInSummary(t *testing.T) {
	s, store := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedback:      "ok",
	})
	ctx := context.Background()
	collectProfile(t, s)
	if err := s.GenerateQuestions(ctx); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.SubmitAnswer(ctx, "an answer with enough effort"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	// Another submission raced in with the same email.
	store.records = []model.Candidate{{
		BasicInfo: map[string]string{model.FieldEmail: "jane@example.com"},
	}}

	if _, err := s.Submit(ctx); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if s.State() != StateSummary {
		t.Fatalf("state = %v, want summary", s.State())
	}

	// Once the conflict clears, resubmission succeeds.
	store.records = nil
	if _, err := s.Submit(ctx); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if s.State() != StateDone {
		t.Fatalf("state = %v, want done", s.State())
	}
}

func TestSubmitOutOfOrderRejected(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{})
	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
	if err := s.SubmitAnswer(context.Background(), "x"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestProgress(t *testing.T) {
	s, _ := newTestSession(&fakeCompletion{
		questionsJSON: `{"Go":["q1","q2","q3"]}`,
		feedback:      "ok",
	})
	ctx := context.Background()

	total := float64(len(model.ProfileFields) + 2)
	if got := s.Progress(); math.Abs(got-1/total) > 1e-9 {
		t.Fatalf("initial progress = %v, want %v", got, 1/total)
	}

	collectProfile(t, s)
	if got := s.Progress(); math.Abs(got-8/total) > 1e-9 {
		t.Fatalf("generating progress = %v, want %v", got, 8/total)
	}

	if err := s.GenerateQuestions(ctx); err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if got := s.Progress(); math.Abs(got-1) > 1e-9 {
		t.Fatalf("asking progress = %v, want 1", got)
	}

	for i := 0; i < 3; i++ {
		if err := s.SubmitAnswer(ctx, "answer"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	if got := s.Progress(); got != 1 {
		t.Fatalf("summary progress = %v, want capped 1", got)
	}
}
