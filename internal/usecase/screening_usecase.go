package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/talentscout/screening/internal/model"
	"github.com/talentscout/screening/internal/repository"
	"github.com/talentscout/screening/internal/service"
	"github.com/talentscout/screening/internal/wizard"
)

var ErrSessionNotFound = errors.New("screening session not found")

type sessionEntry struct {
	mu      sync.Mutex
	session *wizard.Session
}

// ScreeningUsecase owns the live sessions and drives the wizard. Sessions are
// independent; each entry carries its own lock so a slow completion call in
// one session never blocks another.
type ScreeningUsecase struct {
	store      repository.CandidateStore
	completion service.CompletionService

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

func NewScreeningUsecase(store repository.CandidateStore, completion service.CompletionService) *ScreeningUsecase {
	return &ScreeningUsecase{
		store:      store,
		completion: completion,
		sessions:   make(map[uuid.UUID]*sessionEntry),
	}
}

// StartSession creates a fresh session and returns its id with the initial
// snapshot.
func (uc *ScreeningUsecase) StartSession() (uuid.UUID, wizard.Snapshot) {
	id := uuid.New()
	entry := &sessionEntry{session: wizard.NewSession(uc.store, uc.completion)}

	uc.mu.Lock()
	uc.sessions[id] = entry
	uc.mu.Unlock()

	return id, entry.session.Snapshot()
}

func (uc *ScreeningUsecase) entry(id uuid.UUID) (*sessionEntry, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	entry, ok := uc.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// SubmitInput routes one user submission action to the session: a profile
// field while collecting, an answer while asking. Submitting the last field
// immediately triggers question generation; a session stuck in Generating
// after a failed generation retries it on the next input.
func (uc *ScreeningUsecase) SubmitInput(ctx context.Context, id uuid.UUID, value string) (wizard.Snapshot, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return wizard.Snapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := entry.session
	switch s.State() {
	case wizard.StateCollecting:
		if err := s.SubmitField(ctx, value); err != nil {
			return s.Snapshot(), err
		}
		if s.State() == wizard.StateGenerating {
			if err := s.GenerateQuestions(ctx); err != nil {
				return s.Snapshot(), err
			}
		}
		return s.Snapshot(), nil
	case wizard.StateGenerating:
		err := s.GenerateQuestions(ctx)
		return s.Snapshot(), err
	case wizard.StateAsking:
		err := s.SubmitAnswer(ctx, value)
		return s.Snapshot(), err
	case wizard.StateDone:
		return s.Snapshot(), wizard.ErrFrozen
	case wizard.StateRejected:
		return s.Snapshot(), wizard.ErrDuplicate
	default:
		return s.Snapshot(), wizard.ErrBadState
	}
}

// SubmitFinal performs the final duplicate-guarded write from Summary.
func (uc *ScreeningUsecase) SubmitFinal(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Submit(ctx)
}

func (uc *ScreeningUsecase) SessionState(id uuid.UUID) (wizard.Snapshot, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return wizard.Snapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Snapshot(), nil
}

// Candidates lists stored records for review.
func (uc *ScreeningUsecase) Candidates(ctx context.Context, offset, limit int) ([]model.Candidate, int64, error) {
	return uc.store.Find(ctx, offset, limit)
}
