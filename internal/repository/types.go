package repository

import (
	"context"

	"github.com/talentscout/screening/internal/model"
)

// CandidateStore is the persistence contract shared by the Postgres and
// file-backed backends. Exists treats a blank email or phone as "no
// constraint", never as an empty-string match.
type CandidateStore interface {
	Insert(ctx context.Context, candidate *model.Candidate) error
	Exists(ctx context.Context, email, phone string) (bool, error)
	Find(ctx context.Context, offset, limit int) ([]model.Candidate, int64, error)
}
