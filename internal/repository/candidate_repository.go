package repository

import (
	"context"
	"strings"

	"github.com/talentscout/screening/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Insert(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

// Exists matches email case-insensitively and phone exactly; either match
// suffices. Blank query fields are skipped entirely.
func (r *CandidateRepository) Exists(ctx context.Context, email, phone string) (bool, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return false, nil
	}

	q := r.db.WithContext(ctx).Model(&model.Candidate{})
	switch {
	case email != "" && phone != "":
		q = q.Where("LOWER(email) = LOWER(?) OR phone = ?", email, phone)
	case email != "":
		q = q.Where("LOWER(email) = LOWER(?)", email)
	default:
		q = q.Where("phone = ?", phone)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CandidateRepository) Find(ctx context.Context, offset, limit int) ([]model.Candidate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Candidate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Order("created_at")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var candidates []model.Candidate
	if err := q.Find(&candidates).Error; err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}
