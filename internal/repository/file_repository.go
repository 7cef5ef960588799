package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/talentscout/screening/internal/model"
)

// FileCandidateRepository keeps every record in a single JSON array on disk.
// The whole-file read-append-rewrite sequence runs under an exclusive lock so
// two concurrent submissions cannot lose each other's write.
type FileCandidateRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileCandidateRepository(path string) *FileCandidateRepository {
	return &FileCandidateRepository{path: path}
}

func (r *FileCandidateRepository) load() ([]model.Candidate, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var records []model.Candidate
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return records, nil
}

func (r *FileCandidateRepository) Insert(ctx context.Context, candidate *model.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	records = append(records, *candidate)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *FileCandidateRepository) Exists(ctx context.Context, email, phone string) (bool, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if email != "" && strings.EqualFold(rec.BasicInfo[model.FieldEmail], email) {
			return true, nil
		}
		if phone != "" && rec.BasicInfo[model.FieldPhone] == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *FileCandidateRepository) Find(ctx context.Context, offset, limit int) ([]model.Candidate, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(records))

	if offset > len(records) {
		offset = len(records)
	}
	if offset > 0 {
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, total, nil
}
