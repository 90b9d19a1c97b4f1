package memory

import (
	"cmp"
	"context"
	"slices"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/output"
)

var _ output.SignupRepository = (*SignupRepository)(nil)

// SignupRepository reads and writes the store's signup table, or a
// transaction's private copy of it when tx is set.
type SignupRepository struct {
	s  *Store
	tx *signupTable
}

func (r *SignupRepository) read(fn func(t *signupTable) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return fn(r.s.signups)
}

func (r *SignupRepository) write(fn func(t *signupTable) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.signups)
}

func (r *SignupRepository) filter(keep func(entities.Signup) bool) ([]entities.Signup, error) {
	var out []entities.Signup
	err := r.read(func(t *signupTable) error {
		for _, row := range t.rows {
			if keep(row) {
				out = append(out, row)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b entities.Signup) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

func (r *SignupRepository) Create(_ context.Context, signup *entities.Signup) error {
	return r.write(func(t *signupTable) error {
		if signup.UserID != 0 {
			for _, row := range t.rows {
				if row.EventID == signup.EventID && row.UserID == signup.UserID && row.Status != domain.StatusCancelled {
					return domain.ErrDuplicateSignup
				}
			}
		}
		t.nextID++
		signup.ID = t.nextID
		t.rows[signup.ID] = *signup
		return nil
	})
}

func (r *SignupRepository) FindByID(_ context.Context, id uint) (*entities.Signup, error) {
	var found entities.Signup
	err := r.read(func(t *signupTable) error {
		row, ok := t.rows[id]
		if !ok {
			return domain.ErrSignupNotFound
		}
		found = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *SignupRepository) FindByEventID(_ context.Context, eventID uint) ([]entities.Signup, error) {
	return r.filter(func(s entities.Signup) bool { return s.EventID == eventID })
}

func (r *SignupRepository) FindByUserID(_ context.Context, userID uint) ([]entities.Signup, error) {
	return r.filter(func(s entities.Signup) bool { return userID != 0 && s.UserID == userID })
}

func (r *SignupRepository) FindByEventIDAndUserID(_ context.Context, eventID, userID uint) (*entities.Signup, error) {
	rows, err := r.filter(func(s entities.Signup) bool {
		return s.EventID == eventID && userID != 0 && s.UserID == userID && s.Status != domain.StatusCancelled
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrSignupNotFound
	}
	return &rows[0], nil
}

func (r *SignupRepository) FindByEventIDAndStatus(_ context.Context, eventID uint, status string) ([]entities.Signup, error) {
	return r.filter(func(s entities.Signup) bool { return s.EventID == eventID && s.Status == status })
}

func (r *SignupRepository) CountByEventIDAndStatus(ctx context.Context, eventID uint, status string) (int64, error) {
	rows, err := r.FindByEventIDAndStatus(ctx, eventID, status)
	return int64(len(rows)), err
}

func (r *SignupRepository) MaxPerformanceOrder(ctx context.Context, eventID uint) (int, error) {
	rows, err := r.FindByEventID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return entities.MaxPerformanceOrder(rows), nil
}

func (r *SignupRepository) SetPerformanceOrder(_ context.Context, eventID, signupID uint, order int) (bool, error) {
	updated := false
	err := r.write(func(t *signupTable) error {
		row, ok := t.rows[signupID]
		if !ok || row.EventID != eventID {
			return nil
		}
		row.PerformanceOrder = order
		t.rows[signupID] = row
		updated = true
		return nil
	})
	return updated, err
}

func (r *SignupRepository) Update(_ context.Context, signup *entities.Signup) error {
	return r.write(func(t *signupTable) error {
		if _, ok := t.rows[signup.ID]; !ok {
			return domain.ErrSignupNotFound
		}
		t.rows[signup.ID] = *signup
		return nil
	})
}

func (r *SignupRepository) Delete(_ context.Context, id uint) error {
	return r.write(func(t *signupTable) error {
		if _, ok := t.rows[id]; !ok {
			return domain.ErrSignupNotFound
		}
		delete(t.rows, id)
		return nil
	})
}
