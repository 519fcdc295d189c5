package attendance

import (
	"context"
	"errors"
	"time"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CheckIn records the first check-in of the day. A second call for the same
// date leaves the stored time untouched and reports a conflict.
func (s *Service) CheckIn(ctx context.Context, profileID string, now time.Time) (*Record, error) {
	rec, err := s.Store.GetForDate(ctx, profileID, now)
	if errors.Is(err, ErrNotFound) {
		id, err := s.Store.Create(ctx, profileID, now)
		if err != nil {
			return nil, err
		}
		if err := s.Store.SetCheckIn(ctx, id, now); err != nil {
			return nil, err
		}
		return s.Store.Get(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if rec.CheckIn != nil {
		return rec, ErrAlreadyCheckedIn
	}
	if err := s.Store.SetCheckIn(ctx, rec.ID, now); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, rec.ID)
}

// CheckOut closes the day's record and derives worked hours when a check-in
// exists. Without a prior check-in the operation is refused and worked hours
// stay unset.
func (s *Service) CheckOut(ctx context.Context, profileID string, now time.Time) (*Record, error) {
	rec, err := s.Store.GetForDate(ctx, profileID, now)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.CheckOut != nil {
		return rec, ErrAlreadyCheckedOut
	}
	if rec.CheckIn == nil {
		return rec, ErrNotCheckedIn
	}

	hours := WorkedHours(*rec.CheckIn, now)
	if err := s.Store.SetCheckOut(ctx, rec.ID, now, hours); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, rec.ID)
}

// Amend overwrites either time field and recomputes worked hours when both
// end up present. HR-only; the gate lives at the transport layer.
func (s *Service) Amend(ctx context.Context, recordID string, newCheckIn, newCheckOut *time.Time, status string) (*Record, error) {
	rec, err := s.Store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	checkIn := rec.CheckIn
	if newCheckIn != nil {
		checkIn = newCheckIn
	}
	checkOut := rec.CheckOut
	if newCheckOut != nil {
		checkOut = newCheckOut
	}

	hours := rec.WorkedHours
	if checkIn != nil && checkOut != nil {
		computed := WorkedHours(*checkIn, *checkOut)
		hours = &computed
	}

	if status == "" {
		status = rec.Status
	}
	if !ValidStatus(status) {
		return nil, errors.New("invalid attendance status")
	}

	if err := s.Store.Update(ctx, recordID, checkIn, checkOut, hours, status); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, recordID)
}

// Today returns the day's record, or a synthetic Absent record when none
// exists. Absence is a derived state, never written.
func (s *Service) Today(ctx context.Context, profileID string, now time.Time) (*Record, error) {
	rec, err := s.Store.GetForDate(ctx, profileID, now)
	if errors.Is(err, ErrNotFound) {
		return &Record{ProfileID: profileID, Date: now, Status: StatusAbsent}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) History(ctx context.Context, profileID string, limit int) ([]Record, error) {
	return s.Store.ListByProfile(ctx, profileID, limit)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	return s.Store.ListAll(ctx, limit, offset)
}
