package presence

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSample = errors.New("invalid presence sample")
)

// Store is the daily attendance collection. MergeSample must be atomic per
// (employee, date) key so that concurrent batches for the same employee never
// lose an update.
type Store interface {
	MergeSample(ctx context.Context, sample Sample, now time.Time) error
	FindByDate(ctx context.Context, date time.Time) ([]DailyRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]DailyRecord, error)
	FindByEmployeeAndDateRange(ctx context.Context, employeeID int, from, to time.Time) ([]DailyRecord, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// MergeSample folds one sample into the daily record for its key:
// first-seen takes the minimum, last-seen the maximum, minutes-online is
// added to the running total, and names are overwritten with the latest
// submission. The result is independent of delivery order.
func (s *Service) MergeSample(ctx context.Context, sample Sample) error {
	if err := validateSample(sample); err != nil {
		return err
	}

	if err := s.store.MergeSample(ctx, sample, time.Now()); err != nil {
		return fmt.Errorf("merge daily record: %w", err)
	}
	return nil
}

func validateSample(sample Sample) error {
	if sample.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee id %d", ErrInvalidSample, sample.EmployeeID)
	}
	if sample.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSample)
	}
	if sample.MinutesOnline < 0 {
		return fmt.Errorf("%w: negative minutes online (%d)", ErrInvalidSample, sample.MinutesOnline)
	}
	if sample.LastSeen.Before(sample.FirstSeen) {
		return fmt.Errorf("%w: last seen %s before first seen %s",
			ErrInvalidSample, sample.LastSeen, sample.FirstSeen)
	}
	return nil
}

func (s *Service) RecordsForDate(ctx context.Context, date time.Time) ([]DailyRecord, error) {
	records, err := s.store.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find daily records: %w", err)
	}
	return records, nil
}

func (s *Service) RecordsForMonth(ctx context.Context, year int, month time.Month) ([]DailyRecord, error) {
	from, to := MonthBounds(year, month)
	records, err := s.store.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find monthly records: %w", err)
	}
	return records, nil
}

func (s *Service) EmployeeRecordsForMonth(ctx context.Context, employeeID, year int, month time.Month) ([]DailyRecord, error) {
	from, to := MonthBounds(year, month)
	records, err := s.store.FindByEmployeeAndDateRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("find employee monthly records: %w", err)
	}
	return records, nil
}

// MonthBounds returns the first and last day of a month, inclusive.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
