package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// Working windows on the linear hour axis. Hours >= 24 fall on the next
// calendar day, so the night window 19:00-07:00 becomes 19-31.
var coverageWindows = map[string][2]int{
	model.ShiftTypeDay:   {7, 19},
	model.ShiftTypeNight: {19, 31},
}

// ComputeGaps returns the uncovered sub-intervals of the working window
// for one date and shift type. Shifts without an owner do not count as
// coverage. Zero covering shifts yield zero gaps; "nobody scheduled at
// all" is a different condition reported by the caller.
func ComputeGaps(date time.Time, shifts []model.Shift, shiftType string) ([]dto.CoverageGap, error) {
	window, ok := coverageWindows[shiftType]
	if !ok {
		return nil, apperrors.Validation("unknown shift type: " + shiftType)
	}

	type span struct{ start, end int }
	spans := make([]span, 0, len(shifts))
	for i := range shifts {
		if shifts[i].Unfilled() {
			continue
		}
		start, end := shifts[i].LinearHours()
		spans = append(spans, span{start: start, end: end})
	}
	if len(spans) == 0 {
		return []dto.CoverageGap{}, nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	// Sweep left to right, emitting a gap whenever a shift starts past
	// the coverage frontier.
	gaps := []dto.CoverageGap{}
	current := window[0]
	for _, s := range spans {
		if s.start > current {
			gaps = append(gaps, normalizeGap(date, current, s.start))
		}
		if s.end > current {
			current = s.end
		}
	}
	if current < window[1] {
		gaps = append(gaps, normalizeGap(date, current, window[1]))
	}
	return gaps, nil
}

// normalizeGap converts a linear-hour interval back to wall-clock form.
// An interval entirely past hour 24 belongs to the following date.
func normalizeGap(date time.Time, start, end int) dto.CoverageGap {
	switch {
	case start >= 24:
		return dto.CoverageGap{
			Date:      date.AddDate(0, 0, 1).Format("2006-01-02"),
			StartHour: start - 24,
			EndHour:   end - 24,
		}
	case end > 24:
		return dto.CoverageGap{
			Date:            date.Format("2006-01-02"),
			StartHour:       start,
			EndHour:         end - 24,
			CrossesMidnight: true,
		}
	default:
		return dto.CoverageGap{
			Date:      date.Format("2006-01-02"),
			StartHour: start,
			EndHour:   end,
		}
	}
}

// CoverageService exposes gap detection read-only over the shift store.
type CoverageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewCoverageService(repo *repository.Repository, logger *zap.Logger) *CoverageService {
	return &CoverageService{repo: repo, logger: logger}
}

// GetGaps reports the coverage gaps for one date and shift type.
func (s *CoverageService) GetGaps(ctx context.Context, req *dto.CoverageGapsRequest) (*dto.CoverageResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid date")
	}

	shifts, err := s.repo.Shift.ListByDate(ctx, date, req.Type, req.StationID)
	if err != nil {
		return nil, err
	}

	gaps, err := ComputeGaps(date, shifts, req.Type)
	if err != nil {
		return nil, err
	}

	return &dto.CoverageResponse{
		Date:      req.Date,
		Type:      req.Type,
		HasShifts: len(shifts) > 0,
		Gaps:      gaps,
	}, nil
}

// maxCoverageRangeDays caps the dashboard range to two months.
const maxCoverageRangeDays = 62

// GetDailyCoverage reports gaps for every date in a range, both shift
// types, for the dashboard warning feed.
func (s *CoverageService) GetDailyCoverage(ctx context.Context, req *dto.DailyCoverageRequest) ([]dto.CoverageResponse, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, apperrors.Validation("invalid from date")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, apperrors.Validation("invalid to date")
	}
	if to.Before(from) {
		return nil, apperrors.Validation("to must not precede from")
	}
	if int(to.Sub(from).Hours()/24) > maxCoverageRangeDays {
		return nil, apperrors.Validation("date range too large")
	}

	var out []dto.CoverageResponse
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, shiftType := range []string{model.ShiftTypeDay, model.ShiftTypeNight} {
			shifts, err := s.repo.Shift.ListByDate(ctx, date, shiftType, req.StationID)
			if err != nil {
				return nil, err
			}
			gaps, err := ComputeGaps(date, shifts, shiftType)
			if err != nil {
				return nil, err
			}
			out = append(out, dto.CoverageResponse{
				Date:      date.Format("2006-01-02"),
				Type:      shiftType,
				HasShifts: len(shifts) > 0,
				Gaps:      gaps,
			})
		}
	}
	return out, nil
}
