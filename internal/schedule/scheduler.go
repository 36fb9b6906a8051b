package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
)

// ForLot computes the mowing queue for a single lot: each eligible area is
// assigned a contiguous span of working days sized by ceil(size/rate), one
// area at a time, never overlapping. The returned prediction carries the
// START date of the area's window, which is the date operators see as
// "próxima previsão".
//
// Input areas are never mutated; persisting the predictions is the
// caller's job.
func (c Calendar) ForLot(areas []domain.ServiceArea, lot int, rate float64, start time.Time) ([]domain.Prediction, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("lote %d: rate %.2f: %w", lot, rate, domain.ErrInvalidRate)
	}

	queue := eligible(areas, lot)
	sortQueue(queue)

	day := c.NextBusinessDay(start)
	preds := make([]domain.Prediction, 0, len(queue))
	for _, a := range queue {
		days := int(math.Ceil(a.Size() / rate))
		if days < 1 {
			days = 1
		}

		// Last working day consumed by this area; the next area starts on
		// the first business day after it.
		end := c.AddBusinessDays(day, days-1)

		preds = append(preds, domain.Prediction{
			AreaID:      a.ID,
			NextDate:    day.Format(DateLayout),
			WorkingDays: days,
		})

		day = c.NextBusinessDay(end.AddDate(0, 0, 1))
	}

	return preds, nil
}

// ForAllLots runs the single-lot scheduler for every lot with a configured
// rate, in ascending lot order so output is deterministic.
func (c Calendar) ForAllLots(areas []domain.ServiceArea, rates domain.ProductionRates, start time.Time) ([]domain.Prediction, error) {
	var results []domain.Prediction
	for _, lot := range sortedLots(rates) {
		preds, err := c.ForLot(areas, lot, rates[lot], start)
		if err != nil {
			return nil, err
		}
		results = append(results, preds...)
	}

	return results, nil
}

// eligible keeps areas assigned to the lot, tagged for mowing and not
// pinned by a manual schedule.
func eligible(areas []domain.ServiceArea, lot int) []domain.ServiceArea {
	out := make([]domain.ServiceArea, 0, len(areas))
	for _, a := range areas {
		if a.Lot == nil || *a.Lot != lot {
			continue
		}
		if a.Service != domain.ServiceMowing || a.ManualSchedule {
			continue
		}
		out = append(out, a)
	}

	return out
}

// sortQueue orders areas by ordem ascending when both sides define one,
// with id ascending as the tiebreaker and as the sole key when ordem is
// absent.
func sortQueue(queue []domain.ServiceArea) {
	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if a.Order != nil && b.Order != nil && *a.Order != *b.Order {
			return *a.Order < *b.Order
		}

		return a.ID < b.ID
	})
}

func sortedLots(rates domain.ProductionRates) []int {
	lots := make([]int, 0, len(rates))
	for lot := range rates {
		lots = append(lots, lot)
	}
	sort.Ints(lots)

	return lots
}
