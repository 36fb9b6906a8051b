package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
)

// ErrNoRate indicates a lot needs rescheduling but has no configured
// production rate.
var ErrNoRate = errors.New("no production rate configured for lot")

// AfterCompletion recomputes the queue of every lot touched by the
// just-completed areas. Replanning always starts tomorrow: whatever
// remains of today's capacity is already spent in the field.
//
// Completed areas are dropped from the rescheduled set here, so callers
// don't have to mutate status flags before asking for a recalculation. A
// completed area's next cycle enters the queue again on the next full
// recalculation.
//
// A completed ID whose area has no lot (or no matching area at all)
// affects nothing and is skipped.
func (c Calendar) AfterCompletion(allAreas []domain.ServiceArea, completedIDs []int64, rates domain.ProductionRates, now time.Time) ([]domain.Prediction, error) {
	completed := make(map[int64]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	affected := make(map[int]bool)
	pending := make([]domain.ServiceArea, 0, len(allAreas))
	for _, a := range allAreas {
		if completed[a.ID] {
			if a.Lot != nil {
				affected[*a.Lot] = true
			}
			continue
		}
		pending = append(pending, a)
	}

	tomorrow := Midnight(now).AddDate(0, 0, 1)

	lots := make([]int, 0, len(affected))
	for lot := range affected {
		lots = append(lots, lot)
	}
	sort.Ints(lots)

	var results []domain.Prediction
	for _, lot := range lots {
		rate, ok := rates.Rate(lot)
		if !ok {
			return nil, fmt.Errorf("lote %d: %w", lot, ErrNoRate)
		}

		preds, err := c.ForLot(pending, lot, rate, tomorrow)
		if err != nil {
			return nil, err
		}
		results = append(results, preds...)
	}

	return results, nil
}
