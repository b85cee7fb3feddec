package loader

import (
	"sort"

	"github.com/quarterback/quarterback/pkg/models"
)

// BasketIDs lists the distinct basket identifiers in a position set, sorted.
func BasketIDs(positions []models.Position) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, pos := range positions {
		if pos.BasketID != "" && !seen[pos.BasketID] {
			seen[pos.BasketID] = true
			ids = append(ids, pos.BasketID)
		}
	}
	sort.Strings(ids)
	return ids
}

// BasketPositions filters a position set down to one basket.
func BasketPositions(positions []models.Position, basketID string) []models.Position {
	out := make([]models.Position, 0, len(positions))
	for _, pos := range positions {
		if pos.BasketID == basketID {
			out = append(out, pos)
		}
	}
	return out
}

// PositionsOfType filters one basket's positions by leg type.
func PositionsOfType(positions []models.Position, basketID string, types ...models.PositionType) []models.Position {
	var out []models.Position
	for _, pos := range positions {
		if pos.BasketID != basketID {
			continue
		}
		for _, t := range types {
			if pos.Type == t {
				out = append(out, pos)
				break
			}
		}
	}
	return out
}
