package lots

import (
	"strings"

	"github.com/samber/lo"

	"lotdesk/internal/domain/entity"
)

// FilterAll disables status filtering.
const FilterAll = "all"

// StatusFilters are the values the status filter control may take.
var StatusFilters = []string{ //nolint:gochecknoglobals
	FilterAll,
	string(entity.StatusParsed),
	string(entity.StatusSent),
	string(entity.StatusError),
	string(entity.StatusNew),
}

func StatusFilterAllowed(value string) bool {
	return lo.Contains(StatusFilters, value)
}

// Visible derives the subset of lots matching both filter criteria.
// Pure and order-preserving: with inactive filters the input slice is
// returned as-is.
func Visible(all []entity.Lot, statusFilter, supplierQuery string) []entity.Lot {
	visible := all

	if statusFilter != "" && statusFilter != FilterAll {
		wanted := entity.LotStatus(strings.ToLower(statusFilter))

		visible = lo.Filter(visible, func(lot entity.Lot, _ int) bool {
			return lot.Status.Effective() == wanted
		})
	}

	if query := strings.ToLower(strings.TrimSpace(supplierQuery)); query != "" {
		visible = lo.Filter(visible, func(lot entity.Lot, _ int) bool {
			return strings.Contains(strings.ToLower(lot.DisplayName()), query)
		})
	}

	return visible
}
