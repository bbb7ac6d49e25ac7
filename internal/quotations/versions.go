package quotations

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/luispallares/forgequote-backend/pkg/db/models"
	"github.com/luispallares/forgequote-backend/pkg/enums"
)

// Chains are flat stars: every fork attaches to the root, never to an
// intermediate version, so root resolution is at most one hop.

func nextVersionNumber(chain []models.Quotation) int {
	max := 0
	for _, q := range chain {
		if q.VersionNumber > max {
			max = q.VersionNumber
		}
	}
	return max + 1
}

// groupByChain buckets a part number's quotations by (supplier, root) and
// splits each bucket into the root plus its version-ordered forks.
func groupByChain(quotes []models.Quotation) []Group {
	type key struct {
		supplier uuid.UUID
		root     uuid.UUID
	}

	buckets := map[key][]models.Quotation{}
	order := []key{}
	for _, q := range quotes {
		k := key{supplier: q.SupplierID, root: q.RootID}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], q)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		members := buckets[k]
		sort.Slice(members, func(i, j int) bool {
			return members[i].VersionNumber < members[j].VersionNumber
		})

		g := Group{SupplierID: k.supplier}
		for _, q := range members {
			if q.IsRoot() {
				g.Root = q
				continue
			}
			g.Versions = append(g.Versions, q)
		}
		groups = append(groups, g)
	}
	return groups
}

// isLapsed reports whether a quotation's validity window has elapsed. Only
// sent and responded quotations age out; the window is anchored on sent_at
// when present, otherwise created_at.
func isLapsed(q *models.Quotation, now time.Time) bool {
	if q.Status != enums.QuotationStatusSent && q.Status != enums.QuotationStatusResponded {
		return false
	}
	if q.ValidityDays == nil {
		return false
	}

	anchor := q.CreatedAt
	if q.SentAt != nil {
		anchor = *q.SentAt
	}
	deadline := anchor.Add(time.Duration(*q.ValidityDays) * 24 * time.Hour)
	return now.After(deadline)
}

// presentStatus derives the effective status at read time so lapsed
// quotations show as expired without waiting for the sweep to write them.
func presentStatus(q *models.Quotation, now time.Time) {
	if isLapsed(q, now) {
		q.Status = enums.QuotationStatusExpired
	}
}
