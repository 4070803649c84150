// internal/domain/search/ranking.go
package search

import (
	"sort"
	"strings"

	"github.com/your-org/novastore/internal/domain/product"
)

// Filter keeps products whose name or category contains query,
// case-insensitively. An empty query keeps everything.
func Filter(products []product.Product, query string) []product.Product {
	q := strings.ToLower(query)
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Reorder moves products named in priority to the front in priority order;
// the rest keep their relative order behind them. Ids that are unknown or
// repeated in priority are ignored.
func Reorder(products []product.Product, priority []string) []product.Product {
	if len(priority) == 0 {
		out := make([]product.Product, len(products))
		copy(out, products)
		return out
	}

	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}

	var ranked, rest []product.Product
	for _, p := range products {
		if _, ok := rank[p.ID]; ok {
			ranked = append(ranked, p)
		} else {
			rest = append(rest, p)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rank[ranked[i].ID] < rank[ranked[j].ID]
	})

	return append(ranked, rest...)
}

// Merge filters the catalog by query and then applies the AI ordering.
// It is a pure function of its three inputs.
func Merge(products []product.Product, query string, aiOrder []string) []product.Product {
	return Reorder(Filter(products, query), aiOrder)
}
