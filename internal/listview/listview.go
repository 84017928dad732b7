// Package listview holds the filter/sort/paginate logic every list page
// shares. All of it is pure: pages fetch the full collection from the
// upstream API and recompute the view from query parameters on each request.
package listview

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// DefaultPerPage is the fixed page size of every list page.
const DefaultPerPage = 10

// Search keeps the items whose designated string fields contain term,
// case-insensitively, OR-combined across fields. An empty or blank term is
// the identity.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// Where keeps the items matching pred. Filters AND-combine by chaining
// calls.
func Where[T any](items []T, pred func(T) bool) []T {
	return lo.Filter(items, func(item T, _ int) bool { return pred(item) })
}

// Sort orders items by the given less function, descending when desc is
// set. The sort is stable so re-sorting an already sorted list is a no-op.
// The input slice is not mutated.
func Sort[T any](items []T, less func(a, b T) bool, desc bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Pager describes one page of a filtered+sorted list.
type Pager struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	PrevURL    string // prev/next links keeping the active filters, see WithQuery
	NextURL    string
	First      int // 1-based index of the first item shown, 0 when empty
	Last       int // 1-based index of the last item shown
}

// WithQuery fills PrevURL/NextURL from the request's query values so the
// prev/next links carry every active search/filter/sort parameter, swapping
// only the page number. q is not mutated.
func (p Pager) WithQuery(q url.Values) Pager {
	link := func(page int) string {
		v := url.Values{}
		for k, vals := range q {
			v[k] = vals
		}
		v.Set("page", strconv.Itoa(page))
		return "?" + v.Encode()
	}
	p.PrevURL = link(p.PrevPage)
	p.NextURL = link(p.NextPage)
	return p
}

// Paginate slices items into the requested page. Page numbers are 1-based;
// out-of-range pages clamp to the nearest valid page, and per falls back to
// DefaultPerPage when not positive.
func Paginate[T any](items []T, page, per int) ([]T, Pager) {
	if per < 1 {
		per = DefaultPerPage
	}
	total := len(items)
	totalPages := (total + per - 1) / per
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * per
	end := start + per
	if end > total {
		end = total
	}

	p := Pager{
		Page:       page,
		PerPage:    per,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
		Last:       end,
	}
	if total > 0 {
		p.First = start + 1
	}
	return items[start:end], p
}
