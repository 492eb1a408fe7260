// Package listing derives the paginated customer view shown by the list screen
// and drives the confirmation-gated mutations issued from it.
package listing

import (
	"fmt"
	"strings"

	"github.com/unclebandit/simple-crm/internal/model"
)

// PageSize is the fixed number of customers per page.
const PageSize = 5

// Filter selects customers by status. FilterAll keeps everyone.
type Filter string

const FilterAll Filter = "All"

// ParseFilter accepts "All" or any status name, ignoring case.
func ParseFilter(raw string) (Filter, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, string(FilterAll)) {
		return FilterAll, nil
	}
	for _, s := range model.Statuses {
		if strings.EqualFold(raw, string(s)) {
			return Filter(s), nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", raw)
}

// Page is one rendered slice of the derived view.
type Page struct {
	Items      []model.Customer
	Number     int
	TotalPages int
	TotalItems int
	HasPrev    bool
	HasNext    bool
	// ShowControls is false when everything fits on a single page.
	ShowControls bool
}

// FilterByStatus keeps customers whose status equals f exactly, preserving order.
func FilterByStatus(customers []model.Customer, f Filter) []model.Customer {
	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if f == FilterAll || string(c.Status) == string(f) {
			out = append(out, c)
		}
	}
	return out
}

// Search keeps customers whose name or email contains query, case-insensitively.
func Search(customers []model.Customer, query string) []model.Customer {
	if query == "" {
		return customers
	}
	q := strings.ToLower(query)
	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the items of 1-based page. Out of range pages are empty.
func Paginate(customers []model.Customer, page int) []model.Customer {
	if page < 1 {
		return []model.Customer{}
	}
	start := (page - 1) * PageSize
	if start >= len(customers) {
		return []model.Customer{}
	}
	end := min(start+PageSize, len(customers))
	return customers[start:end]
}

// Derive runs filter, then search, then paginate.
func Derive(customers []model.Customer, f Filter, query string, page int) Page {
	matching := Search(FilterByStatus(customers, f), query)
	total := TotalPages(len(matching))
	page = clampPage(page, total)

	return Page{
		Items:        Paginate(matching, page),
		Number:       page,
		TotalPages:   total,
		TotalItems:   len(matching),
		HasPrev:      page > 1,
		HasNext:      page < total,
		ShowControls: len(matching) > PageSize,
	}
}

func clampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}
