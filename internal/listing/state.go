package listing

import "github.com/unclebandit/simple-crm/internal/model"

// State is the list screen state. The zero value shows page 1 of nothing with FilterAll.
type State struct {
	customers []model.Customer
	filter    Filter
	search    string
	page      int
}

// NewState returns an empty state showing every status.
func NewState() *State {
	return &State{filter: FilterAll, page: 1}
}

// SetCollection replaces the collection. The current page is kept but pulled back
// onto the last page if the collection shrank.
func (s *State) SetCollection(customers []model.Customer) {
	s.customers = append([]model.Customer(nil), customers...)
	s.page = clampPage(s.page, TotalPages(len(s.matching())))
}

func (s *State) SetFilter(f Filter) {
	s.filter = f
	s.page = 1
}

func (s *State) SetSearch(query string) {
	s.search = query
	s.page = 1
}

// NextPage advances one page unless already on the last one.
func (s *State) NextPage() bool {
	if v := s.View(); v.HasNext {
		s.page = v.Number + 1
		return true
	}
	return false
}

// PrevPage goes back one page unless already on the first one.
func (s *State) PrevPage() bool {
	if v := s.View(); v.HasPrev {
		s.page = v.Number - 1
		return true
	}
	return false
}

func (s *State) Filter() Filter {
	if s.filter == "" {
		return FilterAll
	}
	return s.filter
}

func (s *State) Search() string { return s.search }

func (s *State) Customers() []model.Customer {
	return append([]model.Customer(nil), s.customers...)
}

// Find looks a customer up in the last fetched collection.
func (s *State) Find(id int) (model.Customer, bool) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

// View derives the current page.
func (s *State) View() Page {
	return Derive(s.customers, s.Filter(), s.search, s.page)
}

func (s *State) matching() []model.Customer {
	return Search(FilterByStatus(s.customers, s.Filter()), s.search)
}
