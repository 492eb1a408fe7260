package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/simple-crm/internal/model"
)

func customers(n int, status model.Status) []model.Customer {
	out := make([]model.Customer, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Customer{
			ID:     i,
			Name:   fmt.Sprintf("Customer %d", i),
			Email:  fmt.Sprintf("c%d@example.com", i),
			Status: status,
		})
	}
	return out
}

func ids(cs []model.Customer) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	all := []model.Customer{
		{ID: 1, Status: model.StatusLead},
		{ID: 2, Status: model.StatusActive},
		{ID: 3, Status: model.StatusLead},
	}

	assert.Equal(t, []int{1, 3}, ids(FilterByStatus(all, Filter(model.StatusLead))))
	assert.Equal(t, []int{2}, ids(FilterByStatus(all, Filter(model.StatusActive))))
	assert.Empty(t, FilterByStatus(all, Filter(model.StatusInactive)))
	assert.Equal(t, []int{1, 2, 3}, ids(FilterByStatus(all, FilterAll)))
}

func TestSearch(t *testing.T) {
	all := []model.Customer{
		{ID: 1, Name: "Alice Smith", Email: "alice@acme.io"},
		{ID: 2, Name: "Bob", Email: "bob@SMITHS.com"},
		{ID: 3, Name: "Carol", Email: "carol@example.com"},
	}

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 3}},
		{"smith", []int{1, 2}},
		{"ACME", []int{1}},
		{"nobody", []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := Search(all, tc.query)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestTotalPages(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 5: 1, 6: 2, 10: 2, 11: 3} {
		assert.Equal(t, want, TotalPages(n), "n=%d", n)
	}
}

func TestLastPageSize(t *testing.T) {
	for _, n := range []int{1, 4, 5, 9, 10, 13} {
		all := customers(n, model.StatusLead)
		last := Paginate(all, TotalPages(n))
		want := n % PageSize
		if want == 0 {
			want = PageSize
		}
		assert.Len(t, last, want, "n=%d", n)
	}
}

func TestDeriveSevenCustomers(t *testing.T) {
	all := customers(7, model.StatusActive)

	first := Derive(all, FilterAll, "", 1)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(first.Items))
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
	assert.True(t, first.ShowControls)
	assert.Equal(t, 2, first.TotalPages)

	second := Derive(all, FilterAll, "", 2)
	assert.Equal(t, []int{6, 7}, ids(second.Items))
	assert.True(t, second.HasPrev)
	assert.False(t, second.HasNext)
}

func TestDeriveOrderOfOperations(t *testing.T) {
	all := []model.Customer{
		{ID: 1, Name: "Ann", Email: "ann@x.io", Status: model.StatusLead},
		{ID: 2, Name: "Anna", Email: "anna@x.io", Status: model.StatusActive},
		{ID: 3, Name: "Bea", Email: "bea@x.io", Status: model.StatusLead},
	}

	page := Derive(all, Filter(model.StatusLead), "an", 1)
	require.Equal(t, 1, page.TotalItems)
	assert.Equal(t, []int{1}, ids(page.Items))
	assert.False(t, page.ShowControls)
}

func TestDeriveClampsPage(t *testing.T) {
	page := Derive(customers(3, model.StatusLead), FilterAll, "", 9)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 3)

	empty := Derive(nil, FilterAll, "", 1)
	assert.Equal(t, 1, empty.Number)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("all")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("inactive")
	require.NoError(t, err)
	assert.Equal(t, Filter(model.StatusInactive), f)

	_, err = ParseFilter("churned")
	assert.Error(t, err)
}
