package collection

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	Nom       string
	Ville     string
	DateAjout string
}

type car struct {
	Modele  string
	Prix    float64
	Options []string
}

func clientFixture(n int) []client {
	items := make([]client, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, client{
			Nom:       fmt.Sprintf("Client%02d", i),
			Ville:     "Rabat",
			DateAjout: "2024-01-02T10:00:00",
		})
	}
	return items
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	items := clientFixture(5)

	page := Apply(items, Query[client]{})

	assert.Equal(t, items, page.Items)
	assert.Equal(t, 5, page.TotalMatching)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestApplyPreservesInsertionOrderWithoutSort(t *testing.T) {
	items := []client{{Nom: "Zora"}, {Nom: "Anna"}, {Nom: "Karim"}}

	page := Apply(items, Query[client]{})

	require.Len(t, page.Items, 3)
	assert.Equal(t, "Zora", page.Items[0].Nom)
	assert.Equal(t, "Anna", page.Items[1].Nom)
	assert.Equal(t, "Karim", page.Items[2].Nom)
}

func TestApplyPaginationBoundaries(t *testing.T) {
	items := clientFixture(17)
	q := Query[client]{PageSize: 8}

	q.Page = 1
	page := Apply(items, q)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 8)

	q.Page = 3
	page = Apply(items, q)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "Client16", page.Items[0].Nom)

	// Out-of-range page clamps to the last page
	q.Page = 99
	page = Apply(items, q)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Items, 1)
}

func TestApplyIsIdempotent(t *testing.T) {
	items := clientFixture(17)
	q := Query[client]{
		Search:       "client1",
		SearchFields: []func(client) string{func(c client) string { return c.Nom }},
		Sort:         CompareStrings(func(c client) string { return c.Nom }),
		Descending:   true,
		Page:         2,
		PageSize:     3,
	}

	first := Apply(items, q)
	second := Apply(items, q)

	assert.Equal(t, first, second)
}

func TestApplyCaseInsensitiveSubstringSearch(t *testing.T) {
	items := []client{
		{Nom: "Alami", Ville: "Tétouan"},
		{Nom: "Bennis", Ville: "Tanger"},
	}
	q := Query[client]{
		Filters: []Filter[client]{
			Text("tet", func(c client) string { return c.Ville }),
		},
	}

	page := Apply(items, q)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alami", page.Items[0].Nom)
}

func TestApplySearchOverMultipleFields(t *testing.T) {
	items := []client{
		{Nom: "Alami", Ville: "Rabat"},
		{Nom: "Bennis", Ville: "Casablanca"},
		{Nom: "Casa", Ville: "Fes"},
	}
	q := Query[client]{
		Search: "CASA",
		SearchFields: []func(client) string{
			func(c client) string { return c.Nom },
			func(c client) string { return c.Ville },
		},
	}

	page := Apply(items, q)

	// Matches both the client named Casa and the one living in Casablanca,
	// keeping insertion order.
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Bennis", page.Items[0].Nom)
	assert.Equal(t, "Casa", page.Items[1].Nom)
}

func TestApplyFiltersCombineWithAnd(t *testing.T) {
	items := []client{
		{Nom: "Alami", Ville: "Rabat", DateAjout: "2024-03-01"},
		{Nom: "Bennis", Ville: "Rabat", DateAjout: "2022-03-01"},
		{Nom: "Cherkaoui", Ville: "Fes", DateAjout: "2024-03-01"},
	}
	q := Query[client]{
		Filters: []Filter[client]{
			Equals("Rabat", func(c client) string { return c.Ville }),
			DateRange("2024-01-01", "2024-12-31", func(c client) (time.Time, bool) {
				return ParseItemDate(c.DateAjout)
			}),
		},
	}

	page := Apply(items, q)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alami", page.Items[0].Nom)
}

func TestApplyStableSortFlipsWithDirection(t *testing.T) {
	items := []car{
		{Modele: "clio", Prix: 30},
		{Modele: "Golf", Prix: 50},
		{Modele: "CLIO", Prix: 40},
	}
	q := Query[car]{Sort: CompareStrings(func(c car) string { return c.Modele })}

	asc := Apply(items, q)
	require.Len(t, asc.Items, 3)
	// Case-insensitive: both clios sort before Golf, stably in input order.
	assert.Equal(t, 30.0, asc.Items[0].Prix)
	assert.Equal(t, 40.0, asc.Items[1].Prix)
	assert.Equal(t, "Golf", asc.Items[2].Modele)

	q.Descending = true
	desc := Apply(items, q)
	assert.Equal(t, "Golf", desc.Items[0].Modele)
}

func TestApplyNumericSort(t *testing.T) {
	items := []car{{Prix: 50}, {Prix: 30}, {Prix: 40}}
	q := Query[car]{Sort: CompareFloats(func(c car) float64 { return c.Prix })}

	page := Apply(items, q)

	assert.Equal(t, []car{{Prix: 30}, {Prix: 40}, {Prix: 50}}, page.Items)
}

func TestOptionsFilterRequiresSuperset(t *testing.T) {
	vehicle := car{Modele: "Clio", Options: []string{"GPS", "Bluetooth"}}

	gps := Options([]string{"GPS"}, func(c car) []string { return c.Options })
	assert.True(t, gps(vehicle))

	gpsClim := Options([]string{"GPS", "Climatisation"}, func(c car) []string { return c.Options })
	assert.False(t, gpsClim(vehicle))

	none := Options(nil, func(c car) []string { return c.Options })
	assert.Nil(t, none)
}

func TestDateRangeSingleBound(t *testing.T) {
	parse := func(c client) (time.Time, bool) { return ParseItemDate(c.DateAjout) }
	early := client{DateAjout: "2020-05-01"}
	late := client{DateAjout: "2025-05-01"}

	onlyStart := DateRange("2023-01-01", "", parse)
	assert.False(t, onlyStart(early))
	assert.True(t, onlyStart(late))

	onlyEnd := DateRange("", "2023-01-01", parse)
	assert.True(t, onlyEnd(early))
	assert.False(t, onlyEnd(late))
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	parse := func(c client) (time.Time, bool) { return ParseItemDate(c.DateAjout) }
	f := DateRange("2024-01-01", "2024-01-31", parse)

	assert.True(t, f(client{DateAjout: "2024-01-01"}))
	assert.True(t, f(client{DateAjout: "2024-01-31T18:30:00"}), "end date included fully")
	assert.False(t, f(client{DateAjout: "2024-02-01"}))
}

func TestDateRangeMalformedItemDateIsExcludedNotFatal(t *testing.T) {
	items := []client{
		{Nom: "Good", DateAjout: "2024-01-15"},
		{Nom: "Broken", DateAjout: "not-a-date"},
	}
	parse := func(c client) (time.Time, bool) { return ParseItemDate(c.DateAjout) }

	withFilter := Apply(items, Query[client]{
		Filters: []Filter[client]{DateRange("2024-01-01", "2024-12-31", parse)},
	})
	require.Len(t, withFilter.Items, 1)
	assert.Equal(t, "Good", withFilter.Items[0].Nom)

	// Inactive date filter: the malformed item is still visible.
	withoutFilter := Apply(items, Query[client]{})
	assert.Len(t, withoutFilter.Items, 2)
}

func TestDateRangeMalformedBoundMatchesNothing(t *testing.T) {
	parse := func(c client) (time.Time, bool) { return ParseItemDate(c.DateAjout) }
	f := DateRange("garbage", "", parse)

	assert.False(t, f(client{DateAjout: "2024-01-15"}))
}

func TestEqualsSentinelPassesEverything(t *testing.T) {
	assert.Nil(t, Equals("", func(c client) string { return c.Ville }))
	assert.Nil(t, Equals("all", func(c client) string { return c.Ville }))
}

func TestDistinct(t *testing.T) {
	items := []client{
		{Ville: "Tanger"},
		{Ville: "Rabat"},
		{Ville: "Tanger"},
		{Ville: ""},
	}

	got := Distinct(items, func(c client) string { return c.Ville })

	assert.Equal(t, []string{"Rabat", "Tanger"}, got)
}

func TestMatchedItemAppearsAtItsRankOnly(t *testing.T) {
	items := clientFixture(17)
	q := Query[client]{PageSize: 8}

	seen := map[string]int{}
	for p := 1; p <= 3; p++ {
		q.Page = p
		for _, item := range Apply(items, q).Items {
			_, dup := seen[item.Nom]
			require.False(t, dup, "item %s appeared on two pages", item.Nom)
			seen[item.Nom] = p
		}
	}

	assert.Len(t, seen, 17)
	assert.Equal(t, 2, seen["Client08"], "rank 9 lands on page 2")
}
