package collection

import "time"

// FilterSpec wires one named structured filter into a ViewModel: how to build
// the predicate from the current value, and (optionally) how to discover the
// selector's option set from the raw collection.
type FilterSpec[T any] struct {
	Name    string
	Build   func(value string) Filter[T]
	Options func(T) string // nil when the filter has no discoverable options
}

// Config describes one entity kind's list screen.
type Config[T any] struct {
	SearchFields []func(T) string
	SortFields   map[string]func(a, b T) int
	Filters      []FilterSpec[T]
	PageSize     int
}

// ViewModel holds the per-screen state: the raw collection as the gateway
// returned it, plus the user's current query.
type ViewModel[T any] struct {
	cfg   Config[T]
	items []T

	search     string
	filters    map[string]string
	sortKey    string
	descending bool
	page       int
}

func NewViewModel[T any](cfg Config[T]) *ViewModel[T] {
	return &ViewModel[T]{
		cfg:     cfg,
		filters: map[string]string{},
		page:    1,
	}
}

// SetItems replaces the raw collection (initial fetch or full reload).
func (vm *ViewModel[T]) SetItems(items []T) {
	vm.items = items
	vm.page = 1
}

// PatchItem replaces the item matched by the predicate, keeping the rest of
// the collection untouched (optimistic update after a successful write).
func (vm *ViewModel[T]) PatchItem(match func(T) bool, replacement T) bool {
	for i := range vm.items {
		if match(vm.items[i]) {
			vm.items[i] = replacement
			return true
		}
	}
	return false
}

// RemoveItem drops the first item matched by the predicate.
func (vm *ViewModel[T]) RemoveItem(match func(T) bool) bool {
	for i := range vm.items {
		if match(vm.items[i]) {
			vm.items = append(vm.items[:i], vm.items[i+1:]...)
			return true
		}
	}
	return false
}

func (vm *ViewModel[T]) SetSearch(term string) {
	vm.search = term
	vm.page = 1
}

func (vm *ViewModel[T]) SetFilter(name, value string) {
	vm.filters[name] = value
	vm.page = 1
}

// SetSort toggles direction when the same key is requested twice, matching
// how column-header sorting behaves.
func (vm *ViewModel[T]) SetSort(key string) {
	if vm.sortKey == key {
		vm.descending = !vm.descending
	} else {
		vm.sortKey = key
		vm.descending = false
	}
	vm.page = 1
}

func (vm *ViewModel[T]) SetPage(page int) {
	vm.page = page
}

func (vm *ViewModel[T]) ResetFilters() {
	vm.search = ""
	vm.filters = map[string]string{}
	vm.sortKey = ""
	vm.descending = false
	vm.page = 1
}

// Items exposes the raw collection so workflow-style writes can patch it in
// place. The slice is the ViewModel's own backing store: replace whole items,
// never mutate nested fields.
func (vm *ViewModel[T]) Items() []T {
	return vm.items
}

// FilterOptions returns the distinct values for a named filter, derived from
// the unfiltered collection as it currently stands. Deriving at read time
// keeps the selectors current after in-place patches written through Items(),
// while narrowing one filter still never empties the other selectors.
func (vm *ViewModel[T]) FilterOptions(name string) []string {
	for _, spec := range vm.cfg.Filters {
		if spec.Name == name && spec.Options != nil {
			return Distinct(vm.items, spec.Options)
		}
	}
	return nil
}

// Visible computes the current page. Pure with respect to the stored state:
// calling it twice yields identical output.
func (vm *ViewModel[T]) Visible() Page[T] {
	q := Query[T]{
		Search:       vm.search,
		SearchFields: vm.cfg.SearchFields,
		Page:         vm.page,
		PageSize:     vm.cfg.PageSize,
		Descending:   vm.descending,
	}
	for _, spec := range vm.cfg.Filters {
		if value := vm.filters[spec.Name]; value != "" {
			q.Filters = append(q.Filters, spec.Build(value))
		}
	}
	if cmp, ok := vm.cfg.SortFields[vm.sortKey]; ok {
		q.Sort = cmp
	}
	return Apply(vm.items, q)
}

// DateRangeValue packs the two bounds of a date-range filter into the single
// string value a FilterSpec carries ("start..end"; either side may be empty).
func DateRangeValue(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return start + ".." + end
}

// SplitDateRange is the inverse of DateRangeValue.
func SplitDateRange(value string) (start, end string) {
	for i := 0; i+1 < len(value); i++ {
		if value[i] == '.' && value[i+1] == '.' {
			return value[:i], value[i+2:]
		}
	}
	return value, ""
}

// DateRangeSpec builds a FilterSpec for a raw string date field.
func DateRangeSpec[T any](name string, get func(T) string) FilterSpec[T] {
	return FilterSpec[T]{
		Name: name,
		Build: func(value string) Filter[T] {
			start, end := SplitDateRange(value)
			return DateRange(start, end, func(item T) (time.Time, bool) {
				return ParseItemDate(get(item))
			})
		},
	}
}
