package cronwheel

import "sort"

// fieldSet is an ascending, deduplicated set of integers within a bounded
// range. It is the Go analogue of the TreeSet<Integer> used by the Quartz
// cron engine this package's next-fire algorithm is modeled on: lookups are
// expressed as "smallest member >= v" (a tail-set search) and "smallest
// member" (the head), exactly as spec.md's data model describes.
//
// The teacher library (go-cron) represents the small fields (seconds,
// minutes, hours, month, day-of-week) as uint64 bitsets, which is faster
// but caps the domain at 64 values. The year field here ranges over 230
// values (1970-2199), so fieldSet generalizes the teacher's approach to an
// ordered slice, used uniformly across every field for one consistent
// representation.
type fieldSet struct {
	values []int // strictly ascending, deduplicated
}

// bounds describes the legal range and optional name table for one cron
// field.
type bounds struct {
	min, max int
	names    map[string]int
}

func newFieldSet(vals map[int]struct{}) fieldSet {
	fs := fieldSet{values: make([]int, 0, len(vals))}
	for v := range vals {
		fs.values = append(fs.values, v)
	}
	sort.Ints(fs.values)
	return fs
}

// ceil returns the smallest member >= v, and whether one exists.
func (fs fieldSet) ceil(v int) (int, bool) {
	i := sort.SearchInts(fs.values, v)
	if i == len(fs.values) {
		return 0, false
	}
	return fs.values[i], true
}

// head returns the smallest member of the set.
func (fs fieldSet) head() (int, bool) {
	if len(fs.values) == 0 {
		return 0, false
	}
	return fs.values[0], true
}

// floor returns the largest member <= v, and whether one exists.
func (fs fieldSet) floor(v int) (int, bool) {
	i := sort.SearchInts(fs.values, v+1)
	if i == 0 {
		return 0, false
	}
	return fs.values[i-1], true
}

// tail returns the largest member of the set.
func (fs fieldSet) tail() (int, bool) {
	if len(fs.values) == 0 {
		return 0, false
	}
	return fs.values[len(fs.values)-1], true
}

// contains reports whether v is a member of the set.
func (fs fieldSet) contains(v int) bool {
	i := sort.SearchInts(fs.values, v)
	return i < len(fs.values) && fs.values[i] == v
}

// empty reports whether the set has no members.
func (fs fieldSet) empty() bool { return len(fs.values) == 0 }

var (
	secondsBounds = bounds{min: 0, max: 59}
	minutesBounds = bounds{min: 0, max: 59}
	hoursBounds   = bounds{min: 0, max: 23}
	domBounds     = bounds{min: 1, max: 31}
	monthBounds   = bounds{min: 1, max: 12, names: map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}}
	// dow follows spec.md's 1-7 / 1=Sunday numbering, distinct from the
	// teacher library's 0-6 / 0=Sunday numbering.
	dowBounds = bounds{min: 1, max: 7, names: map[string]int{
		"sun": 1, "mon": 2, "tue": 3, "wed": 4, "thu": 5, "fri": 6, "sat": 7,
	}}
	yearBounds = bounds{min: minYear, max: maxYear}
)

const (
	minYear = 1970
	// maxYear is the MAX_YEAR bound from spec.md §4.A, carried over from the
	// Quartz-derived CronExpression.MAX_YEAR constant in original_source.
	maxYear = 2199
)

// weekdayOf converts a Go time.Weekday (Sunday=0) into spec.md's 1-7 /
// 1=Sunday numbering.
func weekdayOf(wd int) int { return wd + 1 }
