package cronwheel

import (
	"strconv"
	"strings"
	"time"
)

// Parse compiles a cron string into a CronExpression, following the grammar
// in spec.md §4.A: six or seven whitespace-separated fields —
// "seconds minutes hours day-of-month month day-of-week [year]".
//
// This mirrors the teacher library's getField/getRange tokenizer
// (parser.go's comma-then-range-then-step descent), generalized field by
// field to the richer day-of-month and day-of-week grammars (?, L, W, #)
// that spec.md requires and the teacher's standard crontab grammar does
// not have.
func Parse(spec string) (*CronExpression, error) {
	return NewParser().Parse(spec)
}

// MustParse is like Parse but panics on error. Intended for schedules that
// are compile-time constants.
func MustParse(spec string) *CronExpression {
	ce, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return ce
}

// Parser holds configuration for parsing cron strings. The zero value is
// ready to use; NewParser exists for symmetry with functional-option
// construction elsewhere in the package (option.go).
type Parser struct {
	location *time.Location
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...ParserOption) Parser {
	p := Parser{location: time.Local}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLocation sets the time zone new CronExpressions are interpreted
// in. Defaults to time.Local.
func WithParserLocation(loc *time.Location) ParserOption {
	return func(p *Parser) { p.location = loc }
}

// Parse compiles a cron string using this Parser's configuration.
func (p Parser) Parse(spec string) (*CronExpression, error) {
	original := spec
	fields := strings.Fields(spec)
	if len(fields) != 6 && len(fields) != 7 {
		return nil, newParseError(original, fieldSecond, spec,
			"expected 6 or 7 whitespace-separated fields")
	}

	seconds, err := parseSimpleField(original, fieldSecond, fields[0], secondsBounds)
	if err != nil {
		return nil, err
	}
	minutes, err := parseSimpleField(original, fieldMinute, fields[1], minutesBounds)
	if err != nil {
		return nil, err
	}
	hours, err := parseSimpleField(original, fieldHour, fields[2], hoursBounds)
	if err != nil {
		return nil, err
	}
	dom, err := parseDomField(original, fields[3])
	if err != nil {
		return nil, err
	}
	months, err := parseSimpleField(original, fieldMonth, fields[4], monthBounds)
	if err != nil {
		return nil, err
	}
	dow, err := parseDowField(original, fields[5])
	if err != nil {
		return nil, err
	}

	if dom.isAny == dow.isAny {
		return nil, newParseError(original, fieldDom, fields[3],
			"exactly one of day-of-month or day-of-week must be '?'")
	}

	years := fieldSet{}
	if len(fields) == 7 {
		years, err = parseSimpleField(original, fieldYear, fields[6], yearBounds)
		if err != nil {
			return nil, err
		}
	} else {
		years = newFieldSet(rangeSet(yearBounds.min, yearBounds.max, 1))
	}

	loc := p.location
	if loc == nil {
		loc = time.Local
	}

	return &CronExpression{
		seconds:            seconds,
		minutes:            minutes,
		hours:              hours,
		months:             months,
		years:              years,
		dom:                dom.set,
		domAny:             dom.isAny,
		nearestWeekday:     dom.nearestWeekday,
		nearestWeekdayDay:  dom.nearestWeekdayDay,
		lastDayOfMonth:     dom.lastDayOfMonth,
		lastDayOfMonthBack: dom.lastDayOfMonthBack,
		dow:                dow.set,
		dowAny:             dow.isAny,
		lastDayOfWeek:      dow.lastDayOfWeek,
		lastDayOfWeekDay:   dow.lastDayOfWeekDay,
		nthDayOfWeek:       dow.nth,
		nthDayOfWeekDay:    dow.nthDay,
		location:           loc,
		original:           original,
	}, nil
}

func rangeSet(lo, hi, step int) map[int]struct{} {
	out := make(map[int]struct{}, (hi-lo)/step+1)
	for v := lo; v <= hi; v += step {
		out[v] = struct{}{}
	}
	return out
}

// parseSimpleField parses the plain "*", ",", "-", "/" grammar shared by
// seconds, minutes, hours, month and year.
func parseSimpleField(original string, fn fieldName, field string, b bounds) (fieldSet, error) {
	vals := make(map[int]struct{})
	for _, part := range strings.Split(field, ",") {
		vs, err := parseRangeExpr(original, fn, part, b)
		if err != nil {
			return fieldSet{}, err
		}
		for _, v := range vs {
			vals[v] = struct{}{}
		}
	}
	if len(vals) == 0 {
		return fieldSet{}, newParseError(original, fn, field, "field yields no values")
	}
	return newFieldSet(vals), nil
}

// parseRangeExpr parses one comma-separated element: a literal, a named
// value, "a-b", "a-b/s", or "*/s".
func parseRangeExpr(original string, fn fieldName, expr string, b bounds) ([]int, error) {
	rangeAndStep := strings.SplitN(expr, "/", 2)
	base := rangeAndStep[0]

	step := 1
	if len(rangeAndStep) == 2 {
		s, err := strconv.Atoi(rangeAndStep[1])
		if err != nil || s <= 0 {
			return nil, newParseError(original, fn, expr, "step must be a positive integer")
		}
		step = s
	}

	var lo, hi int
	switch {
	case base == "*":
		lo, hi = b.min, b.max
	default:
		lowAndHigh := strings.SplitN(base, "-", 2)
		start, err := parseIntOrName(lowAndHigh[0], b.names)
		if err != nil {
			return nil, newParseError(original, fn, expr, err.Error())
		}
		if len(lowAndHigh) == 1 {
			lo, hi = start, start
			if len(rangeAndStep) == 2 {
				// "N/step" means "N through max, stepped".
				hi = b.max
			}
		} else {
			end, err := parseIntOrName(lowAndHigh[1], b.names)
			if err != nil {
				return nil, newParseError(original, fn, expr, err.Error())
			}
			lo, hi = start, end
		}
	}

	if lo < b.min || hi > b.max {
		return nil, newParseError(original, fn, expr, "value out of range")
	}
	if lo > hi {
		return nil, newParseError(original, fn, expr, "range start is after range end")
	}

	out := make([]int, 0, (hi-lo)/step+1)
	for v := lo; v <= hi; v += step {
		out = append(out, v)
	}
	return out, nil
}

func parseIntOrName(tok string, names map[string]int) (int, error) {
	if names != nil {
		if v, ok := names[strings.ToLower(tok)]; ok {
			return v, nil
		}
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// domField holds the parsed result of the day-of-month field, including
// its L/W specials.
type domField struct {
	set                fieldSet
	isAny              bool
	nearestWeekday     bool
	nearestWeekdayDay  int
	lastDayOfMonth     bool
	lastDayOfMonthBack int // the "n" in "L-n"; 0 for plain "L"
}

func parseDomField(original, field string) (domField, error) {
	switch {
	case field == "?":
		return domField{isAny: true}, nil
	case field == "L":
		return domField{lastDayOfMonth: true}, nil
	case strings.HasPrefix(field, "L-"):
		n, err := strconv.Atoi(field[2:])
		if err != nil || n < 0 {
			return domField{}, newParseError(original, fieldDom, field, "invalid L-n offset")
		}
		return domField{lastDayOfMonth: true, lastDayOfMonthBack: n}, nil
	case strings.HasSuffix(field, "W"):
		day, err := strconv.Atoi(strings.TrimSuffix(field, "W"))
		if err != nil || day < domBounds.min || day > domBounds.max {
			return domField{}, newParseError(original, fieldDom, field, "invalid weekday-nearest day")
		}
		return domField{nearestWeekday: true, nearestWeekdayDay: day}, nil
	default:
		set, err := parseSimpleField(original, fieldDom, field, domBounds)
		if err != nil {
			return domField{}, err
		}
		return domField{set: set}, nil
	}
}

// dowField holds the parsed result of the day-of-week field, including its
// L/# specials. Numbering follows spec.md: 1-7, 1=Sunday.
type dowField struct {
	set              fieldSet
	isAny            bool
	lastDayOfWeek    bool
	lastDayOfWeekDay int
	nth              int // 1..5; 0 if unused
	nthDay           int
}

func parseDowField(original, field string) (dowField, error) {
	switch {
	case field == "?":
		return dowField{isAny: true}, nil
	case strings.HasSuffix(field, "L"):
		day, err := parseIntOrName(strings.TrimSuffix(field, "L"), dowBounds.names)
		if err != nil || day < dowBounds.min || day > dowBounds.max {
			return dowField{}, newParseError(original, fieldDow, field, "invalid last-weekday-of-month token")
		}
		return dowField{lastDayOfWeek: true, lastDayOfWeekDay: day}, nil
	case strings.Contains(field, "#"):
		parts := strings.SplitN(field, "#", 2)
		day, err := parseIntOrName(parts[0], dowBounds.names)
		if err != nil || day < dowBounds.min || day > dowBounds.max {
			return dowField{}, newParseError(original, fieldDow, field, "invalid weekday before '#'")
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 || n > 5 {
			return dowField{}, newParseError(original, fieldDow, field, "occurrence must be 1-5")
		}
		return dowField{nth: n, nthDay: day}, nil
	default:
		set, err := parseSimpleField(original, fieldDow, field, dowBounds)
		if err != nil {
			return dowField{}, err
		}
		return dowField{set: set}, nil
	}
}
