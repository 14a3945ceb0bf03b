package cronwheel

import (
	"testing"
	"time"
)

func mustParseIn(t *testing.T, spec string, loc *time.Location) *CronExpression {
	t.Helper()
	ce, err := NewParser(WithParserLocation(loc)).Parse(spec)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", spec, err)
	}
	return ce
}

func TestNextValidAfterEverySecond(t *testing.T) {
	ce := mustParseIn(t, "* * * * * ?", time.UTC)
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	next, ok := ce.NextValidAfter(t0)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want := t0.Add(time.Second)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

// Scenario 3 (spec.md §8): weekday-nearest must stay within the month.
func TestNextValidAfterNearestWeekday(t *testing.T) {
	ce := mustParseIn(t, "0 0 9 1W * ?", time.UTC)
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // Saturday

	next, ok := ce.NextValidAfter(t0)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC) // Monday, same month
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

// Scenario 4: last Friday of the month.
func TestNextValidAfterLastWeekdayOfMonth(t *testing.T) {
	ce := mustParseIn(t, "0 0 22 ? * 6L", time.UTC) // Friday = 6 in 1=Sunday numbering
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	next, ok := ce.NextValidAfter(t0)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want := time.Date(2024, 3, 29, 22, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

// Scenario 5: fifth occurrence absent must carry to a month that has one.
func TestNextValidAfterFifthOccurrence(t *testing.T) {
	ce := mustParseIn(t, "0 0 10 ? * 2#5", time.UTC) // Monday = 2

	next1, ok := ce.NextValidAfter(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want1 := time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)
	if !next1.Equal(want1) {
		t.Errorf("next1 = %v, want %v", next1, want1)
	}

	next2, ok := ce.NextValidAfter(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want2 := time.Date(2024, 4, 29, 10, 0, 0, 0, time.UTC)
	if !next2.Equal(want2) {
		t.Errorf("next2 = %v, want %v", next2, want2)
	}
}

// Scenario 7: exhaustion beyond the year field's upper bound.
func TestNextValidAfterExhaustion(t *testing.T) {
	ce := mustParseIn(t, "0 0 0 1 1 ? 2199", time.UTC)

	_, ok := ce.NextValidAfter(time.Date(2199, 1, 2, 0, 0, 0, 0, time.UTC))
	if ok {
		t.Error("expected exhaustion (no next fire), got a result")
	}
}

func TestNextValidAfterIdempotent(t *testing.T) {
	ce := mustParseIn(t, "0 */15 * * * ?", time.UTC)
	t0 := time.Date(2024, 6, 1, 12, 3, 0, 0, time.UTC)

	next, ok := ce.NextValidAfter(t0)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	again, ok := ce.NextValidAfter(next.Add(-time.Nanosecond))
	if !ok {
		t.Fatal("expected a next fire time")
	}
	if !again.Equal(next) {
		t.Errorf("next_valid_after(next - 1ns) = %v, want %v", again, next)
	}
}

func TestNextValidAfterMonotonic(t *testing.T) {
	ce := mustParseIn(t, "*/7 * * * * ?", time.UTC)
	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	n1, ok := ce.NextValidAfter(t1)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	t2 := t1.Add(time.Millisecond)
	n2, ok := ce.NextValidAfter(t2)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	if !n1.Equal(n2) {
		t.Errorf("n1=%v n2=%v, want equal for t1<t2<=n1", n1, n2)
	}
}

func TestTimeBeforeAlwaysUnimplemented(t *testing.T) {
	ce := mustParseIn(t, "* * * * * ?", time.UTC)
	_, ok := ce.TimeBefore(time.Now())
	if ok {
		t.Error("TimeBefore should always return ok=false")
	}
}

func TestFinalFireTimeBoundedYear(t *testing.T) {
	ce := mustParseIn(t, "0 0 0 1 1 ? 2024", time.UTC)
	final, ok := ce.FinalFireTime()
	if !ok {
		t.Fatal("expected a final fire time for a bounded year expression")
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !final.Equal(want) {
		t.Errorf("final = %v, want %v", final, want)
	}
}

func TestFinalFireTimeUnbounded(t *testing.T) {
	ce := mustParseIn(t, "* * * * * ?", time.UTC)
	_, ok := ce.FinalFireTime()
	if ok {
		t.Error("unbounded expression should have no final fire time")
	}
}

func TestSummaryListsEveryField(t *testing.T) {
	ce := mustParseIn(t, "0 0 12 * * ?", time.UTC)
	summary := ce.Summary()
	for _, want := range []string{"seconds:", "minutes:", "hours:", "dayOfMonth:", "month:", "dayOfWeek:", "year:"} {
		if !contains(summary, want) {
			t.Errorf("Summary() missing %q: %s", want, summary)
		}
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
