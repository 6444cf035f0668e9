package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ErrPeriod is returned for unparseable reporting periods.
var ErrPeriod = errors.New("invalid period")

// Period is an inclusive reporting window.
type Period struct {
	Start civil.Date
	End   civil.Date
}

// Year is the whole calendar year y.
func Year(y int) Period {
	return Period{
		Start: civil.Date{Year: y, Month: time.January, Day: 1},
		End:   civil.Date{Year: y, Month: time.December, Day: 31},
	}
}

// Range is the window [start, end].
func Range(start, end civil.Date) Period {
	return Period{Start: start, End: end}
}

// ParsePeriod accepts a 4-digit year ("2020") or an explicit range
// ("2020-01-01:2020-06-30", ".." is accepted as separator too).
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 {
		y, err := strconv.Atoi(s)
		if err != nil {
			return Period{}, fmt.Errorf("%w: %q", ErrPeriod, s)
		}
		return Year(y), nil
	}

	sep := ":"
	if strings.Contains(s, "..") {
		sep = ".."
	}
	parts := strings.SplitN(s, sep, 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q, want YYYY or YYYY-MM-DD:YYYY-MM-DD", ErrPeriod, s)
	}
	start, err := civil.ParseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return Period{}, fmt.Errorf("%w: start: %v", ErrPeriod, err)
	}
	end, err := civil.ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return Period{}, fmt.Errorf("%w: end: %v", ErrPeriod, err)
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end %s before start %s", ErrPeriod, end, start)
	}
	return Range(start, end), nil
}

// Contains reports whether d falls inside the window.
func (p Period) Contains(d civil.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	if p.Start.Month == time.January && p.Start.Day == 1 &&
		p.End.Month == time.December && p.End.Day == 31 && p.Start.Year == p.End.Year {
		return strconv.Itoa(p.Start.Year)
	}
	return p.Start.String() + ":" + p.End.String()
}

// Window returns the half-open row range [lo, hi) of the sorted dates that fall
// inside p. lo == hi when nothing does.
func (p Period) Window(dates []civil.Date) (lo, hi int) {
	lo = len(dates)
	for i, d := range dates {
		if !d.Before(p.Start) {
			lo = i
			break
		}
	}
	hi = lo
	for hi < len(dates) && !dates[hi].After(p.End) {
		hi++
	}
	return lo, hi
}
