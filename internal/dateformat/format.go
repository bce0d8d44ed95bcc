// Package dateformat renders timestamps with date-fns style patterns such as
// "dd LLL yyyy".
package dateformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formatter renders timestamps in a fixed locale and time zone.
type Formatter struct {
	locale   Locale
	location *time.Location
}

// New returns a Formatter for the locale tag. A nil location means UTC.
func New(tag string, location *time.Location) (*Formatter, error) {
	l, ok := LookupLocale(tag)
	if !ok {
		return nil, fmt.Errorf("dateformat: unsupported locale %q", tag)
	}
	if location == nil {
		location = time.UTC
	}
	return &Formatter{locale: l, location: location}, nil
}

// Locale returns the formatter's locale tag.
func (f *Formatter) Locale() string {
	return f.locale.Tag
}

// Format renders t with pattern. A nil t yields "".
//
// Supported tokens: d dd M MM MMM MMMM L LL LLL LLLL y yy yyyy
// E EEE EEEE H HH m mm s ss. Text between single quotes is copied as is
// ('' is a literal quote); any other letter run is copied unchanged.
func (f *Formatter) Format(t *time.Time, pattern string) string {
	if t == nil {
		return ""
	}
	local := t.In(f.location)

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			i = f.writeQuoted(&b, runes, i)
			continue
		}
		if !isLetter(r) {
			b.WriteRune(r)
			i++
			continue
		}

		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		b.WriteString(f.token(local, r, j-i))
		i = j
	}
	return b.String()
}

func (f *Formatter) writeQuoted(b *strings.Builder, runes []rune, i int) int {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		b.WriteRune('\'')
		return i + 2
	}
	i++
	for i < len(runes) {
		if runes[i] == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			return i + 1
		}
		b.WriteRune(runes[i])
		i++
	}
	return i
}

func (f *Formatter) token(t time.Time, letter rune, n int) string {
	switch letter {
	case 'd':
		return pad(t.Day(), n)
	case 'M', 'L':
		switch {
		case n >= 4:
			return f.locale.Months[t.Month()-1]
		case n == 3:
			return f.locale.MonthsShort[t.Month()-1]
		default:
			return pad(int(t.Month()), n)
		}
	case 'y':
		if n == 2 {
			return pad(t.Year()%100, 2)
		}
		return pad(t.Year(), n)
	case 'E':
		if n >= 4 {
			return f.locale.Weekdays[t.Weekday()]
		}
		return f.locale.WeekdaysShort[t.Weekday()]
	case 'H':
		return pad(t.Hour(), n)
	case 'm':
		return pad(t.Minute(), n)
	case 's':
		return pad(t.Second(), n)
	}
	return strings.Repeat(string(letter), n)
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
