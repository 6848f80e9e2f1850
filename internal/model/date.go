package model

import (
    "database/sql/driver"
    "fmt"
    "strings"
    "time"
)

// DateLayout is the wire format for booking dates.  The API exchanges
// plain calendar dates ("2025-04-15") with no time or zone component.
const DateLayout = "2006-01-02"

// Date is a calendar date.  It wraps a time.Time pinned to midnight UTC
// but is compared and serialized using calendar fields only, so a date
// entered by a user in any timezone survives a round trip unchanged.
// Building a Date from a local time.Time must therefore read the local
// year/month/day rather than converting the instant to UTC first, which
// would shift the day for users west of Greenwich.
type Date struct {
    t time.Time
}

// NewDate builds a Date from the calendar fields of t as observed in
// t's own location.
func NewDate(t time.Time) Date {
    y, m, d := t.Date()
    return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the host's local timezone.
func Today() Date {
    return NewDate(time.Now())
}

// ParseDate parses a "YYYY-MM-DD" string.  Surrounding whitespace is
// tolerated; anything else is an error.
func ParseDate(s string) (Date, error) {
    s = strings.TrimSpace(s)
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
    }
    return Date{t: t}, nil
}

// String renders the date in wire format.
func (d Date) String() string {
    return d.t.Format(DateLayout)
}

// IsZero reports whether the date has never been set.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal compares two dates by calendar fields.
func (d Date) Equal(o Date) bool {
    y1, m1, d1 := d.t.Date()
    y2, m2, d2 := o.t.Date()
    return y1 == y2 && m1 == m2 && d1 == d2
}

// Time exposes the underlying midnight-UTC instant for storage.
func (d Date) Time() time.Time { return d.t }

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
    return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
    s := strings.Trim(string(b), `"`)
    parsed, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

// Scan implements sql.Scanner.  MySQL DATE columns arrive either as
// time.Time (parseTime=true) or as raw bytes depending on the driver
// configuration, so both are handled.
func (d *Date) Scan(src interface{}) error {
    switch v := src.(type) {
    case time.Time:
        *d = NewDate(v)
        return nil
    case []byte:
        parsed, err := ParseDate(string(v))
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    case string:
        parsed, err := ParseDate(v)
        if err != nil {
            return err
        }
        *d = parsed
        return nil
    }
    return fmt.Errorf("cannot scan %T into model.Date", src)
}

// Value implements driver.Valuer so a Date can be passed directly as a
// query argument.
func (d Date) Value() (driver.Value, error) {
    return d.String(), nil
}
