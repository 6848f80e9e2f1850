package bookingclient

import (
    "time"

    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/model"
)

// FormatDate renders t as a YYYY-MM-DD calendar date using t's own
// location, so a booking made late at night does not drift to the
// next UTC day.
func FormatDate(t time.Time) string {
    return model.NewDate(t).String()
}

// Today returns the current calendar date in the local zone.
func Today() model.Date {
    return model.NewDate(time.Now())
}

// ParseDateOrToday parses a YYYY-MM-DD string. Unparseable input
// falls back to today's date with a warning rather than aborting the
// flow.
func ParseDateOrToday(s string, log *zap.Logger) model.Date {
    d, err := model.ParseDate(s)
    if err != nil {
        if log != nil {
            log.Warn("unparseable booking date, using today", zap.String("input", s))
        }
        return Today()
    }
    return d
}
