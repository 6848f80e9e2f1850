package bookingclient

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "go.uber.org/zap/zaptest/observer"
)

func TestFormatDateUsesLocalCalendarFields(t *testing.T) {
    loc, err := time.LoadLocation("Pacific/Kiritimati") // UTC+14
    require.NoError(t, err)
    // Late evening in Kiritimati is still the previous day in UTC; the
    // formatted date must follow the wall clock, not UTC.
    late := time.Date(2025, 4, 15, 23, 30, 0, 0, loc)
    assert.Equal(t, "2025-04-15", FormatDate(late))
}

func TestParseDateOrToday(t *testing.T) {
    t.Run("valid input parses", func(t *testing.T) {
        core, logs := observer.New(zapcore.DebugLevel)
        d := ParseDateOrToday("2025-05-01", zap.New(core))
        assert.Equal(t, "2025-05-01", d.String())
        assert.Empty(t, logs.All())
    })

    t.Run("garbage falls back to today with a warning", func(t *testing.T) {
        core, logs := observer.New(zapcore.DebugLevel)
        d := ParseDateOrToday("yesterday-ish", zap.New(core))
        assert.Equal(t, Today().String(), d.String())

        entries := logs.All()
        require.Len(t, entries, 1)
        assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
        assert.Equal(t, "yesterday-ish", entries[0].ContextMap()["input"])
    })

    t.Run("nil logger tolerated", func(t *testing.T) {
        d := ParseDateOrToday("not-a-date", nil)
        assert.Equal(t, Today().String(), d.String())
    })
}

func TestSetBookingDateNormalizesGarbage(t *testing.T) {
    core, logs := observer.New(zapcore.DebugLevel)
    f := NewForm(nil, zap.New(core))

    f.SetBookingDate("2025-05-01")
    assert.Equal(t, "2025-05-01", f.Draft.BookingDate)
    assert.Empty(t, logs.All())

    f.SetBookingDate("01/05/2025")
    assert.Equal(t, Today().String(), f.Draft.BookingDate)
    require.Len(t, logs.All(), 1)
    assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)

    // Clearing the field keeps it empty for Validate to reject.
    f.SetBookingDate("")
    assert.Empty(t, f.Draft.BookingDate)
}
