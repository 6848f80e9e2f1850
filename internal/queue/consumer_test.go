package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestAppendBookingLogWritesOneLinePerEvent(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")

    ev := BookingCreatedEvent{
        EventID:     "ev-123",
        BookingID:   7,
        RoomID:      2,
        PersonID:    5,
        BookingDate: "2025-05-01",
        StartSlot:   10,
        EndSlot:     12,
        CreatedAt:   "2025-05-01T09:00:00Z",
    }
    body, err := json.Marshal(ev)
    require.NoError(t, err)

    require.NoError(t, appendBookingLog(dir, body))
    require.NoError(t, appendBookingLog(dir, body))

    data, err := os.ReadFile(filepath.Join(dir, "booking.log"))
    require.NoError(t, err)

    want := "[2025-05-01T09:00:00Z] Booking created | event=ev-123 | booking_id=7 | room_id=2 | person_id=5 | date=2025-05-01 | slots=10-12\n"
    assert.Equal(t, want+want, string(data))
}

func TestAppendBookingLogRejectsMalformedBody(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")

    err := appendBookingLog(dir, []byte("{not json"))
    require.Error(t, err)

    // Nothing should be written for a message we could not decode.
    _, statErr := os.Stat(filepath.Join(dir, "booking.log"))
    assert.True(t, os.IsNotExist(statErr))
}
