package model

import "time"

// Booking represents a reservation of a room by a person for a
// contiguous range of hourly slots on a single calendar date.  The
// range is half-open: a booking with StartSlot 10 and EndSlot 11
// occupies the 10:00-11:00 hour only.
//
// Fields:
//  ID          – primary key, 0 before the server assigns one.
//  RoomID      – references rooms.id.
//  PersonID    – references persons.id.
//  BookingDate – calendar date of the booking.
//  StartSlot   – first occupied hour-of-day index (inclusive).
//  EndSlot     – hour-of-day index where the booking ends (exclusive).
//  CreatedAt   – creation timestamp, not exposed on the wire.
type Booking struct {
    ID          uint64    `json:"id"`
    RoomID      uint64    `json:"roomId"`
    PersonID    uint64    `json:"personId"`
    BookingDate Date      `json:"bookingDate"`
    StartSlot   int       `json:"startSlot"`
    EndSlot     int       `json:"endSlot"`
    CreatedAt   time.Time `json:"-"`
}

// Overlaps reports whether two bookings occupy intersecting slot
// ranges for the same room on the same date.
func (b Booking) Overlaps(o Booking) bool {
    if b.RoomID != o.RoomID || !b.BookingDate.Equal(o.BookingDate) {
        return false
    }
    return b.StartSlot < o.EndSlot && o.StartSlot < b.EndSlot
}
