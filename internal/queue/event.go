// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that processes them.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/room-booking/internal/model"
)

// BookingCreatedQueue is the durable queue carrying creation events.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published when a booking is successfully
// created. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingCreatedEvent struct {
    EventID     string `json:"event_id"`
    BookingID   uint64 `json:"booking_id"`
    RoomID      uint64 `json:"room_id"`
    PersonID    uint64 `json:"person_id"`
    BookingDate string `json:"booking_date"`
    StartSlot   int    `json:"start_slot"`
    EndSlot     int    `json:"end_slot"`
    CreatedAt   string `json:"created_at"`
}

// NewBookingCreatedEvent builds the event for a stored booking. Each
// event carries a fresh UUID so consumers can deduplicate redeliveries.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
    return BookingCreatedEvent{
        EventID:     uuid.NewString(),
        BookingID:   b.ID,
        RoomID:      b.RoomID,
        PersonID:    b.PersonID,
        BookingDate: b.BookingDate.String(),
        StartSlot:   b.StartSlot,
        EndSlot:     b.EndSlot,
        CreatedAt:   time.Now().UTC().Format(time.RFC3339),
    }
}
