// Package repository implements the data access layer on top of MySQL.
// This file defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import (
    "errors"
    "fmt"
)

// ErrRoomNotFound is returned when a room identifier does not match any
// row. Handlers should translate this into an HTTP 404 response, or
// into a 400 when the id arrived inside a booking request body.
var ErrRoomNotFound = errors.New("room not found")

// ErrPersonNotFound is the person analogue of ErrRoomNotFound.
var ErrPersonNotFound = errors.New("person not found")

// ErrBookingNotFound is returned when a booking identifier does not
// match any row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomNameExists is returned when creating or renaming a room to a
// name that is already taken. Handlers should translate this into an
// HTTP 409 response.
var ErrRoomNameExists = errors.New("room name already exists")

// ConflictError is returned by booking creation and update when the
// requested slot range overlaps an existing booking for the same room
// and date. It carries everything the conflict response body needs:
// the ordered list of free start hours the caller may pick instead of
// the range that was refused.
type ConflictError struct {
    RoomID         uint64
    BookingDate    string
    AvailableSlots []int
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
    return fmt.Sprintf("booking conflict for room %d on %s", e.RoomID, e.BookingDate)
}

// Message is the user-facing text placed in the 409 body.
func (e *ConflictError) Message() string {
    return "The room is already booked for the requested slots."
}
