package model

import "time"

// Person represents someone who can hold bookings.  Both name fields
// are required on creation and update.  As with rooms, list responses
// embed the person's bookings.
type Person struct {
    ID        uint64    `json:"id"`
    FirstName string    `json:"firstName"`
    LastName  string    `json:"lastName"`
    Bookings  []Booking `json:"bookings"`
    CreatedAt time.Time `json:"-"`
    UpdatedAt time.Time `json:"-"`
}
