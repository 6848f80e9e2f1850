package model

import "time"

// Room represents a bookable meeting room.  List responses embed the
// room's bookings so the client can render occupancy without a second
// round trip.
//
// Fields:
//  ID        – primary key identifier.
//  RoomName  – display name, unique and non-empty.
//  Bookings  – bookings attached to this room (denormalized for display).
//  CreatedAt – creation timestamp, not exposed on the wire.
//  UpdatedAt – last update timestamp, not exposed on the wire.
type Room struct {
    ID        uint64    `json:"id"`
    RoomName  string    `json:"roomName"`
    Bookings  []Booking `json:"bookings"`
    CreatedAt time.Time `json:"-"`
    UpdatedAt time.Time `json:"-"`
}
