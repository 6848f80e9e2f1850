package model

// Slot boundaries.  A slot is an integer hour-of-day index; valid
// bookings satisfy MinSlot <= start < end <= MaxSlot.
const (
    MinSlot = 1
    MaxSlot = 24
)

// ValidSlotRange reports whether [start, end) is a well-formed slot
// range within the daily domain.
func ValidSlotRange(start, end int) bool {
    return start < end && start >= MinSlot && end <= MaxSlot
}

// AvailableStartSlots returns, in ascending order, every start hour on
// which a one-hour booking could be placed given the existing bookings
// for one room and date.  It is used to build the availableSlots list
// of a conflict response.  The existing bookings are assumed to belong
// to the same room/date; their RoomID and BookingDate fields are not
// re-checked here.
func AvailableStartSlots(existing []Booking) []int {
    occupied := make(map[int]bool)
    for _, b := range existing {
        for s := b.StartSlot; s < b.EndSlot; s++ {
            occupied[s] = true
        }
    }
    free := make([]int, 0, MaxSlot-MinSlot)
    // MaxSlot itself cannot start a booking: end would exceed the domain.
    for s := MinSlot; s < MaxSlot; s++ {
        if !occupied[s] {
            free = append(free, s)
        }
    }
    return free
}
