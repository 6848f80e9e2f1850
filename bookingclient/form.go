package bookingclient

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/model"
)

// State tracks where the booking form is in its submission flow.
type State int

const (
    // StateIdle means the form is editable and nothing is in flight.
    StateIdle State = iota
    // StateValidating is the short-lived local check before a request.
    StateValidating
    // StateSubmitting means a create request is in flight.
    StateSubmitting
    // StateSucceeded means the last submission created a booking.
    StateSucceeded
    // StateConflictPresented means the server returned alternative
    // slots and the form is waiting for the user to pick one.
    StateConflictPresented
    // StateRejected means the server refused the booking outright.
    StateRejected
)

func (s State) String() string {
    switch s {
    case StateIdle:
        return "idle"
    case StateValidating:
        return "validating"
    case StateSubmitting:
        return "submitting"
    case StateSucceeded:
        return "succeeded"
    case StateConflictPresented:
        return "conflict"
    case StateRejected:
        return "rejected"
    default:
        return fmt.Sprintf("state(%d)", int(s))
    }
}

// ValidationError is a local input problem found before any request
// is made.
type ValidationError struct {
    Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Draft holds the user's in-progress booking input. BookingDate is
// kept as the raw YYYY-MM-DD string the user typed.
type Draft struct {
    RoomID      uint64
    PersonID    uint64
    BookingDate string
    StartSlot   int
    EndSlot     int
}

// defaultDraft is the shape the form resets to after a successful
// submission: nothing selected, the smallest valid slot range, today.
func defaultDraft() Draft {
    return Draft{
        RoomID:      0,
        PersonID:    0,
        BookingDate: Today().String(),
        StartSlot:   model.MinSlot,
        EndSlot:     model.MinSlot + 1,
    }
}

// Form is the booking-form state machine. It owns the loaded lookup
// data, the current draft and the messages shown to the user. It is
// not safe for concurrent use; drive it from a single goroutine.
type Form struct {
    api *Client
    log *zap.Logger

    // Confirm gates destructive actions. When nil every deletion is
    // treated as declined.
    Confirm func(prompt string) bool

    State    State
    Draft    Draft
    Rooms    []model.Room
    Persons  []model.Person
    Bookings []model.Booking

    SuccessMessage  string
    ErrorMessage    string
    ConflictMessage string
    AvailableSlots  []int
}

// NewForm builds an idle form bound to the given API client.
func NewForm(api *Client, log *zap.Logger) *Form {
    if log == nil {
        log = zap.NewNop()
    }
    return &Form{
        api:   api,
        log:   log,
        State: StateIdle,
        Draft: defaultDraft(),
    }
}

// LoadAll fetches rooms and persons concurrently and then the booking
// list, so the lookup tables exist before booking rows reference
// them. Any failure is returned; the caller decides how to surface
// it.
func (f *Form) LoadAll(ctx context.Context) error {
    var (
        wg      sync.WaitGroup
        rooms   []model.Room
        persons []model.Person
        roomErr error
        persErr error
    )
    wg.Add(2)
    go func() {
        defer wg.Done()
        rooms, roomErr = f.api.ListRooms(ctx)
    }()
    go func() {
        defer wg.Done()
        persons, persErr = f.api.ListPersons(ctx)
    }()
    wg.Wait()
    if roomErr != nil {
        return fmt.Errorf("load rooms: %w", roomErr)
    }
    if persErr != nil {
        return fmt.Errorf("load persons: %w", persErr)
    }

    bookings, err := f.api.ListBookings(ctx)
    if err != nil {
        return fmt.Errorf("load bookings: %w", err)
    }
    f.Rooms = rooms
    f.Persons = persons
    f.Bookings = bookings
    return nil
}

// Validate checks the draft locally. On failure it sets ErrorMessage
// and returns a *ValidationError without touching the network.
func (f *Form) Validate() error {
    f.State = StateValidating
    var msg string
    switch {
    case f.Draft.RoomID == 0:
        msg = "Please select a room."
    case f.Draft.PersonID == 0:
        msg = "Please select a person."
    case f.Draft.BookingDate == "":
        msg = "Please choose a booking date."
    case f.Draft.StartSlot < model.MinSlot:
        msg = fmt.Sprintf("Start slot must be at least %d.", model.MinSlot)
    case f.Draft.EndSlot > model.MaxSlot:
        msg = fmt.Sprintf("End slot must be at most %d.", model.MaxSlot)
    case f.Draft.StartSlot >= f.Draft.EndSlot:
        msg = "Start slot must be before end slot."
    }
    if msg == "" {
        if _, err := model.ParseDate(f.Draft.BookingDate); err != nil {
            msg = "Booking date must look like YYYY-MM-DD."
        }
    }
    if msg != "" {
        f.State = StateIdle
        f.ErrorMessage = msg
        return &ValidationError{Msg: msg}
    }
    f.ErrorMessage = ""
    return nil
}

// Submit validates the draft and creates the booking. State ends in
// Succeeded, ConflictPresented or Rejected; transport failures return
// to Idle with a generic message and the condition is forwarded to
// the server log, best effort.
func (f *Form) Submit(ctx context.Context) error {
    f.clearMessages()
    if err := f.Validate(); err != nil {
        return err
    }

    f.State = StateSubmitting
    booking, err := f.api.CreateBooking(ctx, CreateBookingRequest{
        RoomID:      f.Draft.RoomID,
        PersonID:    f.Draft.PersonID,
        BookingDate: f.Draft.BookingDate,
        StartSlot:   f.Draft.StartSlot,
        EndSlot:     f.Draft.EndSlot,
    })
    if err == nil {
        f.Bookings = append(f.Bookings, *booking)
        f.SuccessMessage = fmt.Sprintf("Booking confirmed for %s, slots %d to %d.",
            booking.BookingDate, booking.StartSlot, booking.EndSlot)
        f.Draft = defaultDraft()
        f.State = StateSucceeded
        return nil
    }

    var conflict *ConflictError
    var rejected *RejectedError
    switch {
    case errors.As(err, &conflict):
        // Room, person and date stay put so the user can pick one of
        // the offered slots without re-entering everything.
        f.ConflictMessage = conflict.Msg
        f.AvailableSlots = conflict.AvailableSlots
        f.State = StateConflictPresented
    case errors.As(err, &rejected):
        f.ErrorMessage = rejected.Msg
        f.State = StateRejected
    default:
        f.ErrorMessage = "Booking failed, please try again."
        f.State = StateIdle
        f.log.Warn("booking submission failed", zap.Error(err))
        f.forwardFailure(err)
    }
    return err
}

// SetBookingDate records the user's date input. Non-empty input that
// does not parse as YYYY-MM-DD is normalized to today with a logged
// warning instead of being carried along to fail validation later.
// An empty string stays empty so Validate can still demand a date.
func (f *Form) SetBookingDate(s string) {
    if s == "" {
        f.Draft.BookingDate = ""
        return
    }
    f.Draft.BookingDate = ParseDateOrToday(s, f.log).String()
}

// UseAvailableSlot adopts one of the server's offered start hours:
// the draft becomes a one-hour booking at that slot and the form
// returns to Idle ready for resubmission.
func (f *Form) UseAvailableSlot(slot int) {
    f.Draft.StartSlot = slot
    f.Draft.EndSlot = slot + 1
    f.ConflictMessage = ""
    f.AvailableSlots = nil
    f.State = StateIdle
}

// DeleteBooking asks Confirm and, if granted, deletes the booking
// and drops it from the local list. A declined confirmation issues no
// request and is not an error.
func (f *Form) DeleteBooking(ctx context.Context, id uint64) error {
    if f.Confirm == nil || !f.Confirm(fmt.Sprintf("Delete booking %d?", id)) {
        return nil
    }
    if err := f.api.DeleteBooking(ctx, id); err != nil {
        f.ErrorMessage = "Could not delete the booking."
        f.log.Warn("booking deletion failed", zap.Uint64("booking_id", id), zap.Error(err))
        return err
    }
    kept := f.Bookings[:0]
    for _, b := range f.Bookings {
        if b.ID != id {
            kept = append(kept, b)
        }
    }
    f.Bookings = kept
    f.SuccessMessage = "Booking deleted."
    return nil
}

// RoomLabel resolves a room id to its display name, with a fallback
// when the id is not in the loaded list.
func (f *Form) RoomLabel(id uint64) string {
    for _, r := range f.Rooms {
        if r.ID == id {
            return r.RoomName
        }
    }
    return fmt.Sprintf("Unknown room (%d)", id)
}

// PersonLabel resolves a person id to a full name, with a fallback
// when the id is not in the loaded list.
func (f *Form) PersonLabel(id uint64) string {
    for _, p := range f.Persons {
        if p.ID == id {
            return p.FirstName + " " + p.LastName
        }
    }
    return fmt.Sprintf("Unknown person (%d)", id)
}

func (f *Form) clearMessages() {
    f.SuccessMessage = ""
    f.ErrorMessage = ""
    f.ConflictMessage = ""
    f.AvailableSlots = nil
}

// forwardFailure reports an unexpected submission failure to the
// server-side log endpoint. It must never loop back into itself, so
// its own failure is only logged locally.
func (f *Form) forwardFailure(cause error) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := f.api.SubmitLog(ctx, LogLevelError, "booking submission failed: "+cause.Error()); err != nil {
        f.log.Debug("client log forwarding failed", zap.Error(err))
    }
}
