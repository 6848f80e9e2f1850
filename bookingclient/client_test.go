package bookingclient

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strconv"
    "strings"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/room-booking/internal/model"
)

// memoryAPI is a tiny in-memory stand-in for the booking API with the
// same conflict contract: overlapping submissions get a 409 carrying
// the free start hours for that room and date.
type memoryAPI struct {
    mu       sync.Mutex
    nextID   uint64
    bookings []model.Booking
}

func newMemoryAPI() *memoryAPI { return &memoryAPI{nextID: 1} }

func (m *memoryAPI) handler() http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
        switch r.Method {
        case http.MethodGet:
            m.mu.Lock()
            defer m.mu.Unlock()
            w.Header().Set("Content-Type", "application/json")
            list := m.bookings
            if list == nil {
                list = []model.Booking{}
            }
            _ = json.NewEncoder(w).Encode(list)
        case http.MethodPost:
            m.create(w, r)
        default:
            w.WriteHeader(http.StatusMethodNotAllowed)
        }
    })
    mux.HandleFunc("/bookings/", func(w http.ResponseWriter, r *http.Request) {
        id, err := strconv.ParseUint(strings.TrimPrefix(r.URL.Path, "/bookings/"), 10, 64)
        if err != nil || r.Method != http.MethodDelete {
            w.WriteHeader(http.StatusNotFound)
            return
        }
        m.mu.Lock()
        defer m.mu.Unlock()
        for i, b := range m.bookings {
            if b.ID == id {
                m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
                w.WriteHeader(http.StatusNoContent)
                return
            }
        }
        w.WriteHeader(http.StatusNotFound)
    })
    return mux
}

func (m *memoryAPI) create(w http.ResponseWriter, r *http.Request) {
    var req CreateBookingRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, "malformed body", http.StatusBadRequest)
        return
    }
    date, err := model.ParseDate(req.BookingDate)
    if err != nil {
        w.WriteHeader(http.StatusBadRequest)
        fmt.Fprint(w, "bookingDate must be formatted as YYYY-MM-DD")
        return
    }
    if !model.ValidSlotRange(req.StartSlot, req.EndSlot) {
        w.WriteHeader(http.StatusBadRequest)
        fmt.Fprintf(w, "slots must satisfy %d <= start < end <= %d", model.MinSlot, model.MaxSlot)
        return
    }

    m.mu.Lock()
    defer m.mu.Unlock()
    candidate := model.Booking{
        RoomID: req.RoomID, PersonID: req.PersonID,
        BookingDate: date, StartSlot: req.StartSlot, EndSlot: req.EndSlot,
    }
    var sameDay []model.Booking
    for _, b := range m.bookings {
        if b.RoomID == req.RoomID && b.BookingDate.Equal(date) {
            sameDay = append(sameDay, b)
        }
    }
    for _, b := range sameDay {
        if candidate.Overlaps(b) {
            w.Header().Set("Content-Type", "application/json")
            w.WriteHeader(http.StatusConflict)
            _ = json.NewEncoder(w).Encode(map[string]interface{}{
                "message":        "The room is already booked for the requested slots.",
                "roomId":         req.RoomID,
                "bookingDate":    req.BookingDate,
                "availableSlots": model.AvailableStartSlots(sameDay),
            })
            return
        }
    }
    candidate.ID = m.nextID
    m.nextID++
    m.bookings = append(m.bookings, candidate)
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    _ = json.NewEncoder(w).Encode(candidate)
}

func TestCreateBookingEndToEnd(t *testing.T) {
    api := newMemoryAPI()
    srv := httptest.NewServer(api.handler())
    defer srv.Close()
    c := NewClient(srv.URL, "")

    before, err := c.ListBookings(context.Background())
    require.NoError(t, err)
    assert.Empty(t, before)

    created, err := c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 1, PersonID: 1, BookingDate: "2025-05-01", StartSlot: 10, EndSlot: 11,
    })
    require.NoError(t, err)
    assert.Equal(t, uint64(1), created.ID)
    assert.Equal(t, "2025-05-01", created.BookingDate.String())

    after, err := c.ListBookings(context.Background())
    require.NoError(t, err)
    require.Len(t, after, 1)
    assert.Equal(t, created.ID, after[0].ID)
    assert.Equal(t, 10, after[0].StartSlot)
    assert.Equal(t, 11, after[0].EndSlot)
}

func TestCreateBookingConflictListsFreeHours(t *testing.T) {
    api := newMemoryAPI()
    srv := httptest.NewServer(api.handler())
    defer srv.Close()
    c := NewClient(srv.URL, "")

    _, err := c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 1, PersonID: 1, BookingDate: "2025-05-01", StartSlot: 10, EndSlot: 12,
    })
    require.NoError(t, err)

    _, err = c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 1, PersonID: 2, BookingDate: "2025-05-01", StartSlot: 11, EndSlot: 13,
    })
    var conflict *ConflictError
    require.ErrorAs(t, err, &conflict)
    assert.NotContains(t, conflict.AvailableSlots, 10)
    assert.NotContains(t, conflict.AvailableSlots, 11)
    assert.Contains(t, conflict.AvailableSlots, 12)
    assert.Contains(t, conflict.AvailableSlots, 9)

    // A different room on the same day is untouched by the conflict.
    _, err = c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 2, PersonID: 2, BookingDate: "2025-05-01", StartSlot: 11, EndSlot: 13,
    })
    require.NoError(t, err)
}

func TestCreateBookingRejectedBody(t *testing.T) {
    api := newMemoryAPI()
    srv := httptest.NewServer(api.handler())
    defer srv.Close()
    c := NewClient(srv.URL, "")

    _, err := c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 1, PersonID: 1, BookingDate: "05/01/2025", StartSlot: 10, EndSlot: 11,
    })
    var rejected *RejectedError
    require.ErrorAs(t, err, &rejected)
    assert.Equal(t, "bookingDate must be formatted as YYYY-MM-DD", rejected.Msg)
}

func TestDeleteBookingStatus(t *testing.T) {
    api := newMemoryAPI()
    srv := httptest.NewServer(api.handler())
    defer srv.Close()
    c := NewClient(srv.URL, "")

    created, err := c.CreateBooking(context.Background(), CreateBookingRequest{
        RoomID: 1, PersonID: 1, BookingDate: "2025-05-01", StartSlot: 1, EndSlot: 2,
    })
    require.NoError(t, err)

    require.NoError(t, c.DeleteBooking(context.Background(), created.ID))

    err = c.DeleteBooking(context.Background(), created.ID)
    var terr *TransportError
    require.ErrorAs(t, err, &terr)
    assert.Equal(t, http.StatusNotFound, terr.Status)
}

func TestClientSendsBearerToken(t *testing.T) {
    var got string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        got = r.Header.Get("Authorization")
        _ = json.NewEncoder(w).Encode([]model.Booking{})
    }))
    defer srv.Close()

    c := NewClient(srv.URL, "token-123")
    _, err := c.ListBookings(context.Background())
    require.NoError(t, err)
    assert.Equal(t, "Bearer token-123", got)
}

func TestUpdateBookingOutcomes(t *testing.T) {
    t.Run("ok", func(t *testing.T) {
        srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            assert.Equal(t, http.MethodPut, r.Method)
            assert.Equal(t, "/bookings/7", r.URL.Path)
            _, _ = w.Write([]byte(`{"id":7,"roomId":1,"personId":1,"bookingDate":"2025-05-01","startSlot":3,"endSlot":4}`))
        }))
        defer srv.Close()

        b, err := NewClient(srv.URL, "").UpdateBooking(context.Background(), 7, CreateBookingRequest{
            RoomID: 1, PersonID: 1, BookingDate: "2025-05-01", StartSlot: 3, EndSlot: 4,
        })
        require.NoError(t, err)
        assert.Equal(t, uint64(7), b.ID)
    })

    t.Run("conflict", func(t *testing.T) {
        srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            w.WriteHeader(http.StatusConflict)
            _, _ = w.Write([]byte(`{"message":"taken","availableSlots":[5]}`))
        }))
        defer srv.Close()

        _, err := NewClient(srv.URL, "").UpdateBooking(context.Background(), 7, CreateBookingRequest{})
        var conflict *ConflictError
        require.ErrorAs(t, err, &conflict)
        assert.Equal(t, []int{5}, conflict.AvailableSlots)
    })
}

func TestSubmitLogLevels(t *testing.T) {
    var payload map[string]interface{}
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/log", r.URL.Path)
        assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
        w.WriteHeader(http.StatusNoContent)
    }))
    defer srv.Close()

    c := NewClient(srv.URL, "")
    require.NoError(t, c.SubmitLog(context.Background(), LogLevelWarning, "slow response"))
    assert.Equal(t, float64(LogLevelWarning), payload["logLevel"])
    assert.Equal(t, "slow response", payload["message"])
}
