package bookingclient

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "sync/atomic"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/model"
)

// countingServer records how many requests hit each method+path and
// lets the test script the booking endpoint's response.
type countingServer struct {
    srv      *httptest.Server
    requests int64
    deletes  int64
    handler  http.HandlerFunc
}

func newCountingServer(t *testing.T, bookingHandler http.HandlerFunc) *countingServer {
    t.Helper()
    cs := &countingServer{handler: bookingHandler}
    mux := http.NewServeMux()
    mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt64(&cs.requests, 1)
        _ = json.NewEncoder(w).Encode(map[string]interface{}{"rooms": []model.Room{
            {ID: 1, RoomName: "Blue Room", Bookings: []model.Booking{}},
        }})
    })
    mux.HandleFunc("/persons", func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt64(&cs.requests, 1)
        _ = json.NewEncoder(w).Encode(map[string]interface{}{"persons": []model.Person{
            {ID: 1, FirstName: "Ada", LastName: "Lovelace", Bookings: []model.Booking{}},
        }})
    })
    mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt64(&cs.requests, 1)
        if r.Method == http.MethodGet {
            _ = json.NewEncoder(w).Encode([]model.Booking{})
            return
        }
        cs.handler(w, r)
    })
    mux.HandleFunc("/bookings/", func(w http.ResponseWriter, r *http.Request) {
        atomic.AddInt64(&cs.requests, 1)
        if r.Method == http.MethodDelete {
            atomic.AddInt64(&cs.deletes, 1)
            w.WriteHeader(http.StatusNoContent)
            return
        }
        cs.handler(w, r)
    })
    mux.HandleFunc("/log", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusNoContent)
    })
    cs.srv = httptest.NewServer(mux)
    t.Cleanup(cs.srv.Close)
    return cs
}

func (cs *countingServer) form() *Form {
    return NewForm(NewClient(cs.srv.URL, ""), zap.NewNop())
}

func validDraft() Draft {
    return Draft{RoomID: 1, PersonID: 1, BookingDate: "2025-05-01", StartSlot: 10, EndSlot: 11}
}

func TestValidateRejectsBadDraftsWithoutNetwork(t *testing.T) {
    cases := []struct {
        name   string
        mutate func(*Draft)
    }{
        {"no room", func(d *Draft) { d.RoomID = 0 }},
        {"no person", func(d *Draft) { d.PersonID = 0 }},
        {"no date", func(d *Draft) { d.BookingDate = "" }},
        {"garbage date", func(d *Draft) { d.BookingDate = "yesterday" }},
        {"start equals end", func(d *Draft) { d.StartSlot = 5; d.EndSlot = 5 }},
        {"start after end", func(d *Draft) { d.StartSlot = 9; d.EndSlot = 3 }},
        {"start below range", func(d *Draft) { d.StartSlot = 0 }},
        {"end above range", func(d *Draft) { d.EndSlot = 25 }},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
                t.Error("no request expected for an invalid draft")
            })
            f := cs.form()
            f.Draft = validDraft()
            tc.mutate(&f.Draft)

            err := f.Submit(context.Background())

            var verr *ValidationError
            require.ErrorAs(t, err, &verr)
            assert.Equal(t, StateIdle, f.State)
            assert.NotEmpty(t, f.ErrorMessage)
            assert.Zero(t, atomic.LoadInt64(&cs.requests))
        })
    }
}

func TestSubmitConflictPresentsAvailableSlots(t *testing.T) {
    cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusConflict)
        _, _ = w.Write([]byte(`{"message":"Conflit de réservation","roomId":1,"bookingDate":"2025-05-01","availableSlots":[1,2,3]}`))
    })
    f := cs.form()
    f.Draft = validDraft()

    err := f.Submit(context.Background())

    var conflict *ConflictError
    require.ErrorAs(t, err, &conflict)
    assert.Equal(t, StateConflictPresented, f.State)
    assert.Equal(t, "Conflit de réservation", f.ConflictMessage)
    assert.Equal(t, []int{1, 2, 3}, f.AvailableSlots)
    // Room, person and date survive the conflict untouched.
    assert.Equal(t, uint64(1), f.Draft.RoomID)
    assert.Equal(t, uint64(1), f.Draft.PersonID)
    assert.Equal(t, "2025-05-01", f.Draft.BookingDate)
}

func TestUseAvailableSlotReturnsToIdle(t *testing.T) {
    cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusConflict)
        _, _ = w.Write([]byte(`{"message":"taken","availableSlots":[7,9]}`))
    })
    f := cs.form()
    f.Draft = validDraft()
    _ = f.Submit(context.Background())
    require.Equal(t, StateConflictPresented, f.State)

    f.UseAvailableSlot(7)

    assert.Equal(t, StateIdle, f.State)
    assert.Equal(t, 7, f.Draft.StartSlot)
    assert.Equal(t, 8, f.Draft.EndSlot)
    assert.Empty(t, f.ConflictMessage)
    assert.Nil(t, f.AvailableSlots)
}

func TestSubmitSuccessAppendsOnceAndResetsDraft(t *testing.T) {
    cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
        var req CreateBookingRequest
        assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusCreated)
        _, _ = w.Write([]byte(`{"id":42,"roomId":1,"personId":1,"bookingDate":"2025-05-01","startSlot":10,"endSlot":11}`))
    })
    f := cs.form()
    f.Draft = validDraft()

    require.NoError(t, f.Submit(context.Background()))

    assert.Equal(t, StateSucceeded, f.State)
    require.Len(t, f.Bookings, 1)
    assert.Equal(t, uint64(42), f.Bookings[0].ID)
    assert.NotEmpty(t, f.SuccessMessage)

    want := defaultDraft()
    assert.Equal(t, want, f.Draft)
    assert.Equal(t, uint64(0), f.Draft.RoomID)
    assert.Equal(t, 1, f.Draft.StartSlot)
    assert.Equal(t, 2, f.Draft.EndSlot)
    assert.Equal(t, Today().String(), f.Draft.BookingDate)
}

func TestSubmitRejectedKeepsServerMessageVerbatim(t *testing.T) {
    cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadRequest)
        _, _ = w.Write([]byte("unknown roomId"))
    })
    f := cs.form()
    f.Draft = validDraft()

    err := f.Submit(context.Background())

    var rejected *RejectedError
    require.ErrorAs(t, err, &rejected)
    assert.Equal(t, StateRejected, f.State)
    assert.Equal(t, "unknown roomId", f.ErrorMessage)
    assert.Empty(t, f.Bookings)
}

func TestSubmitTransportFailureKeepsDraft(t *testing.T) {
    cs := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadGateway)
    })
    f := cs.form()
    f.Draft = validDraft()

    err := f.Submit(context.Background())

    var terr *TransportError
    require.ErrorAs(t, err, &terr)
    assert.Equal(t, StateIdle, f.State)
    assert.Equal(t, validDraft(), f.Draft)
    assert.NotEmpty(t, f.ErrorMessage)
}

func TestDeleteBookingConfirmGate(t *testing.T) {
    t.Run("confirmed issues exactly one delete", func(t *testing.T) {
        cs := newCountingServer(t, nil)
        f := cs.form()
        f.Bookings = []model.Booking{{ID: 1}, {ID: 2}}
        f.Confirm = func(string) bool { return true }

        require.NoError(t, f.DeleteBooking(context.Background(), 1))

        assert.Equal(t, int64(1), atomic.LoadInt64(&cs.deletes))
        require.Len(t, f.Bookings, 1)
        assert.Equal(t, uint64(2), f.Bookings[0].ID)
    })

    t.Run("declined issues no request", func(t *testing.T) {
        cs := newCountingServer(t, nil)
        f := cs.form()
        f.Bookings = []model.Booking{{ID: 1}}
        f.Confirm = func(string) bool { return false }

        require.NoError(t, f.DeleteBooking(context.Background(), 1))

        assert.Zero(t, atomic.LoadInt64(&cs.requests))
        assert.Len(t, f.Bookings, 1)
    })

    t.Run("nil confirm means declined", func(t *testing.T) {
        cs := newCountingServer(t, nil)
        f := cs.form()
        f.Bookings = []model.Booking{{ID: 1}}

        require.NoError(t, f.DeleteBooking(context.Background(), 1))
        assert.Zero(t, atomic.LoadInt64(&cs.requests))
    })
}

func TestLoadAllPopulatesLookupsBeforeBookings(t *testing.T) {
    cs := newCountingServer(t, nil)
    f := cs.form()

    require.NoError(t, f.LoadAll(context.Background()))

    require.Len(t, f.Rooms, 1)
    assert.Equal(t, "Blue Room", f.Rooms[0].RoomName)
    require.Len(t, f.Persons, 1)
    assert.Equal(t, "Ada", f.Persons[0].FirstName)
    assert.NotNil(t, f.Bookings)
}

func TestLoadAllSurfacesFailures(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "boom", http.StatusInternalServerError)
    }))
    defer srv.Close()

    f := NewForm(NewClient(srv.URL, ""), zap.NewNop())
    err := f.LoadAll(context.Background())
    require.Error(t, err)
}

func TestLookupLabels(t *testing.T) {
    f := NewForm(nil, zap.NewNop())
    f.Rooms = []model.Room{{ID: 3, RoomName: "Atrium"}}
    f.Persons = []model.Person{{ID: 8, FirstName: "Grace", LastName: "Hopper"}}

    assert.Equal(t, "Atrium", f.RoomLabel(3))
    assert.Equal(t, "Unknown room (99)", f.RoomLabel(99))
    assert.Equal(t, "Grace Hopper", f.PersonLabel(8))
    assert.Equal(t, "Unknown person (99)", f.PersonLabel(99))
}
