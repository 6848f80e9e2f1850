package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/room-booking/internal/model"
    "github.com/iliyamo/room-booking/internal/repository"
)

type stubPersonStore struct {
    listFn   func(ctx context.Context) ([]model.Person, error)
    getFn    func(ctx context.Context, id uint64) (*model.Person, error)
    createFn func(ctx context.Context, firstName, lastName string) (*model.Person, error)
    updateFn func(ctx context.Context, id uint64, firstName, lastName string) (*model.Person, error)
    deleteFn func(ctx context.Context, id uint64) error
}

func (s *stubPersonStore) List(ctx context.Context) ([]model.Person, error) { return s.listFn(ctx) }

func (s *stubPersonStore) GetByID(ctx context.Context, id uint64) (*model.Person, error) {
    return s.getFn(ctx, id)
}

func (s *stubPersonStore) Create(ctx context.Context, firstName, lastName string) (*model.Person, error) {
    return s.createFn(ctx, firstName, lastName)
}

func (s *stubPersonStore) Update(ctx context.Context, id uint64, firstName, lastName string) (*model.Person, error) {
    return s.updateFn(ctx, id, firstName, lastName)
}

func (s *stubPersonStore) Delete(ctx context.Context, id uint64) error { return s.deleteFn(ctx, id) }

func TestPersonListWrapsPayload(t *testing.T) {
    store := &stubPersonStore{listFn: func(context.Context) ([]model.Person, error) {
        return []model.Person{{ID: 1, FirstName: "Ada", LastName: "Lovelace", Bookings: []model.Booking{}}}, nil
    }}
    h := NewPersonHandler(store)
    c, rec := newBookingContext(http.MethodGet, "/v1/persons", "")

    require.NoError(t, h.List(c))
    assert.Equal(t, http.StatusOK, rec.Code)

    var body struct {
        Persons []model.Person `json:"persons"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    require.Len(t, body.Persons, 1)
    assert.Equal(t, "Lovelace", body.Persons[0].LastName)
}

func TestPersonCreate(t *testing.T) {
    cases := []struct {
        name       string
        body       string
        wantStatus int
    }{
        {"created", `{"firstName":"Ada","lastName":"Lovelace"}`, http.StatusCreated},
        {"trimmed", `{"firstName":"  Ada ","lastName":" Lovelace "}`, http.StatusCreated},
        {"missing first name", `{"lastName":"Lovelace"}`, http.StatusBadRequest},
        {"missing last name", `{"firstName":"Ada"}`, http.StatusBadRequest},
        {"blank names", `{"firstName":" ","lastName":" "}`, http.StatusBadRequest},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            store := &stubPersonStore{createFn: func(_ context.Context, first, last string) (*model.Person, error) {
                assert.Equal(t, "Ada", first)
                assert.Equal(t, "Lovelace", last)
                return &model.Person{ID: 1, FirstName: first, LastName: last}, nil
            }}
            h := NewPersonHandler(store)
            c, rec := newBookingContext(http.MethodPost, "/v1/persons", tc.body)

            require.NoError(t, h.Create(c))
            assert.Equal(t, tc.wantStatus, rec.Code)
        })
    }
}

func TestPersonGetAndDelete(t *testing.T) {
    t.Run("get missing", func(t *testing.T) {
        store := &stubPersonStore{getFn: func(context.Context, uint64) (*model.Person, error) {
            return nil, repository.ErrPersonNotFound
        }}
        h := NewPersonHandler(store)
        c, rec := newBookingContext(http.MethodGet, "/v1/persons/4", "", "id", "4")

        require.NoError(t, h.Get(c))
        assert.Equal(t, http.StatusNotFound, rec.Code)
    })

    t.Run("delete ok", func(t *testing.T) {
        var gotID uint64
        store := &stubPersonStore{deleteFn: func(_ context.Context, id uint64) error {
            gotID = id
            return nil
        }}
        h := NewPersonHandler(store)
        c, rec := newBookingContext(http.MethodDelete, "/v1/persons/4", "", "id", "4")

        require.NoError(t, h.Delete(c))
        assert.Equal(t, http.StatusNoContent, rec.Code)
        assert.Equal(t, uint64(4), gotID)
    })

    t.Run("delete missing", func(t *testing.T) {
        store := &stubPersonStore{deleteFn: func(context.Context, uint64) error {
            return repository.ErrPersonNotFound
        }}
        h := NewPersonHandler(store)
        c, rec := newBookingContext(http.MethodDelete, "/v1/persons/4", "", "id", "4")

        require.NoError(t, h.Delete(c))
        assert.Equal(t, http.StatusNotFound, rec.Code)
    })
}
