package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/room-booking/internal/model"
    "github.com/iliyamo/room-booking/internal/queue"
    "github.com/iliyamo/room-booking/internal/repository"
)

// BookingStore is the subset of the booking repository used by the
// handler. Declaring it here keeps the handler testable with a stub.
type BookingStore interface {
    List(ctx context.Context) ([]model.Booking, error)
    GetByID(ctx context.Context, id uint64) (*model.Booking, error)
    Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
    Update(ctx context.Context, id uint64, b *model.Booking) (*model.Booking, error)
    Delete(ctx context.Context, id uint64) error
}

// BookingEventPublisher publishes domain events after a successful
// creation. Failures must never fail the request.
type BookingEventPublisher interface {
    PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingHandler serves the /v1/bookings endpoints. Its contract is the
// three-way outcome the booking form interprets: 201 with the created
// booking, 409 with a conflict body listing alternative start slots, or
// 400 with a plain-text validation message.
type BookingHandler struct {
    Store     BookingStore
    Publisher BookingEventPublisher
    Log       *zap.Logger
}

// NewBookingHandler constructs a BookingHandler. Publisher may be nil
// when no broker is configured; events are then skipped.
func NewBookingHandler(store BookingStore, publisher BookingEventPublisher, log *zap.Logger) *BookingHandler {
    if store == nil {
        panic("nil store passed to NewBookingHandler")
    }
    if log == nil {
        log = zap.NewNop()
    }
    return &BookingHandler{Store: store, Publisher: publisher, Log: log}
}

type bookingReq struct {
    RoomID      uint64 `json:"roomId"`
    PersonID    uint64 `json:"personId"`
    BookingDate string `json:"bookingDate"`
    StartSlot   int    `json:"startSlot"`
    EndSlot     int    `json:"endSlot"`
}

// validate checks the request shape and returns the parsed date. The
// message is returned verbatim to the client as the 400 body, so it is
// written for end users rather than for logs.
func (r bookingReq) validate() (model.Date, string) {
    if r.RoomID == 0 {
        return model.Date{}, "roomId is required"
    }
    if r.PersonID == 0 {
        return model.Date{}, "personId is required"
    }
    date, err := model.ParseDate(r.BookingDate)
    if err != nil {
        return model.Date{}, "bookingDate must be a valid YYYY-MM-DD date"
    }
    if r.StartSlot >= r.EndSlot {
        return model.Date{}, "startSlot must be lower than endSlot"
    }
    if r.StartSlot < model.MinSlot || r.EndSlot > model.MaxSlot {
        return model.Date{}, "slots must be between 1 and 24"
    }
    return date, ""
}

// conflictResp is the 409 body. availableSlots carries bare start
// hours, matching the versioned wire contract the form understands.
type conflictResp struct {
    Message        string `json:"message"`
    RoomID         uint64 `json:"roomId"`
    BookingDate    string `json:"bookingDate"`
    AvailableSlots []int  `json:"availableSlots"`
}

// List handles GET /v1/bookings. The response is a bare array.
func (h *BookingHandler) List(c echo.Context) error {
    bookings, err := h.Store.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Store.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
    }
    return c.JSON(http.StatusOK, b)
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.String(http.StatusBadRequest, "invalid request body")
    }
    date, msg := req.validate()
    if msg != "" {
        return c.String(http.StatusBadRequest, msg)
    }

    booking := &model.Booking{
        RoomID:      req.RoomID,
        PersonID:    req.PersonID,
        BookingDate: date,
        StartSlot:   req.StartSlot,
        EndSlot:     req.EndSlot,
    }
    created, err := h.Store.Create(c.Request().Context(), booking)
    if err != nil {
        return h.writeBookingError(c, err)
    }

    h.publishCreated(created)
    return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/bookings/:id with the same outcome contract
// as Create.
func (h *BookingHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.String(http.StatusBadRequest, "invalid request body")
    }
    date, msg := req.validate()
    if msg != "" {
        return c.String(http.StatusBadRequest, msg)
    }

    booking := &model.Booking{
        RoomID:      req.RoomID,
        PersonID:    req.PersonID,
        BookingDate: date,
        StartSlot:   req.StartSlot,
        EndSlot:     req.EndSlot,
    }
    updated, err := h.Store.Update(c.Request().Context(), id, booking)
    if err != nil {
        return h.writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Store.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
    }
    return c.NoContent(http.StatusNoContent)
}

// writeBookingError maps repository errors onto the wire contract:
// unknown references and validation problems are 400 plain text,
// overlaps are 409 with the conflict body, everything else is 500.
func (h *BookingHandler) writeBookingError(c echo.Context, err error) error {
    var conflict *repository.ConflictError
    switch {
    case errors.As(err, &conflict):
        return c.JSON(http.StatusConflict, conflictResp{
            Message:        conflict.Message(),
            RoomID:         conflict.RoomID,
            BookingDate:    conflict.BookingDate,
            AvailableSlots: conflict.AvailableSlots,
        })
    case errors.Is(err, repository.ErrRoomNotFound):
        return c.String(http.StatusBadRequest, "unknown roomId")
    case errors.Is(err, repository.ErrPersonNotFound):
        return c.String(http.StatusBadRequest, "unknown personId")
    case errors.Is(err, repository.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    default:
        h.Log.Error("booking operation failed", zap.Error(err))
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}

// publishCreated emits the booking.created event in the background so a
// slow or unavailable broker never delays the HTTP response.
func (h *BookingHandler) publishCreated(b *model.Booking) {
    if h.Publisher == nil {
        return
    }
    ev := queue.NewBookingCreatedEvent(*b)
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := h.Publisher.PublishBookingCreated(ctx, ev); err != nil {
            h.Log.Warn("publish booking.created failed", zap.Error(err), zap.Uint64("booking_id", b.ID))
        }
    }()
}
