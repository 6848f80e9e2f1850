package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/room-booking/internal/model"
    "github.com/iliyamo/room-booking/internal/repository"
)

// RoomStore is the subset of the room repository used by the handler.
type RoomStore interface {
    List(ctx context.Context) ([]model.Room, error)
    GetByID(ctx context.Context, id uint64) (*model.Room, error)
    Create(ctx context.Context, roomName string) (*model.Room, error)
    Update(ctx context.Context, id uint64, roomName string) (*model.Room, error)
    Delete(ctx context.Context, id uint64) error
}

// RoomHandler serves the /v1/rooms endpoints.
type RoomHandler struct {
    Store RoomStore
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(store RoomStore) *RoomHandler {
    if store == nil {
        panic("nil store passed to NewRoomHandler")
    }
    return &RoomHandler{Store: store}
}

type roomReq struct {
    RoomName string `json:"roomName"`
}

// List handles GET /v1/rooms. Rooms arrive wrapped in an object so the
// payload can grow without breaking clients.
func (h *RoomHandler) List(c echo.Context) error {
    rooms, err := h.Store.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
    }
    return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    room, err := h.Store.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
    }
    return c.JSON(http.StatusOK, room)
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(req.RoomName)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomName is required"})
    }
    room, err := h.Store.Create(c.Request().Context(), name)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNameExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
    }
    return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(req.RoomName)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomName is required"})
    }
    room, err := h.Store.Update(c.Request().Context(), id, name)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrRoomNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrRoomNameExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
    }
    return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id. Bookings in the room disappear
// with it (FK cascade), mirroring the upstream API behavior.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    if err := h.Store.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
    }
    return c.NoContent(http.StatusNoContent)
}
