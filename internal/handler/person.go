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

// PersonStore is the subset of the person repository used by the handler.
type PersonStore interface {
    List(ctx context.Context) ([]model.Person, error)
    GetByID(ctx context.Context, id uint64) (*model.Person, error)
    Create(ctx context.Context, firstName, lastName string) (*model.Person, error)
    Update(ctx context.Context, id uint64, firstName, lastName string) (*model.Person, error)
    Delete(ctx context.Context, id uint64) error
}

// PersonHandler serves the /v1/persons endpoints.
type PersonHandler struct {
    Store PersonStore
}

// NewPersonHandler constructs a PersonHandler.
func NewPersonHandler(store PersonStore) *PersonHandler {
    if store == nil {
        panic("nil store passed to NewPersonHandler")
    }
    return &PersonHandler{Store: store}
}

type personReq struct {
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
}

func (r personReq) names() (string, string, bool) {
    first := strings.TrimSpace(r.FirstName)
    last := strings.TrimSpace(r.LastName)
    return first, last, first != "" && last != ""
}

// List handles GET /v1/persons.
func (h *PersonHandler) List(c echo.Context) error {
    persons, err := h.Store.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load persons"})
    }
    return c.JSON(http.StatusOK, echo.Map{"persons": persons})
}

// Get handles GET /v1/persons/:id.
func (h *PersonHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
    }
    p, err := h.Store.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrPersonNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load person"})
    }
    return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/persons. Both name fields are required.
func (h *PersonHandler) Create(c echo.Context) error {
    var req personReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    first, last, ok := req.names()
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName and lastName are required"})
    }
    p, err := h.Store.Create(c.Request().Context(), first, last)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create person"})
    }
    return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/persons/:id.
func (h *PersonHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
    }
    var req personReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    first, last, okNames := req.names()
    if !okNames {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName and lastName are required"})
    }
    p, err := h.Store.Update(c.Request().Context(), id, first, last)
    if err != nil {
        if errors.Is(err, repository.ErrPersonNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update person"})
    }
    return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/persons/:id.
func (h *PersonHandler) Delete(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person id"})
    }
    if err := h.Store.Delete(c.Request().Context(), id); err != nil {
        if errors.Is(err, repository.ErrPersonNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete person"})
    }
    return c.NoContent(http.StatusNoContent)
}
