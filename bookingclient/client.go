// Package bookingclient is a Go client for the room-booking API. It
// covers the plain CRUD calls and, in Form, the booking submission
// flow with its three-way outcome: created, conflict with alternative
// slots, or rejected with a server message.
package bookingclient

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"

    "github.com/iliyamo/room-booking/internal/model"
)

// Client issues HTTP requests against a booking API base URL, either
// the API itself ("http://host/v1") or the BFF remote prefix
// ("https://host/remote"). Token, when set, is sent as a bearer token.
type Client struct {
    BaseURL    string
    Token      string
    HTTPClient *http.Client
}

// NewClient builds a Client with a default timeout-bearing transport.
func NewClient(baseURL, token string) *Client {
    return &Client{
        BaseURL:    strings.TrimRight(baseURL, "/"),
        Token:      token,
        HTTPClient: &http.Client{Timeout: 30 * time.Second},
    }
}

// ConflictError is the decoded 409 response: the requested slots
// overlap an existing booking and availableSlots lists free start
// hours the user can pick instead.
type ConflictError struct {
    Msg            string `json:"message"`
    RoomID         uint64 `json:"roomId"`
    BookingDate    string `json:"bookingDate"`
    AvailableSlots []int  `json:"availableSlots"`
}

func (e *ConflictError) Error() string {
    return fmt.Sprintf("booking conflict: %s", e.Msg)
}

// RejectedError carries the server's 400 message verbatim; the user
// must change their input before retrying.
type RejectedError struct {
    Msg string
}

func (e *RejectedError) Error() string { return e.Msg }

// TransportError is any other failure: network trouble or an
// unexpected status. Retry is left to the user.
type TransportError struct {
    Status int
    Err    error
}

func (e *TransportError) Error() string {
    if e.Err != nil {
        return e.Err.Error()
    }
    return fmt.Sprintf("unexpected status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CreateBookingRequest is the wire shape of a booking submission.
type CreateBookingRequest struct {
    RoomID      uint64 `json:"roomId"`
    PersonID    uint64 `json:"personId"`
    BookingDate string `json:"bookingDate"` // YYYY-MM-DD
    StartSlot   int    `json:"startSlot"`
    EndSlot     int    `json:"endSlot"`
}

// ListRooms fetches all rooms with their embedded bookings.
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
    var out struct {
        Rooms []model.Room `json:"rooms"`
    }
    if err := c.getJSON(ctx, "/rooms", &out); err != nil {
        return nil, err
    }
    return out.Rooms, nil
}

// ListPersons fetches all persons with their embedded bookings.
func (c *Client) ListPersons(ctx context.Context) ([]model.Person, error) {
    var out struct {
        Persons []model.Person `json:"persons"`
    }
    if err := c.getJSON(ctx, "/persons", &out); err != nil {
        return nil, err
    }
    return out.Persons, nil
}

// ListBookings fetches the flat booking list.
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
    var out []model.Booking
    if err := c.getJSON(ctx, "/bookings", &out); err != nil {
        return nil, err
    }
    return out, nil
}

// CreateBooking submits a booking. The error is a *ConflictError on
// 409, a *RejectedError on 400 and a *TransportError otherwise.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
    resp, err := c.do(ctx, http.MethodPost, "/bookings", req)
    if err != nil {
        return nil, &TransportError{Err: err}
    }
    defer resp.Body.Close()

    switch resp.StatusCode {
    case http.StatusCreated, http.StatusOK:
        var b model.Booking
        if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
            return nil, &TransportError{Status: resp.StatusCode, Err: err}
        }
        return &b, nil
    case http.StatusConflict:
        var conflict ConflictError
        if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
            return nil, &TransportError{Status: resp.StatusCode, Err: err}
        }
        return nil, &conflict
    case http.StatusBadRequest:
        body, _ := io.ReadAll(resp.Body)
        return nil, &RejectedError{Msg: strings.TrimSpace(string(body))}
    default:
        return nil, &TransportError{Status: resp.StatusCode}
    }
}

// UpdateBooking rewrites a booking with the same outcome contract as
// CreateBooking.
func (c *Client) UpdateBooking(ctx context.Context, id uint64, req CreateBookingRequest) (*model.Booking, error) {
    resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), req)
    if err != nil {
        return nil, &TransportError{Err: err}
    }
    defer resp.Body.Close()

    switch resp.StatusCode {
    case http.StatusOK:
        var b model.Booking
        if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
            return nil, &TransportError{Status: resp.StatusCode, Err: err}
        }
        return &b, nil
    case http.StatusConflict:
        var conflict ConflictError
        if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
            return nil, &TransportError{Status: resp.StatusCode, Err: err}
        }
        return nil, &conflict
    case http.StatusBadRequest:
        body, _ := io.ReadAll(resp.Body)
        return nil, &RejectedError{Msg: strings.TrimSpace(string(body))}
    default:
        return nil, &TransportError{Status: resp.StatusCode}
    }
}

// DeleteBooking removes a booking by id.
func (c *Client) DeleteBooking(ctx context.Context, id uint64) error {
    resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil)
    if err != nil {
        return &TransportError{Err: err}
    }
    defer resp.Body.Close()
    if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
        return nil
    }
    return &TransportError{Status: resp.StatusCode}
}

// Client log levels accepted by the /log endpoint.
const (
    LogLevelDebug       = 1
    LogLevelInformation = 2
    LogLevelWarning     = 3
    LogLevelError       = 4
)

// SubmitLog forwards a client-side log entry to the server. By
// contract a failure here is returned but must never be re-submitted
// through SubmitLog itself.
func (c *Client) SubmitLog(ctx context.Context, level int, message string) error {
    body := map[string]interface{}{"logLevel": level, "message": message}
    resp, err := c.do(ctx, http.MethodPost, "/log", body)
    if err != nil {
        return &TransportError{Err: err}
    }
    defer resp.Body.Close()
    if resp.StatusCode >= http.StatusBadRequest {
        return &TransportError{Status: resp.StatusCode}
    }
    return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
    resp, err := c.do(ctx, http.MethodGet, path, nil)
    if err != nil {
        return &TransportError{Err: err}
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return &TransportError{Status: resp.StatusCode}
    }
    if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
        return &TransportError{Status: resp.StatusCode, Err: err}
    }
    return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
    var rdr io.Reader
    if body != nil {
        buf, err := json.Marshal(body)
        if err != nil {
            return nil, err
        }
        rdr = bytes.NewReader(buf)
    }
    req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
    if err != nil {
        return nil, err
    }
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    if c.Token != "" {
        req.Header.Set("Authorization", "Bearer "+c.Token)
    }
    return c.HTTPClient.Do(req)
}
