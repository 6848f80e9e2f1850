package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/room-booking/internal/model"
)

// RoomRepo provides CRUD operations for rooms. List and get results
// embed the bookings attached to each room so the API can return the
// denormalized shape the client renders from.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// List returns every room with its bookings embedded. Rooms without
// bookings carry an empty (non-nil) slice so the JSON field encodes as
// [] rather than null.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT id, room_name, created_at, updated_at FROM rooms ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    rooms := []model.Room{}
    index := map[uint64]int{}
    for rows.Next() {
        var rm model.Room
        if err := rows.Scan(&rm.ID, &rm.RoomName, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
            return nil, err
        }
        rm.Bookings = []model.Booking{}
        index[rm.ID] = len(rooms)
        rooms = append(rooms, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }

    // Attach bookings in a single second query instead of one per room.
    const bq = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
                FROM bookings ORDER BY booking_date, start_slot`
    brows, err := r.db.QueryContext(ctx, bq)
    if err != nil {
        return nil, err
    }
    defer brows.Close()
    for brows.Next() {
        var b model.Booking
        if err := brows.Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt); err != nil {
            return nil, err
        }
        if i, ok := index[b.RoomID]; ok {
            rooms[i].Bookings = append(rooms[i].Bookings, b)
        }
    }
    return rooms, brows.Err()
}

// GetByID returns one room with its bookings. ErrRoomNotFound is
// returned when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT id, room_name, created_at, updated_at FROM rooms WHERE id = ?`
    var rm model.Room
    err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.RoomName, &rm.CreatedAt, &rm.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    rm.Bookings = []model.Booking{}
    const bq = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
                FROM bookings WHERE room_id = ? ORDER BY booking_date, start_slot`
    rows, err := r.db.QueryContext(ctx, bq, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt); err != nil {
            return nil, err
        }
        rm.Bookings = append(rm.Bookings, b)
    }
    return &rm, rows.Err()
}

// Create inserts a room and returns the stored row. A duplicate name
// maps to ErrRoomNameExists via the MySQL 1062 duplicate-key code.
func (r *RoomRepo) Create(ctx context.Context, roomName string) (*model.Room, error) {
    res, err := r.db.ExecContext(ctx, `INSERT INTO rooms (room_name) VALUES (?)`, roomName)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return nil, ErrRoomNameExists
        }
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, uint64(id))
}

// Update renames a room and returns the stored row.
func (r *RoomRepo) Update(ctx context.Context, id uint64, roomName string) (*model.Room, error) {
    _, err := r.db.ExecContext(ctx, `UPDATE rooms SET room_name = ? WHERE id = ?`, roomName, id)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return nil, ErrRoomNameExists
        }
        return nil, err
    }
    // RowsAffected is 0 both for a missing row and for an unchanged
    // value, so existence is confirmed by reading the row back.
    return r.GetByID(ctx, id)
}

// Delete removes a room. Bookings referencing it are removed by the
// ON DELETE CASCADE constraint.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrRoomNotFound
    }
    return nil
}
