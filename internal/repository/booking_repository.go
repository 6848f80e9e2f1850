package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/room-booking/internal/model"
)

// BookingRepo provides persistence for bookings, including the
// conflict-checked create and update paths. Overlap detection and the
// insert run inside one transaction so two concurrent submissions for
// the same room and date cannot both succeed: the first statement
// locks the room's rows for that date with FOR UPDATE and the second
// transaction blocks until the winner commits.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// List returns all bookings ordered by date and start slot.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
    const q = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
               FROM bookings ORDER BY booking_date, start_slot, id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Booking{}
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// Create inserts a booking after verifying the requested slot range is
// free. When the range overlaps an existing booking it returns a
// *ConflictError listing the still-available start hours for that room
// and date. Referential checks (room/person existence) map FK failures
// to the corresponding sentinel errors.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := r.ensureReferencesTx(ctx, tx, b.RoomID, b.PersonID); err != nil {
        return nil, err
    }

    existing, err := r.listForRoomDateTx(ctx, tx, b.RoomID, b.BookingDate, 0)
    if err != nil {
        return nil, err
    }
    for _, e := range existing {
        if e.Overlaps(*b) {
            return nil, &ConflictError{
                RoomID:         b.RoomID,
                BookingDate:    b.BookingDate.String(),
                AvailableSlots: model.AvailableStartSlots(existing),
            }
        }
    }

    res, err := tx.ExecContext(ctx,
        `INSERT INTO bookings (room_id, person_id, booking_date, start_slot, end_slot) VALUES (?, ?, ?, ?, ?)`,
        b.RoomID, b.PersonID, b.BookingDate, b.StartSlot, b.EndSlot)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    created, err := r.getTx(ctx, tx, uint64(id))
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return created, nil
}

// Update rewrites a booking, re-running the conflict check against all
// other bookings for the target room and date. The booking being
// updated is excluded so moving it within its own range succeeds.
func (r *BookingRepo) Update(ctx context.Context, id uint64, b *model.Booking) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := r.getTx(ctx, tx, id); err != nil {
        return nil, err
    }
    if err := r.ensureReferencesTx(ctx, tx, b.RoomID, b.PersonID); err != nil {
        return nil, err
    }

    existing, err := r.listForRoomDateTx(ctx, tx, b.RoomID, b.BookingDate, id)
    if err != nil {
        return nil, err
    }
    for _, e := range existing {
        if e.Overlaps(*b) {
            return nil, &ConflictError{
                RoomID:         b.RoomID,
                BookingDate:    b.BookingDate.String(),
                AvailableSlots: model.AvailableStartSlots(existing),
            }
        }
    }

    if _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET room_id = ?, person_id = ?, booking_date = ?, start_slot = ?, end_slot = ? WHERE id = ?`,
        b.RoomID, b.PersonID, b.BookingDate, b.StartSlot, b.EndSlot, id); err != nil {
        return nil, err
    }
    updated, err := r.getTx(ctx, tx, id)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return updated, nil
}

// Delete removes a booking. ErrBookingNotFound is returned when the id
// does not exist, so the handler can answer 404 instead of 204.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrBookingNotFound
    }
    return nil
}

// ensureReferencesTx verifies the room and person rows exist within the
// transaction so the conflict check and the insert see the same state.
func (r *BookingRepo) ensureReferencesTx(ctx context.Context, tx *sql.Tx, roomID, personID uint64) error {
    var one int
    err := tx.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, roomID).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrRoomNotFound
    }
    if err != nil {
        return err
    }
    err = tx.QueryRowContext(ctx, `SELECT 1 FROM persons WHERE id = ?`, personID).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrPersonNotFound
    }
    return err
}

// listForRoomDateTx loads all bookings for one room and date inside the
// transaction, locking the rows with FOR UPDATE. excludeID skips the
// booking being updated; pass 0 on create.
func (r *BookingRepo) listForRoomDateTx(ctx context.Context, tx *sql.Tx, roomID uint64, date model.Date, excludeID uint64) ([]model.Booking, error) {
    const q = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
               FROM bookings WHERE room_id = ? AND booking_date = ? AND id != ?
               ORDER BY start_slot FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, roomID, date, excludeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Booking{}
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

func (r *BookingRepo) getTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    const q = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.RoomID, &b.PersonID, &b.BookingDate, &b.StartSlot, &b.EndSlot, &b.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}
