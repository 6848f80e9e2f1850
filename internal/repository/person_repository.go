package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/room-booking/internal/model"
)

// PersonRepo provides CRUD operations for persons. As with rooms, list
// and get results embed each person's bookings.
type PersonRepo struct {
    db *sql.DB
}

// NewPersonRepo returns a new PersonRepo bound to the given database.
func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{db: db} }

// List returns every person with their bookings embedded.
func (r *PersonRepo) List(ctx context.Context) ([]model.Person, error) {
    const q = `SELECT id, first_name, last_name, created_at, updated_at FROM persons ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    persons := []model.Person{}
    index := map[uint64]int{}
    for rows.Next() {
        var p model.Person
        if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        p.Bookings = []model.Booking{}
        index[p.ID] = len(persons)
        persons = append(persons, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }

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
        if i, ok := index[b.PersonID]; ok {
            persons[i].Bookings = append(persons[i].Bookings, b)
        }
    }
    return persons, brows.Err()
}

// GetByID returns one person with their bookings. ErrPersonNotFound is
// returned when no row matches.
func (r *PersonRepo) GetByID(ctx context.Context, id uint64) (*model.Person, error) {
    const q = `SELECT id, first_name, last_name, created_at, updated_at FROM persons WHERE id = ?`
    var p model.Person
    err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPersonNotFound
        }
        return nil, err
    }
    p.Bookings = []model.Booking{}
    const bq = `SELECT id, room_id, person_id, booking_date, start_slot, end_slot, created_at
                FROM bookings WHERE person_id = ? ORDER BY booking_date, start_slot`
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
        p.Bookings = append(p.Bookings, b)
    }
    return &p, rows.Err()
}

// Create inserts a person and returns the stored row.
func (r *PersonRepo) Create(ctx context.Context, firstName, lastName string) (*model.Person, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO persons (first_name, last_name) VALUES (?, ?)`, firstName, lastName)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, uint64(id))
}

// Update replaces both name fields and returns the stored row.
func (r *PersonRepo) Update(ctx context.Context, id uint64, firstName, lastName string) (*model.Person, error) {
    if _, err := r.db.ExecContext(ctx,
        `UPDATE persons SET first_name = ?, last_name = ? WHERE id = ?`, firstName, lastName, id); err != nil {
        return nil, err
    }
    return r.GetByID(ctx, id)
}

// Delete removes a person together with their bookings (FK cascade).
func (r *PersonRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPersonNotFound
    }
    return nil
}
