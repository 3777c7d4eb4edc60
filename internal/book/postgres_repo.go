package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `id, isbn, title, author, description, published_year,
	       total_copies, available_copies, available, created_at, updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Description, &b.PublishedYear,
		&b.TotalCopies, &b.AvailableCopies, &b.Available, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	return r.list(ctx, "SELECT "+bookColumns+" FROM books ORDER BY title")
}

func (r *PostgresRepo) ListAvailable(ctx context.Context) ([]Book, error) {
	return r.list(ctx, "SELECT "+bookColumns+" FROM books WHERE available_copies > 0 ORDER BY title")
}

func (r *PostgresRepo) list(ctx context.Context, query string) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = "SELECT " + bookColumns + " FROM books WHERE id = $1 LIMIT 1"

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (id, isbn, title, author, description, published_year, total_copies, available_copies, available)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.ISBN, b.Title, b.Author, b.Description, b.PublishedYear,
		b.TotalCopies, b.AvailableCopies, b.Available,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes catalog fields. The availability counter belongs to the
// ledger: a change in total_copies adjusts it by the same delta instead
// of overwriting it, so a reservation that landed after the caller's
// read survives. Shrinking the total below the ledger's outstanding
// reservations trips the table CHECK and surfaces as
// ErrInvariantViolation.
func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
	UPDATE books
	SET title = $2, author = $3, description = $4, published_year = $5,
	    available_copies = available_copies + ($6 - total_copies),
	    available = available_copies + ($6 - total_copies) > 0,
	    total_copies = $6,
	    updated_at = now()
	WHERE id = $1
	RETURNING total_copies, available_copies, available, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.ID, b.Title, b.Author, b.Description, b.PublishedYear,
		b.TotalCopies,
	).Scan(&b.TotalCopies, &b.AvailableCopies, &b.Available, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return ErrInvariantViolation
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasLoans
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reserve takes one copy with a single conditional update. The guard on
// available_copies is what makes two concurrent reservations of the last
// copy impossible: only one update matches the row.
func (r *PostgresRepo) Reserve(ctx context.Context, id string) (int, error) {
	const query = `
	UPDATE books
	SET available_copies = available_copies - 1,
	    available = available_copies - 1 > 0,
	    updated_at = now()
	WHERE id = $1 AND available_copies > 0
	RETURNING available_copies
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var remaining int
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.missOrErr(ctx, id, ErrNoCopies)
		}
		return 0, err
	}
	return remaining, nil
}

// Release returns one copy. The guard against exceeding total_copies
// turns a double release into ErrInvariantViolation instead of a
// silently wrong count.
func (r *PostgresRepo) Release(ctx context.Context, id string) (int, error) {
	const query = `
	UPDATE books
	SET available_copies = available_copies + 1,
	    available = true,
	    updated_at = now()
	WHERE id = $1 AND available_copies < total_copies
	RETURNING available_copies
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var remaining int
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.missOrErr(ctx, id, ErrInvariantViolation)
		}
		return 0, err
	}
	return remaining, nil
}

// missOrErr disambiguates a guarded update that matched no row: either
// the book does not exist, or the guard condition failed.
func (r *PostgresRepo) missOrErr(ctx context.Context, id string, guardErr error) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, "SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return guardErr
}
