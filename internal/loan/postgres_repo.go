package loan

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
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

// Listings join books and users so payloads carry the human-readable
// title and name alongside the IDs.
const loanSelect = `
	SELECT l.id, l.book_id, l.user_id, l.loan_date, l.due_date, l.return_date,
	       l.status, l.created_at, l.updated_at, b.title, u.name
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN users u ON u.id = l.user_id`

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(
		&l.ID, &l.BookID, &l.UserID, &l.LoanDate, &l.DueDate, &l.ReturnDate,
		&l.Status, &l.CreatedAt, &l.UpdatedAt, &l.BookTitle, &l.UserName,
	)
	return l, err
}

func (r *PostgresRepo) List(ctx context.Context) ([]Loan, error) {
	return r.list(ctx, loanSelect+" ORDER BY l.loan_date DESC")
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Loan, error) {
	return r.list(ctx, loanSelect+" WHERE l.user_id = $1 ORDER BY l.loan_date DESC", userID)
}

func (r *PostgresRepo) ListByStatus(ctx context.Context, status string) ([]Loan, error) {
	return r.list(ctx, loanSelect+" WHERE l.status = $1 ORDER BY l.due_date", status)
}

func (r *PostgresRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]Loan, error) {
	return r.list(ctx, loanSelect+" WHERE l.status = $1 AND l.due_date < $2 ORDER BY l.due_date", StatusActive, asOf)
}

func (r *PostgresRepo) list(ctx context.Context, query string, args ...any) ([]Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	l, err := scanLoan(r.db.QueryRow(timeoutCtx, loanSelect+" WHERE l.id = $1 LIMIT 1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var count int
	err := r.db.QueryRow(timeoutCtx,
		"SELECT COUNT(*) FROM loans WHERE user_id = $1 AND status = $2",
		userID, StatusActive,
	).Scan(&count)
	return count, err
}

func (r *PostgresRepo) Create(ctx context.Context, l *Loan) error {
	const query = `
	INSERT INTO loans (id, book_id, user_id, loan_date, due_date, status)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		l.BookID, l.UserID, l.LoanDate, l.DueDate, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// Update writes the loan's mutable fields, guarded on the persisted row
// still being ACTIVE. A concurrent close makes the guard miss and the
// caller gets ErrNotActive instead of overwriting a terminal state.
func (r *PostgresRepo) Update(ctx context.Context, l *Loan) error {
	const query = `
	UPDATE loans
	SET status = $2, due_date = $3, return_date = $4, updated_at = now()
	WHERE id = $1 AND status = $5
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		l.ID, l.Status, l.DueDate, l.ReturnDate, StatusActive,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missOrErr(ctx, l.ID)
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Reopen(ctx context.Context, id string) error {
	const query = `
	UPDATE loans
	SET status = $2, return_date = NULL, updated_at = now()
	WHERE id = $1 AND status = $3
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id, StatusActive, StatusReturned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) missOrErr(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, "SELECT EXISTS (SELECT 1 FROM loans WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrNotActive
}
