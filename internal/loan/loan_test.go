package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestOpen(t *testing.T) {
	l := Open("book-1", "user-1", testNow)

	assert.Equal(t, StatusActive, l.Status)
	assert.Equal(t, "book-1", l.BookID)
	assert.Equal(t, "user-1", l.UserID)
	assert.Equal(t, testNow, l.LoanDate)
	assert.Equal(t, testNow.AddDate(0, 0, DefaultLoanPeriodDays), l.DueDate)
	assert.Nil(t, l.ReturnDate)
}

func TestClose(t *testing.T) {
	t.Run("active loan closes and stamps return date", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		returnedAt := testNow.AddDate(0, 0, 3)

		require.NoError(t, l.Close(returnedAt))
		assert.Equal(t, StatusReturned, l.Status)
		require.NotNil(t, l.ReturnDate)
		assert.Equal(t, returnedAt, *l.ReturnDate)
	})

	t.Run("returned is terminal", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		require.NoError(t, l.Close(testNow))

		err := l.Close(testNow.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrAlreadyReturned)
		assert.Equal(t, testNow, *l.ReturnDate)
	})
}

func TestExtend(t *testing.T) {
	t.Run("pushes due date forward", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		due := l.DueDate

		require.NoError(t, l.Extend(7))
		assert.Equal(t, due.AddDate(0, 0, 7), l.DueDate)
	})

	t.Run("rejects zero days", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		assert.ErrorIs(t, l.Extend(0), ErrInvalidExtension)
	})

	t.Run("rejects negative days", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		due := l.DueDate
		assert.ErrorIs(t, l.Extend(-3), ErrInvalidExtension)
		assert.Equal(t, due, l.DueDate)
	})

	t.Run("rejects returned loan", func(t *testing.T) {
		l := Open("book-1", "user-1", testNow)
		require.NoError(t, l.Close(testNow))
		assert.ErrorIs(t, l.Extend(7), ErrNotActive)
	})
}

func TestOverdue(t *testing.T) {
	l := Open("book-1", "user-1", testNow)

	assert.False(t, l.Overdue(testNow))
	assert.False(t, l.Overdue(l.DueDate))
	assert.True(t, l.Overdue(l.DueDate.Add(time.Minute)))

	// A closed loan is never overdue regardless of its due date.
	require.NoError(t, l.Close(l.DueDate.AddDate(0, 0, 30)))
	assert.False(t, l.Overdue(l.DueDate.AddDate(0, 0, 60)))
}

func TestOverdueLoanStillCloses(t *testing.T) {
	l := Open("book-1", "user-1", testNow)
	lateReturn := l.DueDate.AddDate(0, 0, 10)

	require.True(t, l.Overdue(lateReturn))
	require.NoError(t, l.Close(lateReturn))
	assert.Equal(t, StatusReturned, l.Status)
}
