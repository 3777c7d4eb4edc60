package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"elibrary/internal/book"
	"elibrary/internal/http/mocks"
	"elibrary/internal/loan"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoan = loan.Loan{
	ID:       "loan-1",
	BookID:   "book-1",
	UserID:   "user-1",
	LoanDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	DueDate:  time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC),
	Status:   loan.StatusActive,
}

func newLoanMux(h *LoanHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /loans", h.List)
	mux.HandleFunc("GET /loans/active", h.ListActive)
	mux.HandleFunc("GET /loans/overdue", h.ListOverdue)
	mux.HandleFunc("GET /loans/user/{userId}", h.ListByUser)
	mux.HandleFunc("GET /loans/{id}", h.GetByID)
	mux.HandleFunc("POST /loans/checkout", h.Checkout)
	mux.HandleFunc("POST /loans/{id}/return", h.Return)
	mux.HandleFunc("POST /loans/{id}/extend", h.Extend)
	return mux
}

func TestLoanHandler_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := mocks.NewMockLoanService(ctrl)
	mux := newLoanMux(NewLoanHandler(mockSvc))

	tests := []struct {
		name           string
		target         string
		setupMock      func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "created",
			target: "/loans/checkout?book_id=book-1&user_id=user-1",
			setupMock: func() {
				mockSvc.EXPECT().
					Checkout(gomock.Any(), "book-1", "user-1").
					Return(testLoan, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing params",
			target:         "/loans/checkout?book_id=book-1",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_PARAM",
		},
		{
			name:   "no copies",
			target: "/loans/checkout?book_id=book-1&user_id=user-1",
			setupMock: func() {
				mockSvc.EXPECT().
					Checkout(gomock.Any(), "book-1", "user-1").
					Return(loan.Loan{}, book.ErrNoCopies)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "NO_COPIES_AVAILABLE",
		},
		{
			name:   "loan limit",
			target: "/loans/checkout?book_id=book-1&user_id=user-1",
			setupMock: func() {
				mockSvc.EXPECT().
					Checkout(gomock.Any(), "book-1", "user-1").
					Return(loan.Loan{}, loan.ErrLimitReached)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "LOAN_LIMIT_REACHED",
		},
		{
			name:   "inactive user",
			target: "/loans/checkout?book_id=book-1&user_id=user-1",
			setupMock: func() {
				mockSvc.EXPECT().
					Checkout(gomock.Any(), "book-1", "user-1").
					Return(loan.Loan{}, loan.ErrUserInactive)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "USER_INACTIVE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
				assert.Equal(t, tt.expectedCode, resp.Error.Code)
			}
		})
	}
}

func TestLoanHandler_Return(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := mocks.NewMockLoanService(ctrl)
	mux := newLoanMux(NewLoanHandler(mockSvc))

	t.Run("ok", func(t *testing.T) {
		closed := testLoan
		closed.Status = loan.StatusReturned
		mockSvc.EXPECT().Return(gomock.Any(), "loan-1").Return(closed, nil)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/return", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already returned", func(t *testing.T) {
		mockSvc.EXPECT().Return(gomock.Any(), "loan-1").Return(loan.Loan{}, loan.ErrAlreadyReturned)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/return", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ALREADY_RETURNED", resp.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.EXPECT().Return(gomock.Any(), "missing").Return(loan.Loan{}, loan.ErrNotFound)

		req := httptest.NewRequest(http.MethodPost, "/loans/missing/return", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLoanHandler_Extend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := mocks.NewMockLoanService(ctrl)
	mux := newLoanMux(NewLoanHandler(mockSvc))

	t.Run("defaults to seven days", func(t *testing.T) {
		extended := testLoan
		extended.DueDate = extended.DueDate.AddDate(0, 0, loan.DefaultExtensionDays)
		mockSvc.EXPECT().
			Extend(gomock.Any(), "loan-1", loan.DefaultExtensionDays).
			Return(extended, nil)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/extend", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("explicit days", func(t *testing.T) {
		mockSvc.EXPECT().Extend(gomock.Any(), "loan-1", 21).Return(testLoan, nil)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/extend?days=21", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-numeric days", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/extend?days=soon", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero days rejected by the service", func(t *testing.T) {
		mockSvc.EXPECT().Extend(gomock.Any(), "loan-1", 0).Return(loan.Loan{}, loan.ErrInvalidExtension)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/extend?days=0", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_EXTENSION_PERIOD", resp.Error.Code)
	})

	t.Run("not active", func(t *testing.T) {
		mockSvc.EXPECT().Extend(gomock.Any(), "loan-1", 7).Return(loan.Loan{}, loan.ErrNotActive)

		req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/extend?days=7", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLoanHandler_Listings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := mocks.NewMockLoanService(ctrl)
	mux := newLoanMux(NewLoanHandler(mockSvc))

	t.Run("list", func(t *testing.T) {
		mockSvc.EXPECT().List(gomock.Any()).Return([]loan.Loan{testLoan}, nil)

		req := httptest.NewRequest(http.MethodGet, "/loans", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("overdue", func(t *testing.T) {
		mockSvc.EXPECT().ListOverdue(gomock.Any()).Return([]loan.Loan{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/loans/overdue", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("by user", func(t *testing.T) {
		mockSvc.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]loan.Loan{testLoan}, nil)

		req := httptest.NewRequest(http.MethodGet, "/loans/user/user-1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get by id not found", func(t *testing.T) {
		mockSvc.EXPECT().GetByID(gomock.Any(), "missing").Return(loan.Loan{}, loan.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/loans/missing", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
