package api_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/phrazzld/shelf/internal/api"
	"github.com/phrazzld/shelf/internal/api/middleware"
	"github.com/phrazzld/shelf/internal/domain"
	"github.com/phrazzld/shelf/internal/events"
	"github.com/phrazzld/shelf/internal/platform/memstore"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testServer struct {
	handler http.Handler
	now     time.Time
}

// newTestServer wires the router to services backed by a fresh in-memory
// database. The clock reads s.now so tests can move time forward.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	db := memstore.New(discardLogger)
	stores := db.Stores()

	catalog, err := service.NewCatalogService(stores.Books, discardLogger)
	require.NoError(t, err)
	members, err := service.NewMembershipService(stores.Users, discardLogger)
	require.NoError(t, err)
	loans, err := service.NewLoanService(
		db,
		stores.Loans,
		domain.DefaultFeePolicy,
		service.ClockFunc(func() time.Time { return ts.now }),
		events.NewInMemoryEventEmitter(discardLogger),
		discardLogger,
	)
	require.NoError(t, err)

	ts.handler = api.NewRouter(api.Services{
		Catalog:    catalog,
		Membership: members,
		Loans:      loans,
	}, discardLogger)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String())

	var body struct {
		Error   string `json:"error"`
		TraceID string `json:"trace_id"`
	}
	decode(t, rec, &body)
	assert.Equal(t, message, body.Error)
	_, err := uuid.Parse(body.TraceID)
	assert.NoError(t, err, "trace_id should be a UUID")
	assert.Equal(t, body.TraceID, rec.Header().Get(middleware.TraceIDHeader))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestBooksEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/books",
		`{"title":"The Hobbit","author":"J.R.R. Tolkien","genre":"Fantasy","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var hobbit domain.Book
	decode(t, rec, &hobbit)
	assert.Equal(t, int64(1), hobbit.ID)
	assert.Equal(t, 2, hobbit.Quantity)

	rec = ts.do(t, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Frank Herbert","genre":"SF","quantity":0}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("search matches author", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/books?q=tolkien", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var books []domain.Book
		decode(t, rec, &books)
		require.Len(t, books, 1)
		assert.Equal(t, "The Hobbit", books[0].Title)
	})

	t.Run("empty query lists everything", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/books", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var books []domain.Book
		decode(t, rec, &books)
		assert.Len(t, books, 2)
	})

	t.Run("available skips zero stock", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/books/available", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var books []domain.Book
		decode(t, rec, &books)
		require.Len(t, books, 1)
		assert.Equal(t, hobbit.ID, books[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/books/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var book domain.Book
		decode(t, rec, &book)
		assert.Equal(t, hobbit, book)
	})

	t.Run("unknown id", func(t *testing.T) {
		assertError(t, ts.do(t, http.MethodGet, "/api/books/99", ""), http.StatusNotFound, "Book not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		assertError(t, ts.do(t, http.MethodGet, "/api/books/abc", ""), http.StatusBadRequest, "Invalid ID")
	})
}

func TestAddBookValidation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{"author":"A","quantity":1}`, "Invalid title: required field"},
		{"missing quantity", `{"title":"T"}`, "Invalid quantity: required field"},
		{"negative quantity", `{"title":"T","quantity":-1}`, "Invalid quantity: out of range"},
		{"blank title", `{"title":"   ","quantity":1}`, "title cannot be empty"},
		{"unknown field", `{"title":"T","quantity":1,"isbn":"x"}`, "Invalid request format"},
		{"not json", `title=T`, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/books", tc.body)
			assertError(t, rec, http.StatusBadRequest, tc.message)
		})
	}
}

func TestUsersEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users",
		`{"name":"Alice","email":"alice@example.com","phone":"555-0100"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var alice domain.User
	decode(t, rec, &alice)
	assert.Equal(t, int64(1), alice.ID)
	assert.Equal(t, "555-0100", alice.Phone)

	rec = ts.do(t, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assertError(t, ts.do(t, http.MethodGet, "/api/users/7", ""), http.StatusNotFound, "User not found")
	assertError(t, ts.do(t, http.MethodGet, "/api/users/7/loans", ""), http.StatusNotFound, "User not found")
	assertError(t,
		ts.do(t, http.MethodPost, "/api/users", `{"name":"Bob","email":"not-an-email"}`),
		http.StatusBadRequest, "Invalid email: invalid email format")

	rec = ts.do(t, http.MethodGet, "/api/users/1/loans", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, strings.TrimSpace(rec.Body.String()))
}

func TestLoanLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/users",
		`{"name":"Alice","email":"alice@example.com"}`).Code)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/books",
		`{"title":"The Hobbit","author":"J.R.R. Tolkien","genre":"Fantasy","quantity":1}`).Code)

	rec := ts.do(t, http.MethodPost, "/api/loans", `{"user_id":1,"book_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var loan domain.Loan
	decode(t, rec, &loan)
	assert.Equal(t, int64(1), loan.ID)
	assert.Nil(t, loan.ReturnDate)

	// The only copy is out.
	assertError(t, ts.do(t, http.MethodPost, "/api/loans", `{"user_id":1,"book_id":1}`),
		http.StatusConflict, "Book not available")

	rec = ts.do(t, http.MethodGet, "/api/users/1/loans", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var open []domain.OpenLoan
	decode(t, rec, &open)
	require.Len(t, open, 1)
	assert.Equal(t, "The Hobbit", open[0].BookTitle)

	ts.now = ts.now.AddDate(0, 0, 10)

	rec = ts.do(t, http.MethodPost, "/api/loans/1/return", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &loan)
	require.NotNil(t, loan.LateFee)
	assert.InDelta(t, 1.5, *loan.LateFee, 1e-9)
	require.NotNil(t, loan.ReturnDate)

	assertError(t, ts.do(t, http.MethodPost, "/api/loans/1/return", ""),
		http.StatusConflict, "Book already returned")
	assertError(t, ts.do(t, http.MethodPost, "/api/loans/42/return", ""),
		http.StatusNotFound, "Transaction not found")

	rec = ts.do(t, http.MethodGet, "/api/books/available", "")
	var books []domain.Book
	decode(t, rec, &books)
	require.Len(t, books, 1, "returned copy is back on the shelf")
}

func TestBorrowErrors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/books",
		`{"title":"Dune","quantity":3}`).Code)

	assertError(t, ts.do(t, http.MethodPost, "/api/loans", `{"user_id":0,"book_id":1}`),
		http.StatusBadRequest, "Invalid userid: required field")
	assertError(t, ts.do(t, http.MethodPost, "/api/loans", `{"user_id":1,"book_id":9}`),
		http.StatusConflict, "Book not available")
	assertError(t, ts.do(t, http.MethodPost, "/api/loans", `{"user_id":5,"book_id":1}`),
		http.StatusUnprocessableEntity, "Referenced user or book does not exist")
}
