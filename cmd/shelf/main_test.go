package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/phrazzld/shelf/internal/config"
	"github.com/phrazzld/shelf/internal/console"
	"github.com/phrazzld/shelf/internal/platform/logger"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useMemoryStore points configuration at the in-memory driver with quiet logs.
func useMemoryStore(t *testing.T, output string) {
	t.Helper()
	t.Setenv("SHELF_DATABASE_DRIVER", config.DriverMemory)
	t.Setenv("SHELF_DATABASE_URL", "")
	t.Setenv("SHELF_SERVER_LOG_LEVEL", "error")
	t.Setenv("SHELF_CONSOLE_OUTPUT", output)
}

func runShelf(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_OneShot(t *testing.T) {
	useMemoryStore(t, "text")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"add book", []string{"add-book", "Dune", "Frank Herbert", "SF", "2"}, exitOK, "Book added successfully! (book id 1)"},
		{"operation names are case-insensitive", []string{"AVAILABLE"}, exitOK, "No books found."},
		{"unknown book is unavailable", []string{"borrow", "1", "1"}, exitOK, "Book not available."},
		{"unknown loan", []string{"return", "5"}, exitOK, "Transaction not found."},
		{"register", []string{"register", "Alice", "alice@example.com"}, exitOK, "User registered successfully! (user id 1)"},
		{"invalid email", []string{"register", "Alice", "nope"}, exitOK, "Invalid input"},
		{"unknown operation", []string{"lend", "1"}, exitUsage, `Unknown operation "lend".`},
		{"wrong argument count", []string{"return"}, exitUsage, "usage: return"},
		{"non-numeric id", []string{"borrow", "one", "1"}, exitUsage, "user id must be a whole number"},
		{"quit", []string{"quit"}, exitOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, out, _ := runShelf(t, "", tc.args...)

			assert.Equal(t, tc.wantCode, code, "stdout: %s", out)
			assert.Contains(t, out, tc.wantOut)
		})
	}
}

func TestRun_REPL(t *testing.T) {
	useMemoryStore(t, "text")

	input := strings.Join([]string{
		`add-book "The Hobbit" "J.R.R. Tolkien" Fantasy 1`,
		`register Alice alice@example.com 555-0100`,
		`borrow 1 1`,
		`borrow 1 1`,
		`loans 1`,
		`borrow 7 1`,
		`return 1`,
		`return 1`,
		`search tolkien`,
		`quit`,
		`available`,
	}, "\n")

	code, out, stderr := runShelf(t, input)

	require.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, out, console.Banner)
	assert.Contains(t, out, replPrompt)
	assert.Contains(t, out, "Book borrowed successfully! (transaction id 1)")
	assert.Contains(t, out, "Book not available.")
	assert.Contains(t, out, "The Hobbit")
	assert.Contains(t, out, "Book returned successfully with a late fee of 0.00")
	assert.Contains(t, out, "Book already returned.")
	assert.NotContains(t, out, "No books found.", "input after quit is not read")
}

func TestRun_REPLContinuesAfterFailure(t *testing.T) {
	useMemoryStore(t, "text")

	input := "add-book Dune Herbert SF 1\nborrow 42 1\navailable\n"

	code, out, stderr := runShelf(t, input)

	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "Dune", "the loop keeps going after a failed operation")
	assert.Contains(t, stderr, "operation failed")
}

func TestRun_JSONOutput(t *testing.T) {
	useMemoryStore(t, "json")

	code, out, _ := runShelf(t, "add-book Dune Herbert SF 1\nsearch dune\n")

	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, console.Banner, "no banner or prompt in JSON mode")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"kind":"book_added"`)
	assert.Contains(t, lines[1], `"kind":"books"`)
}

func TestRun_Flags(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		code, _, stderr := runShelf(t, "", "-h")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stderr, "-config")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, _ := runShelf(t, "", "-verbose")
		assert.Equal(t, exitUsage, code)
	})

	t.Run("config file", func(t *testing.T) {
		useMemoryStore(t, "")
		require.NoError(t, os.Unsetenv("SHELF_CONSOLE_OUTPUT"))
		path := filepath.Join(t.TempDir(), "shelf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("console:\n  output: json\n"), 0o600))

		code, out, _ := runShelf(t, "", "-config", path, "available")

		assert.Equal(t, exitOK, code)
		assert.Contains(t, out, `"kind":"books"`)
	})

	t.Run("invalid config", func(t *testing.T) {
		useMemoryStore(t, "text")
		t.Setenv("SHELF_DATABASE_DRIVER", "sqlite")

		code, _, stderr := runShelf(t, "", "available")

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stderr, "Failed to load configuration")
	})
}

func TestRun_MigrateNeedsPostgres(t *testing.T) {
	useMemoryStore(t, "text")

	code, _, stderr := runShelf(t, "", "migrate", "up")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Migrations require the postgres driver")

	code, _, stderr = runShelf(t, "", "migrate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: shelf migrate")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitOK, exitCode(console.ErrQuit))
	assert.Equal(t, exitUsage, exitCode(fmt.Errorf("%w: bad", console.ErrUsage)))
	assert.Equal(t, exitFailure, exitCode(service.NewDataAccessError("borrow", "insert", errors.New("boom"))))
}

func TestApplicationRouter(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error", LogFormat: "text"},
		Database: config.DatabaseConfig{Driver: config.DriverMemory, MaxOpenConns: 1},
		Loans:    config.LoanConfig{GraceDays: 7, DailyFee: 0.5},
		Console:  config.ConsoleConfig{Output: "text"},
	}
	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	defer app.cleanup()

	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/books",
		strings.NewReader(`{"title":"Dune","quantity":1}`)))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	useMemoryStore(t, "text")

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	t.Setenv("SHELF_SERVER_PORT", strconv.Itoa(port))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"serve"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitOK, code, "stderr: %s", stderr.String())
}
