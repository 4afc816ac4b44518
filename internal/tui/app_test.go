package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/credential"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	store.SetClock(func() time.Time {
		return time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	})

	users := storage.NewUsers(store, credential.SHA256Codec{})
	expenses := storage.NewExpenses(store)
	reports := services.NewReportService(expenses)

	out := &bytes.Buffer{}
	return New(users, expenses, reports, strings.NewReader(input), out), out
}

func TestFullSession(t *testing.T) {
	script := strings.Join([]string{
		"2", "alice", "a@x.com", "secret1", // register
		"1", "alice", "secret1", // login
		"1", "Coffee", "4.50", "1", "2024-01-15", "morning", // add, category [1] = Food
		"2", // list
		"6", // summary
		"q", "", // quit
	}, "\n")

	app, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "registered — you can log in now")
	assert.Contains(t, got, "welcome, alice")
	assert.Contains(t, got, "saved expense #1")
	assert.Contains(t, got, "Coffee")
	assert.Contains(t, got, "this month: 4.50")
	assert.Contains(t, got, "today:      4.50")
	assert.Contains(t, got, "Food")
}

func TestLoginRejected(t *testing.T) {
	script := strings.Join([]string{
		"2", "alice", "a@x.com", "secret1",
		"1", "alice", "wrong1",
		"q", "",
	}, "\n")

	app, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "invalid username or password")
	assert.NotContains(t, out.String(), "welcome")
}

func TestAddRejectsBadAmount(t *testing.T) {
	script := strings.Join([]string{
		"2", "alice", "a@x.com", "secret1",
		"1", "alice", "secret1",
		"1", "Coffee", "-4.50", // rejected before the category prompt
		"2", // list is still empty
		"q", "",
	}, "\n")

	app, out := newTestApp(t, script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "invalid amount")
	assert.Contains(t, out.String(), "no expenses")
}

func TestRunEndsAtEOF(t *testing.T) {
	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(context.Background()))
}
