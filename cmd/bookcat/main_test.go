package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	main "github.com/fwojciec/bookcat/cmd/bookcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "bookcat")
	assert.Contains(t, stdout.String(), "scrape")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_GlobalFlagsBeforeCommand(t *testing.T) {
	t.Parallel()

	// Kong accepts global flags ahead of the command word, so command
	// detection must come from the parsed context, not the raw args.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<nav><a href="/fiction">Fiction</a></nav>`))
	}))
	defer srv.Close()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--no-browser", "--db", ":memory:", "scrape", "navigation", srv.URL}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "completed")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)

	assert.Error(t, err)
}
