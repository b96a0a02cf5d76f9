package cmd

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weightboard/internal/api"
	"github.com/twiced-technology-gmbh/weightboard/internal/api/apitest"
	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
	"github.com/twiced-technology-gmbh/weightboard/internal/config"
	"github.com/twiced-technology-gmbh/weightboard/internal/output"
	"github.com/twiced-technology-gmbh/weightboard/internal/render"
	"github.com/twiced-technology-gmbh/weightboard/internal/session"
	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

func TestBaseURL_Precedence(t *testing.T) {
	cfg := config.NewDefault()
	cfg.API.BaseURL = "http://from-config:1"

	t.Setenv(config.EnvBaseURL, "")
	flagURL = ""
	assert.Equal(t, "http://from-config:1", baseURL(cfg))

	t.Setenv(config.EnvBaseURL, "http://from-env:2")
	assert.Equal(t, "http://from-env:2", baseURL(cfg))

	flagURL = "http://from-flag:3"
	t.Cleanup(func() { flagURL = "" })
	assert.Equal(t, "http://from-flag:3", baseURL(cfg))
}

func TestNewClient_InvalidURL(t *testing.T) {
	flagURL = "ftp://nope"
	t.Cleanup(func() { flagURL = "" })

	_, err := newClient(config.NewDefault())
	var cliErr *clierr.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierr.InvalidURL, cliErr.Code)
}

func newStatusFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().Bool("open", false, "")
	c.Flags().Bool("done", false, "")
	c.Flags().StringSlice("due", nil, "")
	c.Flags().String("search", "", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestStatusFilter(t *testing.T) {
	opts, err := statusFilter(newStatusFlags(t, "--open", "--due", "today,week", "--search", "rep"))
	require.NoError(t, err)
	require.NotNil(t, opts.Completed)
	assert.False(t, *opts.Completed)
	assert.Equal(t, []render.DateClass{render.ClassToday, render.ClassWeek}, opts.Classes)
	assert.Equal(t, "rep", opts.Search)

	_, err = statusFilter(newStatusFlags(t, "--open", "--done"))
	assert.Error(t, err)

	_, err = statusFilter(newStatusFlags(t, "--due", "someday"))
	assert.Error(t, err)
}

func TestApplyFormFlags(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("title", "", "")
	c.Flags().String("due", "", "")
	c.Flags().String("weight", "", "")
	c.Flags().SetNormalizeFunc(normalizeFormFlag)
	require.NoError(t, c.ParseFlags([]string{"--due-date", "tomorrow", "--weight", "4"}))

	form := session.Form{Title: "Keep", Due: "2026-10-19", Weight: "2"}
	applyFormFlags(c, &form)

	assert.Equal(t, session.Form{Title: "Keep", Due: "tomorrow", Weight: "4"}, form)
}

func TestConfigAccessors(t *testing.T) {
	cfg := config.NewDefault()
	acc := configAccessors()

	for _, key := range allConfigKeys() {
		_, ok := acc[key]
		assert.True(t, ok, key)
	}

	assert.Nil(t, acc["version"].set)
	require.NoError(t, acc["api.base_url"].set(cfg, "https://tasks.example.com"))
	assert.Equal(t, "https://tasks.example.com", acc["api.base_url"].get(cfg))
	assert.Error(t, acc["api.base_url"].set(cfg, "not a url"))

	require.NoError(t, acc["tui.date_colors.today"].set(cfg, "9"))
	assert.Equal(t, "9", acc["tui.date_colors.today"].get(cfg))

	assert.Error(t, acc["tui.refresh_interval"].set(cfg, "often"))
}

func TestCheckTitle(t *testing.T) {
	err := checkTitle(session.Form{})
	var cliErr *clierr.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierr.EmptyTitle, cliErr.Code)

	assert.NoError(t, checkTitle(session.Form{Title: "  "}))
	assert.NoError(t, checkTitle(session.Form{Title: "Ship"}))
}

func TestConn_FailedRefetchExitsCleanly(t *testing.T) {
	store := apitest.NewStore(task.Task{ID: task.NewID("1"), Title: "Ship", DueDate: "today", Weight: 1})
	srv := store.Server(t)
	client, err := api.New(srv.URL, "")
	require.NoError(t, err)

	var out, logs bytes.Buffer
	printer := &output.Printer{W: &out, Format: output.FormatCompact, Now: time.Now}
	ctx, cancel := context.WithCancel(context.Background())
	c := newConn(ctx, cancel, config.NewDefault(), client, printer, log.New(&logs, "Warning: ", 0))

	store.FailReads(true)
	c.loop.ToggleComplete(c.ctx, task.NewID("1"))

	require.NoError(t, c.done())
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "Warning: failed to fetch state")
	assert.Len(t, store.Mutations(), 1)
}
