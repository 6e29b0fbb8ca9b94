// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/scrapbook/internal/cli"
	"github.com/taibuivan/scrapbook/internal/platform/sec"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
	"github.com/taibuivan/scrapbook/internal/scroll"
)

type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// run executes the root command and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return stdout.String(), err
}

func newItemServer(t *testing.T) string {
	t.Helper()

	service := scrapbook.NewService(scrapbook.NewMemoryRepository(), nil, slog.New(slog.DiscardHandler))
	handler := scrapbook.NewHandler(service, sec.PolicyOpen)

	router := chi.NewRouter()
	router.Mount("/api/scrapbook-items", handler.Routes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

/*
TestCommandPresence checks the command tree.
*/
func TestCommandPresence(t *testing.T) {
	root := cli.NewRootCommand()

	for _, path := range [][]string{
		{"serve"}, {"migrate"}, {"seed"}, {"token"}, {"hash-passphrase"}, {"simulate"},
		{"items", "list"}, {"items", "add"}, {"items", "rm"},
	} {
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			found, _, err := root.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], found.Name())
		})
	}
}

/*
TestInvalidFormat rejects unknown output formats.
*/
func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "", "simulate", "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")
}

/*
TestItemsCommands adds, lists and removes items through a server.
*/
func TestItemsCommands(t *testing.T) {
	url := newItemServer(t)

	out, err := run(t, "", "items", "add", "https://img.example/a.jpg", "--caption", "Golden hour", "--width", "450", "--server", url)
	require.NoError(t, err)
	assert.Equal(t, "1\t450\tcenter\tnone\thttps://img.example/a.jpg\tGolden hour\n", out)

	out, err = run(t, "", "items", "list", "--format", "json", "--server", url)
	require.NoError(t, err)

	var listed response
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, "ok", listed.Status)

	var items []*scrapbook.Item
	require.NoError(t, json.Unmarshal(listed.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Golden hour", *items[0].Caption)

	out, err = run(t, "", "items", "rm", "1", "--server", url)
	require.NoError(t, err)
	assert.Equal(t, "removed 1\n", out)

	out, err = run(t, "", "items", "list", "--server", url)
	require.NoError(t, err)
	assert.Empty(t, out)
}

/*
TestItemsCommands_Failures maps failures to exit codes.
*/
func TestItemsCommands_Failures(t *testing.T) {
	url := newItemServer(t)

	_, err := run(t, "", "items", "rm", "abc", "--server", url)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))

	_, err = run(t, "", "items", "add", "not a url", "--server", url)
	var apiErr *scrapbook.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))

	_, err = run(t, "", "items", "list", "--server", "http://127.0.0.1:1")
	assert.True(t, scrapbook.IsRetryable(err))
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(err))
}

/*
TestHashPassphrase prints a hash that verifies.
*/
func TestHashPassphrase(t *testing.T) {
	out, err := run(t, "open sesame\n", "hash-passphrase")
	require.NoError(t, err)

	assert.True(t, sec.CheckPassphrase("open sesame", strings.TrimSpace(out)))

	_, err = run(t, "", "hash-passphrase")
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

/*
TestSimulate jumps back exactly one copy height while auto-scrolling.
*/
func TestSimulate(t *testing.T) {
	out, err := run(t, "", "simulate", "--format", "json",
		"--content-height", "2700", "--client-height", "800", "--duration", "10s")
	require.NoError(t, err)

	var result response
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	var view struct {
		Samples []struct {
			Offset float64 `json:"offset"`
			State  string  `json:"state"`
		} `json:"samples"`
		Jumps []scroll.Jump `json:"jumps"`
	}
	require.NoError(t, json.Unmarshal(result.Data, &view))

	require.NotEmpty(t, view.Samples)
	assert.InDelta(t, 900, view.Samples[0].Offset, 0.001)

	require.NotEmpty(t, view.Jumps)
	for _, jump := range view.Jumps {
		assert.InDelta(t, -900, jump.To-jump.From, 0.001)
	}
}

/*
TestSimulate_Idle never jumps without auto-scroll or gestures.
*/
func TestSimulate_Idle(t *testing.T) {
	out, err := run(t, "", "simulate", "--no-auto-scroll", "--duration", "2s")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "0 jumps\n"))

	_, err = run(t, "", "simulate", "--wheel", "soon:-3")
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(err))
}

/*
TestGetExitCode defaults unknown errors to a failure.
*/
func TestGetExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitSuccess, cli.GetExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.GetExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitCommandError, cli.GetExitCode(cli.NewExitError(cli.ExitCommandError, "bad")))
}
