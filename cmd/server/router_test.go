package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

func newTestServer(t *testing.T, staticPath string) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reg := prometheus.NewRegistry()
	router, err := newRouter(routerConfig{
		store:      store,
		metrics:    metrics.New(reg),
		gatherer:   reg,
		staticPath: staticPath,
	})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, "")

	status, body := get(t, server.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestConnectThroughRouter(t *testing.T) {
	server := newTestServer(t, "")
	ctx := context.Background()

	groups := apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL)
	ledger := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)

	created, err := groups.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Trip",
		Members: []api.Member{{ID: "a"}, {ID: "b"}},
	}))
	require.NoError(t, err)

	_, err = ledger.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
		GroupID:        created.Msg.Group.ID,
		Amount:         10,
		PaidBy:         "a",
		ParticipantIDs: []string{"a", "b"},
	}))
	require.NoError(t, err)

	_, err = groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	status, body := get(t, server.URL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `splitledger_rpc_requests_total{code="ok",procedure="/splitledger.v1.LedgerService/AddExpense"} 1`)
	assert.Contains(t, body, `splitledger_rpc_requests_total{code="not_found",procedure="/splitledger.v1.GroupService/GetGroup"} 1`)
	assert.Contains(t, body, `splitledger_expenses_recorded_total{kind="expense",split_method="equal"} 1`)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>ledger</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	server := newTestServer(t, dir)

	status, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ledger")

	_, body = get(t, server.URL+"/app.js")
	assert.Contains(t, body, "console.log")

	// Unknown paths fall back to the SPA entry point.
	_, body = get(t, server.URL+"/groups/123")
	assert.Contains(t, body, "ledger")

	status, _ = get(t, server.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.GroupServiceListGroupsProcedure, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Connect-Protocol-Version")
}
