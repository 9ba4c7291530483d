package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

type testEnv struct {
	groups apiconnect.GroupServiceClient
	ledger apiconnect.LedgerServiceClient
	store  *sqlite.SQLiteStore
}

// setupTestServer creates a test server with both GroupService and LedgerService
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	locks := NewGroupLocks()
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(store, locks))
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(
		NewLedgerService(store, locks, metrics.New(prometheus.NewRegistry())),
	)

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		groups: apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		ledger: apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		store:  store,
	}
}

// createGroup creates a group whose member ids double as names.
func (e *testEnv) createGroup(t *testing.T, ids ...string) *api.Group {
	t.Helper()
	members := make([]api.Member, len(ids))
	for i, id := range ids {
		members[i] = api.Member{ID: id}
	}
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Trip",
		Members: members,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func (e *testEnv) addExpense(t *testing.T, req *api.AddExpenseRequest) *api.AddExpenseResponse {
	t.Helper()
	resp, err := e.ledger.AddExpense(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg
}

func balancesOf(members []api.Member) map[string]float64 {
	out := make(map[string]float64, len(members))
	for _, m := range members {
		out[m.ID] = m.Balance
	}
	return out
}

// assertCacheConsistent checks that stored member balances equal a fresh
// recomputation from the stored expenses.
func (e *testEnv) assertCacheConsistent(t *testing.T, groupID string) {
	t.Helper()
	group, err := e.store.GetGroup(context.Background(), groupID)
	require.NoError(t, err)

	computed := calculator.CalculateNetBalances(group.Members, group.Expenses)
	for _, m := range group.Members {
		assert.InDelta(t, computed[m.ID], m.Balance, 1e-6, "member %s", m.ID)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

