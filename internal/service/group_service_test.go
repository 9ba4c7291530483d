package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name: "Roommates",
		Members: []api.Member{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
			{Name: "Charlie"},
		},
	}))
	require.NoError(t, err)

	group := resp.Msg.Group
	require.NotNil(t, group)
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Roommates", group.Name)
	assert.NotZero(t, group.CreatedAt)
	require.Len(t, group.Members, 3)
	assert.Equal(t, api.Member{ID: "alice", Name: "Alice"}, group.Members[0])
	assert.NotEmpty(t, group.Members[2].ID, "member id should be generated")
	assert.Equal(t, "Charlie", group.Members[2].Name)
}

func TestCreateGroup_Invalid(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.CreateGroupRequest
	}{
		{"empty name", &api.CreateGroupRequest{Name: "  ", Members: []api.Member{{ID: "a"}}}},
		{"duplicate member", &api.CreateGroupRequest{Name: "x", Members: []api.Member{{ID: "a"}, {ID: "a", Name: "Other"}}}},
		{"anonymous member", &api.CreateGroupRequest{Name: "x", Members: []api.Member{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.groups.CreateGroup(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetGroup(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGroup(t, "a", "b")
	env.addExpense(t, &api.AddExpenseRequest{GroupID: created.ID, Description: "Pizza", Amount: 20, PaidBy: "a", ParticipantIDs: []string{"a", "b"}})

	resp, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: created.ID}))
	require.NoError(t, err)

	group := resp.Msg.Group
	assert.Equal(t, created.ID, group.ID)
	require.Len(t, group.Expenses, 1)
	assert.Equal(t, "Pizza", group.Expenses[0].Description)
	assert.Equal(t, map[string]float64{"a": 10, "b": -10}, balancesOf(group.Members))
}

func TestGetGroup_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: "nonexistent"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Groups)

	env.createGroup(t, "a", "b")
	env.createGroup(t, "c")

	resp, err = env.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 2)
	assert.Len(t, resp.Msg.Groups[0].Members, 2)
	assert.Len(t, resp.Msg.Groups[1].Members, 1)
}

func TestUpdateGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := env.createGroup(t, "a", "b", "c")
	env.addExpense(t, &api.AddExpenseRequest{GroupID: group.ID, Amount: 30, PaidBy: "a", ParticipantIDs: []string{"a", "b", "c"}})

	// Drop c. The history still references c.
	resp, err := env.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    "Ski Trip",
		Members: []api.Member{{ID: "a"}, {ID: "b"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Ski Trip", resp.Msg.Group.Name)
	assert.Equal(t, map[string]float64{"a": 20, "b": -10}, balancesOf(resp.Msg.Group.Members))

	// Re-adding c restores the balance derived from the history.
	resp, err = env.groups.UpdateGroup(ctx, connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    "Ski Trip",
		Members: []api.Member{{ID: "a"}, {ID: "b"}, {ID: "c", Name: "Carol"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 20, "b": -10, "c": -10}, balancesOf(resp.Msg.Group.Members))
	assert.Equal(t, "Carol", resp.Msg.Group.Members[2].Name)
	env.assertCacheConsistent(t, group.ID)
}

func TestUpdateGroup_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.groups.UpdateGroup(context.Background(), connect.NewRequest(&api.UpdateGroupRequest{
		GroupID: "nonexistent",
		Name:    "x",
		Members: []api.Member{{ID: "a"}},
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	group := env.createGroup(t, "a", "b")

	_, err := env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)

	_, err = env.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}
