package apiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/pkg/api"
)

// stubGroups answers GetGroup and fails everything else.
type stubGroups struct{}

func (stubGroups) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("not implemented"))
}

func (stubGroups) GetGroup(_ context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if req.Msg.GroupID != "g1" {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no such group"))
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: &api.Group{
		ID:      "g1",
		Name:    "Trip",
		Members: []api.Member{{ID: "a", Name: "Ann", Balance: 2.5}},
	}}), nil
}

func (stubGroups) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return connect.NewResponse(&api.ListGroupsResponse{}), nil
}

func (stubGroups) UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("not implemented"))
}

func (stubGroups) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("not implemented"))
}

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	path, handler := NewGroupServiceHandler(stubGroups{})
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGroupServiceClient(t *testing.T) {
	server := newStubServer(t)
	client := NewGroupServiceClient(http.DefaultClient, server.URL+"/")

	resp, err := client.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: "g1"}))
	require.NoError(t, err)
	assert.Equal(t, "Trip", resp.Msg.Group.Name)
	assert.Equal(t, []api.Member{{ID: "a", Name: "Ann", Balance: 2.5}}, resp.Msg.Group.Members)

	_, err = client.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupID: "nope"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	list, err := client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Groups)
}

func TestGroupServiceHandler_PlainJSON(t *testing.T) {
	server := newStubServer(t)

	resp, err := http.Post(server.URL+GroupServiceGetGroupProcedure, "application/json", strings.NewReader(`{"groupId":"g1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.GetGroupResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "g1", got.Group.ID)
}

func TestGroupServiceHandler_UnknownProcedure(t *testing.T) {
	server := newStubServer(t)

	resp, err := http.Post(server.URL+"/"+GroupServiceName+"/Nope", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJSONCodec_EmptyBody(t *testing.T) {
	var req api.ListGroupsRequest
	assert.NoError(t, jsonCodec{name: codecNameJSON}.Unmarshal(nil, &req))
	assert.Equal(t, "json", jsonCodec{name: codecNameJSON}.Name())
}
