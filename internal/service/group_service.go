package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var (
	errNameRequired    = errors.New("name required")
	errGroupIDRequired = errors.New("group_id required")
)

// Ensure GroupService implements the Connect handler interface
var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
	locks *GroupLocks
}

// NewGroupService creates a new GroupService with the given storage backend.
// locks must be shared with the LedgerService serving the same store.
func NewGroupService(store storage.Store, locks *GroupLocks) *GroupService {
	return &GroupService{store: store, locks: locks}
}

// normalizeMembers assigns ids to members that have none and rejects
// duplicates. A member without a name is named after its id.
func normalizeMembers(members []api.Member) ([]models.Member, error) {
	out := fromAPIMembers(members)
	seen := make(map[string]bool, len(out))
	for i := range out {
		m := &out[i]
		m.ID = strings.TrimSpace(m.ID)
		m.Name = strings.TrimSpace(m.Name)
		if m.ID == "" && m.Name == "" {
			return nil, fmt.Errorf("member %d: id or name required", i)
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if m.Name == "" {
			m.Name = m.ID
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate member id %q", m.ID)
		}
		seen[m.ID] = true
	}
	return out, nil
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(errNameRequired)
	}
	members, err := normalizeMembers(req.Msg.Members)
	if err != nil {
		return nil, invalidArgument(err)
	}

	group := &models.Group{Name: name, Members: members}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group with its members and expense history.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "expenses_count", len(group.Expenses))

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves all groups with their members.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group and replaces its member list. Cached balances
// are recomputed afterwards, since a re-added member may already appear in
// the expense history.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument(errGroupIDRequired)
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument(errNameRequired)
	}
	members, err := normalizeMembers(req.Msg.Members)
	if err != nil {
		return nil, invalidArgument(err)
	}

	defer s.locks.Lock(req.Msg.GroupID)()

	group := &models.Group{ID: req.Msg.GroupID, Name: name, Members: members}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	updated, _, err := reconcileGroup(ctx, s.store, group.ID)
	if err != nil {
		slog.Error("Failed to refresh balances after update", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)

	return connect.NewResponse(&api.UpdateGroupResponse{Group: toAPIGroup(updated)}), nil
}

// DeleteGroup removes a group with its members and expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	defer s.locks.Lock(req.Msg.GroupID)()

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
