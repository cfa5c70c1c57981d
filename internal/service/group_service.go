package service

import (
	"context"

	"go-user-group-api/internal/domain"
)

type CreateGroupInput struct {
	Name        string
	Permissions []string
	Users       []string // user ids
}

type UpdateGroupInput struct {
	Name        string
	Permissions []string
	Users       []string
}

type GroupService struct {
	groups domain.GroupRepository
	users  domain.UserRepository
}

func NewGroupService(groups domain.GroupRepository, users domain.UserRepository) *GroupService {
	return &GroupService{groups: groups, users: users}
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*domain.Group, error) {
	users, err := s.users.FindManyByIDs(ctx, in.Users)
	if err != nil {
		return nil, err
	}
	return s.groups.Create(ctx, &domain.Group{
		Name:        in.Name,
		Permissions: in.Permissions,
		Users:       users,
	})
}

func (s *GroupService) GetGroupByID(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.FindByID(ctx, id)
}

func (s *GroupService) UpdateGroup(ctx context.Context, id string, in UpdateGroupInput) (*domain.Group, error) {
	users, err := s.users.FindManyByIDs(ctx, in.Users)
	if err != nil {
		return nil, err
	}
	return s.groups.Update(ctx, id, domain.GroupUpdate{
		Name:        in.Name,
		Permissions: in.Permissions,
	}, users)
}

func (s *GroupService) DeleteGroup(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.Delete(ctx, id)
}

// AddUsersToGroup 组或用户集有一边为空即 NotFound；
// 只追加还不是成员的用户，落库在一个事务里完成
func (s *GroupService) AddUsersToGroup(ctx context.Context, groupID string, userIDs []string) (*domain.Group, error) {
	users, err := s.users.FindManyByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}

	newcomers := make([]domain.User, 0, len(users))
	for _, u := range users {
		member := false
		for _, g := range u.Groups {
			if g.ID == groupID {
				member = true
				break
			}
		}
		if !member {
			newcomers = append(newcomers, u)
		}
	}

	return s.groups.AppendMembers(ctx, groupID, newcomers)
}
