package service

import (
	"context"

	"go-user-group-api/internal/domain"
)

type CreateUserInput struct {
	Login    string
	Password string
	Age      int
	Groups   []string // group ids
}

type UpdateUserInput struct {
	Login    string
	Password string
	Age      *int
	Groups   []string
}

type UserService struct {
	users  domain.UserRepository
	groups domain.GroupRepository
}

func NewUserService(users domain.UserRepository, groups domain.GroupRepository) *UserService {
	return &UserService{users: users, groups: groups}
}

// CreateUser 先把 group id 解析成实体，再交给仓储；Conflict 原样向上抛
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	groups, err := s.groups.FindManyByIDs(ctx, in.Groups)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &domain.User{
		Login:    in.Login,
		Password: in.Password,
		Age:      in.Age,
		Groups:   groups,
	})
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateUser 旧密码校验由请求层在调用前完成
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	groups, err := s.groups.FindManyByIDs(ctx, in.Groups)
	if err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, domain.UserUpdate{
		Login:    in.Login,
		Password: in.Password,
		Age:      in.Age,
	}, groups)
}

func (s *UserService) CheckLogin(ctx context.Context, c domain.Credentials) (*domain.LoginCheck, error) {
	return s.users.CheckLogin(ctx, c)
}

func (s *UserService) SoftDeleteUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.SoftDelete(ctx, id)
}

func (s *UserService) Search(ctx context.Context, p domain.SearchParams) (*domain.SearchResult, error) {
	return s.users.Search(ctx, p)
}
