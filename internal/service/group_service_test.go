package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-user-group-api/internal/domain"
	"go-user-group-api/internal/service"
)

func TestGroupServiceCreateGroup(t *testing.T) {
	ur := new(UserRepoMock)
	gr := new(GroupRepoMock)

	ur.On("FindManyByIDs", mock.Anything, []string{"u1"}).
		Return([]domain.User{{ID: "u1", Login: "alice"}}, nil).Once()
	gr.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
		return g.Name == "admins" && len(g.Users) == 1 && g.Users[0].ID == "u1"
	})).Return(&domain.Group{ID: "g1", Name: "admins"}, nil).Once()

	svc := service.NewGroupService(gr, ur)
	g, err := svc.CreateGroup(context.Background(), service.CreateGroupInput{
		Name: "admins", Permissions: []string{"read"}, Users: []string{"u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "g1", g.ID)
	ur.AssertExpectations(t)
	gr.AssertExpectations(t)
}

func TestGroupServiceAddUsersToGroup(t *testing.T) {
	member := domain.User{ID: "u1", Login: "alice", Groups: []domain.Group{{ID: "g1"}}}
	outsider := domain.User{ID: "u2", Login: "bob"}

	tests := []struct {
		name       string
		userIDs    []string
		setupMocks func(ur *UserRepoMock, gr *GroupRepoMock)
		wantErr    error
		wantLen    int
	}{
		{
			name:    "appends only non-members",
			userIDs: []string{"u1", "u2"},
			setupMocks: func(ur *UserRepoMock, gr *GroupRepoMock) {
				ur.On("FindManyByIDs", mock.Anything, []string{"u1", "u2"}).
					Return([]domain.User{member, outsider}, nil).Once()
				gr.On("FindByID", mock.Anything, "g1").
					Return(&domain.Group{ID: "g1", Users: []domain.User{member}}, nil).Once()
				// u1 已经是成员，只追加 u2
				gr.On("AppendMembers", mock.Anything, "g1", []domain.User{outsider}).
					Return(&domain.Group{ID: "g1", Users: []domain.User{member, outsider}}, nil).Once()
			},
			wantLen: 2,
		},
		{
			name:    "missing group is not found",
			userIDs: []string{"u2"},
			setupMocks: func(ur *UserRepoMock, gr *GroupRepoMock) {
				ur.On("FindManyByIDs", mock.Anything, []string{"u2"}).
					Return([]domain.User{outsider}, nil).Once()
				gr.On("FindByID", mock.Anything, "g1").Return(nil, domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "no resolvable users is not found",
			userIDs: []string{"missing"},
			setupMocks: func(ur *UserRepoMock, gr *GroupRepoMock) {
				ur.On("FindManyByIDs", mock.Anything, []string{"missing"}).Return(nil, nil).Once()
				gr.On("FindByID", mock.Anything, "g1").
					Return(&domain.Group{ID: "g1"}, nil).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "transaction failure surfaces as internal",
			userIDs: []string{"u2"},
			setupMocks: func(ur *UserRepoMock, gr *GroupRepoMock) {
				ur.On("FindManyByIDs", mock.Anything, []string{"u2"}).
					Return([]domain.User{outsider}, nil).Once()
				gr.On("FindByID", mock.Anything, "g1").
					Return(&domain.Group{ID: "g1"}, nil).Once()
				gr.On("AppendMembers", mock.Anything, "g1", []domain.User{outsider}).
					Return(nil, domain.ErrTxFailed).Once()
			},
			wantErr: domain.ErrTxFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ur := new(UserRepoMock)
			gr := new(GroupRepoMock)
			tt.setupMocks(ur, gr)
			svc := service.NewGroupService(gr, ur)

			g, err := svc.AddUsersToGroup(context.Background(), "g1", tt.userIDs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, g.Users, tt.wantLen)
			}
			ur.AssertExpectations(t)
			gr.AssertExpectations(t)
		})
	}
}

func TestGroupServiceDeleteGroup(t *testing.T) {
	ur := new(UserRepoMock)
	gr := new(GroupRepoMock)

	gr.On("Delete", mock.Anything, "g1").Return(&domain.Group{ID: "g1"}, nil).Once()
	gr.On("Delete", mock.Anything, "g1").Return(nil, domain.ErrNotFound).Once()

	svc := service.NewGroupService(gr, ur)

	_, err := svc.DeleteGroup(context.Background(), "g1")
	require.NoError(t, err)
	_, err = svc.DeleteGroup(context.Background(), "g1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	gr.AssertExpectations(t)
}
