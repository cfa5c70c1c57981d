package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Login     string         `gorm:"uniqueIndex;size:191" json:"login"`
	Password  string         `gorm:"size:191" json:"-"` // bcrypt hash
	Age       int            `json:"age"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 与 Group.Users 共用同一张 users_groups 连接表
	Groups []Group `gorm:"many2many:users_groups;joinForeignKey:user_id;joinReferences:group_id" json:"groups,omitempty"`
}

func (User) TableName() string { return "users" }

// Available 未被软删即视为可用
func (u *User) Available() bool { return !u.DeletedAt.Valid }

type SearchParams struct {
	LoginSubstring string
	Offset         int // 页号（从 0 开始），skip = Offset*Limit
	Limit          int
	Order          string // "ASC" / "DESC"
}

type SearchResult struct {
	Data  []User
	Count int64
}

// Credentials ID 优先于 Login
type Credentials struct {
	ID       string
	Login    string
	Password string
}

// LoginCheck checkLogin 的统一返回形态
type LoginCheck struct {
	IsValid bool
	User    *User
}

// UserUpdate 部分更新：零值字段不改动
type UserUpdate struct {
	Login    string
	Password string // 明文，仓储负责重新散列
	Age      *int
}

type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindManyByIDs(ctx context.Context, ids []string) ([]User, error)
	Search(ctx context.Context, p SearchParams) (*SearchResult, error)
	CheckLogin(ctx context.Context, c Credentials) (*LoginCheck, error)
	Update(ctx context.Context, id string, upd UserUpdate, groups []Group) (*User, error)
	SoftDelete(ctx context.Context, id string) (*User, error)
}
