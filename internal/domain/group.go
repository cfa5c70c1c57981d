package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Permissions 以 JSON 文本落库，顺序无意义
type Permissions []string

func (p Permissions) Value() (driver.Value, error) {
	if p == nil {
		p = Permissions{}
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *Permissions) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Permissions{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("permissions: unsupported scan source")
}

type Group struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:191" json:"name"`
	Permissions Permissions    `gorm:"type:text" json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Users []User `gorm:"many2many:users_groups;joinForeignKey:group_id;joinReferences:user_id" json:"users,omitempty"`
}

func (Group) TableName() string { return "groups" }

// GroupUpdate 部分更新：Name 空串、Permissions nil 表示不改动
type GroupUpdate struct {
	Name        string
	Permissions Permissions
}

type GroupRepository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	FindByID(ctx context.Context, id string) (*Group, error)
	FindManyByIDs(ctx context.Context, ids []string) ([]Group, error)
	Update(ctx context.Context, id string, upd GroupUpdate, users []User) (*Group, error)
	Delete(ctx context.Context, id string) (*Group, error)
	AppendMembers(ctx context.Context, groupID string, users []User) (*Group, error)
}
