package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-user-group-api/internal/domain"
	"go-user-group-api/pkg/utils"
)

type GroupRepo struct{ db *gorm.DB }

func NewGroupRepo(db *gorm.DB) *GroupRepo { return &GroupRepo{db: db} }

// Create 组名不要求唯一；初始成员通过关联一并写入
func (r *GroupRepo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if g.ID == "" {
		g.ID = utils.NewID()
	}
	if g.Permissions == nil {
		g.Permissions = domain.Permissions{}
	}
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GroupRepo) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	var g domain.Group
	err := r.db.WithContext(ctx).Preload("Users").First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindManyByIDs 只返回存在的那部分，不逐个报缺失
func (r *GroupRepo) FindManyByIDs(ctx context.Context, ids []string) ([]domain.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var groups []domain.Group
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GroupRepo) Update(ctx context.Context, id string, upd domain.GroupUpdate, users []domain.User) (*domain.Group, error) {
	tx := r.db.WithContext(ctx)

	var g domain.Group
	err := tx.Preload("Users").First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if upd.Name != "" {
		g.Name = upd.Name
	}
	if upd.Permissions != nil {
		g.Permissions = upd.Permissions
	}

	if err := tx.Omit(clause.Associations).Save(&g).Error; err != nil {
		return nil, err
	}

	// 与用户侧一致：空成员集不清空既有关联
	if len(users) > 0 {
		if err := tx.Model(&g).Association("Users").Replace(users); err != nil {
			return nil, err
		}
		g.Users = users
	}
	return &g, nil
}

// Delete 组是硬删（用户是软删，两者策略不同是有意为之）；
// 已打软删标记的组视为不存在
func (r *GroupRepo) Delete(ctx context.Context, id string) (*domain.Group, error) {
	tx := r.db.WithContext(ctx)

	var g domain.Group
	err := tx.Unscoped().Preload("Users").First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}

	// 连同 users_groups 的关联行一起删
	if err := tx.Unscoped().Select(clause.Associations).Delete(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// AppendMembers 成员写入必须原子：同一事务里重读成员集再追加，
// 连接表上用 upsert，并发调用不会产生重复行也不会互相覆盖
func (r *GroupRepo) AppendMembers(ctx context.Context, groupID string, users []domain.User) (*domain.Group, error) {
	var g domain.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Users").First(&g, "id = ?", groupID).Error; err != nil {
			return err
		}
		if len(users) > 0 {
			if err := tx.Model(&g).Association("Users").Append(users); err != nil {
				return err
			}
		}
		// 事务内重读，拿到追加后的成员集
		return tx.Preload("Users").First(&g, "id = ?", groupID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		// 事务路径是唯一把底层故障折成哨兵的地方
		return nil, domain.ErrTxFailed
	}
	return &g, nil
}
