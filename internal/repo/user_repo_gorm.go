package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-user-group-api/internal/domain"
	"go-user-group-api/pkg/utils"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Create login 的唯一性对所有行生效，软删的也算占用
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	tx := r.db.WithContext(ctx)

	var n int64
	if err := tx.Unscoped().Model(&domain.User{}).Where("login = ?", u.Login).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrConflict
	}

	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.Password = utils.HashPassword(u.Password)

	if err := tx.Create(u).Error; err != nil {
		// 并发兜底：唯一索引冲突同样归为 Conflict
		if isDupKey(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

// FindByID 软删只是打标记，按 id 命中就返回
func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Unscoped().Preload("Groups").First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindManyByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []domain.User
	err := r.db.WithContext(ctx).Preload("Groups").Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Search login 子串匹配 + 按 login 排序分页；Offset 是页号，跳过 Offset*Limit 行
func (r *UserRepo) Search(ctx context.Context, p domain.SearchParams) (*domain.SearchResult, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("login LIKE ?", "%"+p.LoginSubstring+"%")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "login ASC"
	if strings.EqualFold(p.Order, "DESC") {
		order = "login DESC"
	}

	var users []domain.User
	if err := q.Order(order).Limit(p.Limit).Offset(p.Offset * p.Limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return &domain.SearchResult{Data: users, Count: total}, nil
}

// CheckLogin 密码不对不是错误，IsValid=false 返回
func (r *UserRepo) CheckLogin(ctx context.Context, c domain.Credentials) (*domain.LoginCheck, error) {
	tx := r.db.WithContext(ctx)

	var u domain.User
	var err error
	if c.ID != "" {
		err = tx.First(&u, "id = ?", c.ID).Error
	} else {
		err = tx.First(&u, "login = ?", c.Login).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.LoginCheck{
		IsValid: utils.CheckPassword(c.Password, u.Password),
		User:    &u,
	}, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate, groups []domain.Group) (*domain.User, error) {
	tx := r.db.WithContext(ctx)

	var u domain.User
	err := tx.Unscoped().Preload("Groups").First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.DeletedAt.Valid {
		// 软删后的行不可再改
		return nil, domain.ErrNotFound
	}

	if upd.Login != "" && upd.Login != u.Login {
		var n int64
		if err := tx.Unscoped().Model(&domain.User{}).
			Where("login = ? AND id <> ?", upd.Login, id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.ErrConflict
		}
		u.Login = upd.Login
	}
	if upd.Password != "" {
		u.Password = utils.HashPassword(upd.Password)
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}

	if err := tx.Omit(clause.Associations).Save(&u).Error; err != nil {
		if isDupKey(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	// 空的分组集不清空既有关联
	if len(groups) > 0 {
		if err := tx.Model(&u).Association("Groups").Replace(groups); err != nil {
			return nil, err
		}
		u.Groups = groups
	}
	return &u, nil
}

// SoftDelete 返回删除前的快照
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (*domain.User, error) {
	tx := r.db.WithContext(ctx)

	var u domain.User
	err := tx.Unscoped().First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}

	if err := tx.Delete(&domain.User{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
