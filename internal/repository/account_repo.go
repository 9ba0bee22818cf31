package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"handloom_market/internal/model"
)

// AccountRepository 注册账号
type AccountRepository interface {
	List(ctx context.Context) []model.Account
	Save(ctx context.Context, accounts []model.Account)
	FindByEmail(ctx context.Context, email string) (*model.Account, bool)
}

type accountRepo struct {
	*collection[model.Account]
	now func() time.Time
}

func NewAccountRepository(records *Records) AccountRepository {
	return &accountRepo{
		collection: newCollection(records, KeyAccounts, decodeAccount),
		now:        time.Now,
	}
}

// List 读取时补全缺失的 id / status / registrationDate，有补全则回写一次
func (r *accountRepo) List(ctx context.Context) []model.Account {
	list := r.list(ctx)

	changed := false
	for i := range list {
		if EnsureAccountShape(&list[i], r.now()) {
			changed = true
		}
	}
	if changed {
		r.save(ctx, list)
	}
	return list
}

func (r *accountRepo) Save(ctx context.Context, accounts []model.Account) {
	r.save(ctx, accounts)
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, bool) {
	list := r.List(ctx)
	i := find(list, func(a *model.Account) bool { return a.SameEmail(email) })
	if i < 0 {
		return nil, false
	}
	return &list[i], true
}

// EnsureAccountShape 补全账号必需字段，返回是否有修改
func EnsureAccountShape(a *model.Account, now time.Time) bool {
	changed := false
	if a.ID == "" {
		a.ID = "u_" + uuid.NewString()
		changed = true
	}
	if a.Status == "" {
		a.Status = model.AccountActive
		changed = true
	}
	if a.RegistrationDate == "" {
		a.RegistrationDate = now.UTC().Format(time.RFC3339)
		changed = true
	}
	if a.Role == "" {
		a.Role = model.RoleBuyer
		changed = true
	}
	return changed
}
