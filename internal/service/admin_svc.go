package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/pkg/log"
)

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrNotArtisan   = errors.New("该账号不是手艺人")
)

// AdminService 管理后台：首页、用户、手艺人
type AdminService struct {
	repos  *Repositories
	recent int
	now    Clock
}

func NewAdminService(repos *Repositories, recent int) *AdminService {
	return &AdminService{repos: repos, recent: recent, now: time.Now}
}

func (s *AdminService) SetClock(now Clock) {
	s.now = now
}

// Overview 管理后台首页
func (s *AdminService) Overview(ctx context.Context) analytics.Overview {
	return analytics.BuildOverview(analytics.OverviewInput{
		Accounts: s.repos.Accounts.List(ctx),
		Products: s.repos.Products.List(ctx),
		Orders:   s.repos.Orders.List(ctx),
		Tickets:  s.repos.Tickets.List(ctx),
	}, s.now(), s.recent)
}

// ==================== 用户管理 ====================

// Users 按邮箱/名称搜索，按角色过滤
func (s *AdminService) Users(ctx context.Context, q *dto.UserListQuery) []model.Account {
	keyword := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]model.Account, 0)
	for _, a := range s.repos.Accounts.List(ctx) {
		if q.Role != "" && a.Role != q.Role {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(a.Email), keyword) &&
			!strings.Contains(strings.ToLower(a.Name), keyword) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ToggleStatus active 与 suspended 之间切换，其他状态切换为 active
func (s *AdminService) ToggleStatus(ctx context.Context, id string) (*model.Account, error) {
	return s.updateAccount(ctx, id, func(a *model.Account) error {
		if a.Status == model.AccountActive {
			a.Status = model.AccountSuspended
		} else {
			a.Status = model.AccountActive
		}
		return nil
	})
}

// ResetPassword 重置密码
func (s *AdminService) ResetPassword(ctx context.Context, id, password string) error {
	_, err := s.updateAccount(ctx, id, func(a *model.Account) error {
		a.Password = password
		return nil
	})
	return err
}

// ChangeRole 修改角色
func (s *AdminService) ChangeRole(ctx context.Context, id, role string) (*model.Account, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.updateAccount(ctx, id, func(a *model.Account) error {
		a.Role = role
		return nil
	})
}

// ForceLogout 当前会话属于该账号时清除会话，返回是否清除
func (s *AdminService) ForceLogout(ctx context.Context, id string) (bool, error) {
	acc, err := s.findAccount(ctx, id)
	if err != nil {
		return false, err
	}
	user, ok := s.repos.Session.Get(ctx)
	if !ok || !acc.SameEmail(user.Email) {
		return false, nil
	}
	s.repos.Session.Clear(ctx)
	log.L.Info("session revoked", zap.String("email", acc.Email))
	return true, nil
}

// DeleteUser 删除账号
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	n := s.deleteAccounts(ctx, []string{id})
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// BulkDelete 批量删除，返回实际删除数量
func (s *AdminService) BulkDelete(ctx context.Context, ids []string) int {
	return s.deleteAccounts(ctx, ids)
}

func (s *AdminService) deleteAccounts(ctx context.Context, ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	accounts := s.repos.Accounts.List(ctx)
	kept := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if !drop[a.ID] {
			kept = append(kept, a)
		}
	}
	removed := len(accounts) - len(kept)
	if removed > 0 {
		s.repos.Accounts.Save(ctx, kept)
	}
	return removed
}

// ==================== 手艺人管理 ====================

// Artisans 按状态过滤的手艺人列表
func (s *AdminService) Artisans(ctx context.Context, status string) []model.Account {
	out := make([]model.Account, 0)
	for _, a := range s.repos.Accounts.List(ctx) {
		if a.Role != model.RoleArtisan {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SetArtisanStatus 审核通过 / 驳回 / 停用
func (s *AdminService) SetArtisanStatus(ctx context.Context, id, status string) (*model.Account, error) {
	return s.updateAccount(ctx, id, func(a *model.Account) error {
		if a.Role != model.RoleArtisan {
			return ErrNotArtisan
		}
		a.Status = status
		return nil
	})
}

func (s *AdminService) ApproveArtisan(ctx context.Context, id string) (*model.Account, error) {
	return s.SetArtisanStatus(ctx, id, model.AccountActive)
}

func (s *AdminService) RejectArtisan(ctx context.Context, id string) (*model.Account, error) {
	return s.SetArtisanStatus(ctx, id, model.AccountRejected)
}

func (s *AdminService) SuspendArtisan(ctx context.Context, id string) (*model.Account, error) {
	return s.SetArtisanStatus(ctx, id, model.AccountSuspended)
}

// ==================== 内部方法 ====================

func (s *AdminService) findAccount(ctx context.Context, id string) (*model.Account, error) {
	for _, a := range s.repos.Accounts.List(ctx) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *AdminService) updateAccount(ctx context.Context, id string, fn func(*model.Account) error) (*model.Account, error) {
	accounts := s.repos.Accounts.List(ctx)
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		if err := fn(&accounts[i]); err != nil {
			return nil, err
		}
		s.repos.Accounts.Save(ctx, accounts)
		return &accounts[i], nil
	}
	return nil, ErrUserNotFound
}
