package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/pkg/log"
)

// ==================== 错误定义 ====================

var (
	ErrAccountNotFound    = errors.New("账号不存在")
	ErrInvalidCredentials = errors.New("密码错误")
	ErrAccountInactive    = errors.New("账号已停用或未通过审核")
	ErrEmailExists        = errors.New("邮箱已注册")
	ErrInvalidRole        = errors.New("角色无效")
	ErrNameTaken          = errors.New("名称或店铺名已被占用")
)

// RoleMismatchError 登录身份与注册身份不一致
type RoleMismatchError struct {
	Registered string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("该账号注册身份为 %s，请以 %s 身份登录", e.Registered, e.Registered)
}

// ==================== 角色首页 ====================

const LoginPath = "/login"

// HomeFor 角色对应的首页
func HomeFor(role string) string {
	switch role {
	case model.RoleAdmin:
		return "/admin-dashboard"
	case model.RoleArtisan:
		return "/artisan-dashboard"
	case model.RoleMarketing:
		return "/marketing-dashboard"
	default:
		return "/"
	}
}

// LoginRedirect 未登录访问受保护页面时的跳转地址
func LoginRedirect(from string) string {
	if from == "" {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// ==================== SessionService ====================

// SessionService 会话与身份
type SessionService struct {
	repos *Repositories
	now   Clock
}

func NewSessionService(repos *Repositories) *SessionService {
	return &SessionService{repos: repos, now: time.Now}
}

// SetClock 测试注入
func (s *SessionService) SetClock(now Clock) {
	s.now = now
}

// ResolveIdentity 读取当前会话
// 会话可能已过期（对应账号被删除），此时只记录告警，仍以会话为准
func (s *SessionService) ResolveIdentity(ctx context.Context) (*model.SessionUser, bool) {
	user, ok := s.repos.Session.Get(ctx)
	if !ok {
		return nil, false
	}
	accounts := s.repos.Accounts.List(ctx)
	if len(accounts) > 0 {
		found := false
		for i := range accounts {
			if accounts[i].SameEmail(user.Email) {
				found = true
				break
			}
		}
		if !found {
			log.L.Warn("session user has no matching account",
				zap.String("email", user.Email),
				zap.String("role", user.Role))
		}
	}
	return user, true
}

// Login 登录，任何失败都不修改会话
func (s *SessionService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	accounts := s.repos.Accounts.List(ctx)
	idx := -1
	for i := range accounts {
		if accounts[i].SameEmail(req.Email) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAccountNotFound
	}
	acc := &accounts[idx]

	if acc.Password != req.Password {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(acc.Role, req.Role) {
		return nil, &RoleMismatchError{Registered: acc.Role}
	}
	if !acc.CanSignIn() {
		return nil, ErrAccountInactive
	}

	stamp := isoTime(s.now())
	acc.LastLogin = &stamp
	s.repos.Accounts.Save(ctx, accounts)

	user := model.SessionUser{Email: acc.Email, Role: acc.Role, Name: acc.DisplayName()}
	s.repos.Session.Set(ctx, user)

	log.L.Info("user signed in", zap.String("email", acc.Email), zap.String("role", acc.Role))
	return &dto.LoginResponse{
		Email:    user.Email,
		Role:     user.Role,
		Name:     user.Name,
		Redirect: HomeFor(user.Role),
	}, nil
}

// Signup 注册，手艺人需管理员审核
func (s *SessionService) Signup(ctx context.Context, req *dto.SignupRequest) (*model.Account, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !model.ValidRole(role) || role == model.RoleAdmin {
		return nil, ErrInvalidRole
	}

	accounts := s.repos.Accounts.List(ctx)
	for i := range accounts {
		if accounts[i].SameEmail(req.Email) {
			return nil, ErrEmailExists
		}
	}
	if role == model.RoleArtisan && s.nameTaken(ctx, accounts, req.Name, req.ShopName) {
		return nil, ErrNameTaken
	}

	status := model.AccountActive
	if role == model.RoleArtisan {
		status = model.AccountPending
	}
	acc := model.Account{
		ID:               "u_" + uuid.NewString(),
		Email:            strings.TrimSpace(req.Email),
		Password:         req.Password,
		Role:             role,
		Status:           status,
		Name:             strings.TrimSpace(req.Name),
		Phone:            req.Phone,
		ShopName:         strings.TrimSpace(req.ShopName),
		RegistrationDate: isoTime(s.now()),
	}
	s.repos.Accounts.Save(ctx, append(accounts, acc))
	return &acc, nil
}

// Logout 清除会话
func (s *SessionService) Logout(ctx context.Context) {
	s.repos.Session.Clear(ctx)
}

// nameTaken 名称或店铺名与已有账号、商品归属键冲突（不区分大小写）
func (s *SessionService) nameTaken(ctx context.Context, accounts []model.Account, names ...string) bool {
	taken := make(map[string]bool)
	for i := range accounts {
		taken[strings.ToLower(accounts[i].Name)] = true
		taken[strings.ToLower(accounts[i].ShopName)] = true
	}
	for _, p := range s.repos.Products.List(ctx) {
		taken[strings.ToLower(p.OwnerKey)] = true
	}
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" && taken[n] {
			return true
		}
	}
	return false
}

// ActorFor 会话用户的归属键：邮箱、账号 ID；
// 名称和店铺名只对已审核通过的账号生效
func (s *SessionService) ActorFor(ctx context.Context, user *model.SessionUser) analytics.Actor {
	keys := []string{user.Email}
	if acc, ok := s.repos.Accounts.FindByEmail(ctx, user.Email); ok {
		keys = append(keys, acc.ID)
		if acc.Status == model.AccountActive {
			keys = append(keys, acc.Name, acc.ShopName)
		}
	}
	return analytics.NewActor(keys...)
}
