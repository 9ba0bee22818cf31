package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/model"
)

func TestNotificationService_SweepLowStock(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewNotificationService(repos, 5)
	svc.SetClock(fixedClock)

	// 种子目录中 2、5、8 号商品低库存，各通知归属人和管理员
	assert.Equal(t, 6, svc.SweepLowStock(ctx))
	assert.Equal(t, 0, svc.SweepLowStock(ctx))

	admin := svc.ForAudience(ctx, model.RoleAdmin)
	require.Len(t, admin, 3)
	assert.Equal(t, model.NotificationLowStock, admin[0].Kind)
	assert.Equal(t, "2", admin[0].RefID)

	meera := svc.ForAudience(ctx, "meera weaves", "meera@x.com")
	require.Len(t, meera, 1)

	// 已读后再次扫描会重新提醒
	require.NoError(t, svc.MarkRead(ctx, meera[0].ID))
	assert.Equal(t, 1, svc.SweepLowStock(ctx))
	assert.ErrorIs(t, svc.MarkRead(ctx, "missing"), ErrNotificationNotFound)
}

func TestNotificationService_MarkReadScopedToAudience(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewNotificationService(repos, 5)
	svc.SetClock(fixedClock)
	svc.SweepLowStock(ctx)

	admin := svc.ForAudience(ctx, model.RoleAdmin)
	require.NotEmpty(t, admin)

	// 其他手艺人不能标记管理员的通知
	err := svc.MarkRead(ctx, admin[0].ID, "valley looms", "ravi@x.com")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.False(t, svc.ForAudience(ctx, model.RoleAdmin)[0].Read)

	require.NoError(t, svc.MarkRead(ctx, admin[0].ID, "ADMIN"))
	assert.True(t, svc.ForAudience(ctx, model.RoleAdmin)[0].Read)
}

func TestNotificationService_SweepExpiredCampaigns(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Campaigns.Save(ctx, []model.Campaign{
		{ID: "c1", Title: "Holi", Start: "2024-03-01", End: "2024-03-31"},
		{ID: "c2", Title: "Summer", Start: "2024-05-01", End: "2024-05-31"},
		{ID: "c3", Title: "Stopped", Start: "2024-01-01", End: "2024-01-31", ManualStatus: "ended"},
	})
	svc := NewNotificationService(repos, 5)
	svc.SetClock(fixedClock)

	assert.Equal(t, 1, svc.SweepExpiredCampaigns(ctx))
	assert.Equal(t, 0, svc.SweepExpiredCampaigns(ctx))

	list := svc.ForAudience(ctx, model.RoleMarketing)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].RefID)
	assert.Equal(t, model.NotificationCampaignExpired, list[0].Kind)
}
