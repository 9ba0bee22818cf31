package model

import (
	"strings"
	"time"
)

// CampaignStatus 活动的生效状态
type CampaignStatus string

const (
	CampaignUpcoming CampaignStatus = "upcoming"
	CampaignRunning  CampaignStatus = "running"
	CampaignExpired  CampaignStatus = "expired"
	CampaignPaused   CampaignStatus = "paused"
	CampaignEnded    CampaignStatus = "ended"
)

// Campaign 营销活动
// ManualStatus 只有 paused / ended 会覆盖按日期推导的状态
type Campaign struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	Discount     float64  `json:"discount,omitempty"`
	Coupon       string   `json:"coupon,omitempty"`
	Featured     []string `json:"featured,omitempty"`
	ManualStatus string   `json:"manualStatus,omitempty"`
	Views        int      `json:"views"`
	Clicks       int      `json:"clicks"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

// EffectiveStatus 计算当前状态
// 手动暂停和结束优先；开始时间为空或未到为 upcoming；
// 结束时间为空或未过为 running；否则 expired
func (c *Campaign) EffectiveStatus(now time.Time) CampaignStatus {
	switch CampaignStatus(c.ManualStatus) {
	case CampaignPaused:
		return CampaignPaused
	case CampaignEnded:
		return CampaignEnded
	}

	start, ok := parseCampaignTime(c.Start, false)
	if !ok || now.Before(start) {
		return CampaignUpcoming
	}
	end, ok := parseCampaignTime(c.End, true)
	if !ok || !now.After(end) {
		return CampaignRunning
	}
	return CampaignExpired
}

// parseCampaignTime 支持 RFC3339、不带时区的本地格式和纯日期
// 纯日期作为结束时间时包含当天整天
func parseCampaignTime(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			return t.Add(24*time.Hour - time.Millisecond), true
		}
		return t, true
	}
	return time.Time{}, false
}

// CampaignPatch 活动部分更新
type CampaignPatch struct {
	Title    *string   `json:"title"`
	Start    *string   `json:"start"`
	End      *string   `json:"end"`
	Discount *float64  `json:"discount"`
	Coupon   *string   `json:"coupon"`
	Featured *[]string `json:"featured"`
}

// Apply 合并补丁
func (c *Campaign) Apply(patch CampaignPatch) {
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Start != nil {
		c.Start = *patch.Start
	}
	if patch.End != nil {
		c.End = *patch.End
	}
	if patch.Discount != nil {
		c.Discount = *patch.Discount
	}
	if patch.Coupon != nil {
		c.Coupon = *patch.Coupon
	}
	if patch.Featured != nil {
		c.Featured = *patch.Featured
	}
}
