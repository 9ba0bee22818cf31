package repository

import (
	"context"

	"handloom_market/internal/model"
)

// CampaignRepository 营销活动
type CampaignRepository interface {
	List(ctx context.Context) []model.Campaign
	Save(ctx context.Context, campaigns []model.Campaign)
}

type campaignRepo struct {
	*collection[model.Campaign]
}

func NewCampaignRepository(records *Records) CampaignRepository {
	return &campaignRepo{collection: newCollection(records, KeyCampaigns, decodeCampaign)}
}

func (r *campaignRepo) List(ctx context.Context) []model.Campaign {
	return r.list(ctx)
}

func (r *campaignRepo) Save(ctx context.Context, campaigns []model.Campaign) {
	r.save(ctx, campaigns)
}
