package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

func TestSupportService(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Session.Set(ctx, model.SessionUser{Email: "asha@x.com", Role: model.RoleBuyer})
	svc := NewSupportService(repos)
	svc.SetClock(fixedClock)

	t1 := svc.Create(ctx, &dto.TicketRequest{Subject: "Late delivery", Message: "Order o1 not arrived"})
	assert.Equal(t, "asha@x.com", t1.Email)
	assert.Equal(t, model.TicketOpen, t1.Status)
	svc.Create(ctx, &dto.TicketRequest{Subject: "Refund", Message: "Wrong colour", Email: "b@x.com"})

	assert.Len(t, svc.List(ctx, ""), 2)

	resolved, err := svc.Resolve(ctx, t1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketResolved, resolved.Status)
	assert.Len(t, svc.List(ctx, model.TicketOpen), 1)

	_, err = svc.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestFeedbackService(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewFeedbackService(repos)

	first := svc.Submit(ctx, &dto.FeedbackRequest{Message: "Lovely sarees"})
	assert.Equal(t, AnonymousName, first.Name)
	svc.Submit(ctx, &dto.FeedbackRequest{Name: " Asha ", Message: "Fast shipping"})

	list := svc.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "Asha", list[0].Name)
	assert.Equal(t, AnonymousName, list[1].Name)
}
