package handler

import (
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toPostResponse(v ports.BulletinView) postResponse {
	return postResponse{
		ID:          v.ID,
		Title:       v.Title,
		Content:     v.Content,
		ContentHTML: v.ContentHTML,
		Type:        v.Type,
		CreatedBy:   v.CreatedBy,
		CreatorName: v.CreatorName,
		CreatedAt:   v.CreatedAt,
		EditedAt:    v.EditedAt,
	}
}

func toPostResponses(views []ports.BulletinView) []postResponse {
	out := make([]postResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPostResponse(v))
	}
	return out
}

func toActivityResponses(items []ports.ActivityItem) []activityResponse {
	out := make([]activityResponse, 0, len(items))
	for _, it := range items {
		out = append(out, activityResponse{
			BulletinID: it.BulletinID,
			Action:     it.Action,
			ActorID:    it.ActorID,
			Type:       it.Type,
			OccurredAt: it.OccurredAt,
		})
	}
	return out
}
