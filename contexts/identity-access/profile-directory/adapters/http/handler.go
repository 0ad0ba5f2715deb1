package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"healthpass/contexts/identity-access/profile-directory/application"
	"healthpass/contexts/identity-access/profile-directory/domain/entities"
	httptransport "healthpass/contexts/identity-access/profile-directory/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) UpsertProfileHandler(
	ctx context.Context,
	caller string,
	principal string,
	req httptransport.UpsertProfileRequest,
) (httptransport.ProfileResponse, error) {
	profile, err := h.Service.UpsertProfile(ctx, application.UpsertProfileCommand{
		Caller:    caller,
		Principal: principal,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		Status: "success",
		Data:   profileToDTO(profile),
	}, nil
}

func (h Handler) GetProfileHandler(
	ctx context.Context,
	principal string,
) (httptransport.ProfileResponse, error) {
	profile, err := h.Service.GetProfile(ctx, principal)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		Status: "success",
		Data:   profileToDTO(profile),
	}, nil
}

func profileToDTO(profile entities.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		Principal: profile.Principal,
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: profile.UpdatedAt.UTC().Format(time.RFC3339),
		CommitSeq: profile.CommitSeq,
	}
}
