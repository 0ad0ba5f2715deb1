package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/access-grants/application/commands"
	"healthpass/contexts/health-records/access-grants/application/queries"
	"healthpass/contexts/health-records/access-grants/domain/entities"
	httptransport "healthpass/contexts/health-records/access-grants/transport/http"
)

type Handler struct {
	GrantAccess   commands.GrantAccessUseCase
	RevokeAccess  commands.RevokeAccessUseCase
	CheckAccess   queries.CheckAccessUseCase
	ListAccessors queries.ListAccessorsUseCase
	Logger        *slog.Logger
}

func (h Handler) GrantAccessHandler(
	ctx context.Context,
	caller string,
	owner string,
	req httptransport.GrantAccessRequest,
) (httptransport.GrantMutationResponse, error) {
	grant, err := h.GrantAccess.Execute(ctx, commands.GrantAccessCommand{
		Caller:   caller,
		Owner:    owner,
		Accessor: req.Accessor,
	})
	if err != nil {
		return httptransport.GrantMutationResponse{}, err
	}
	return httptransport.GrantMutationResponse{
		Status: "success",
		Data:   grantToDTO(grant),
	}, nil
}

func (h Handler) RevokeAccessHandler(
	ctx context.Context,
	caller string,
	owner string,
	req httptransport.GrantAccessRequest,
) (httptransport.GrantMutationResponse, error) {
	grant, err := h.RevokeAccess.Execute(ctx, commands.RevokeAccessCommand{
		Caller:   caller,
		Owner:    owner,
		Accessor: req.Accessor,
	})
	if err != nil {
		return httptransport.GrantMutationResponse{}, err
	}
	return httptransport.GrantMutationResponse{
		Status: "success",
		Data:   grantToDTO(grant),
	}, nil
}

func (h Handler) CheckAccessHandler(
	ctx context.Context,
	owner string,
	accessor string,
) (httptransport.CheckAccessResponse, error) {
	active, err := h.CheckAccess.Execute(ctx, owner, accessor)
	if err != nil {
		return httptransport.CheckAccessResponse{}, err
	}
	resp := httptransport.CheckAccessResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Accessor = strings.ToLower(strings.TrimSpace(accessor))
	resp.Data.Active = active
	return resp, nil
}

func (h Handler) ListAccessorsHandler(
	ctx context.Context,
	owner string,
) (httptransport.ListAccessorsResponse, error) {
	accessors, err := h.ListAccessors.Execute(ctx, owner)
	if err != nil {
		return httptransport.ListAccessorsResponse{}, err
	}
	resp := httptransport.ListAccessorsResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Accessors = accessors
	return resp, nil
}

func grantToDTO(grant entities.AccessGrant) httptransport.GrantDTO {
	return httptransport.GrantDTO{
		Owner:     grant.Owner,
		Accessor:  grant.Accessor,
		Active:    grant.Active,
		UpdatedAt: grant.UpdatedAt.UTC().Format(time.RFC3339),
		CommitSeq: grant.CommitSeq,
	}
}
