package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"healthpass/contexts/health-records/consent-manager/application"
	httptransport "healthpass/contexts/health-records/consent-manager/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GiveConsentHandler(
	ctx context.Context,
	caller string,
	owner string,
	req httptransport.GiveConsentRequest,
) (httptransport.GiveConsentResponse, error) {
	grant, err := h.Service.GiveConsent(ctx, application.GiveConsentCommand{
		Caller:          caller,
		Owner:           owner,
		Accessor:        req.Accessor,
		Purpose:         req.Purpose,
		DurationSeconds: req.DurationSeconds,
		ScopeTypes:      req.ScopeTypes,
	})
	if err != nil {
		return httptransport.GiveConsentResponse{}, err
	}
	scope := grant.Scope
	if scope == nil {
		scope = []string{}
	}
	return httptransport.GiveConsentResponse{
		Status: "success",
		Data: httptransport.ConsentDTO{
			Owner:     grant.Owner,
			Accessor:  grant.Accessor,
			Purpose:   grant.Purpose,
			Scope:     scope,
			GrantedAt: grant.GrantedAt.UTC().Format(time.RFC3339),
			ExpiresAt: grant.ExpiresAt.UTC().Format(time.RFC3339),
			Revoked:   grant.Revoked,
			CommitSeq: grant.CommitSeq,
		},
	}, nil
}

func (h Handler) RevokeConsentHandler(
	ctx context.Context,
	caller string,
	owner string,
	req httptransport.RevokeConsentRequest,
) (httptransport.RevokeConsentResponse, error) {
	if err := h.Service.RevokeConsent(ctx, caller, owner, req.Accessor); err != nil {
		return httptransport.RevokeConsentResponse{}, err
	}
	return httptransport.RevokeConsentResponse{Status: "success"}, nil
}

func (h Handler) CheckConsentHandler(
	ctx context.Context,
	owner string,
	accessor string,
	recordType string,
) (httptransport.CheckConsentResponse, error) {
	valid, err := h.Service.IsValid(ctx, owner, accessor, recordType)
	if err != nil {
		return httptransport.CheckConsentResponse{}, err
	}
	resp := httptransport.CheckConsentResponse{Status: "success"}
	resp.Data.Owner = strings.ToLower(strings.TrimSpace(owner))
	resp.Data.Accessor = strings.ToLower(strings.TrimSpace(accessor))
	resp.Data.RecordType = strings.TrimSpace(recordType)
	resp.Data.Valid = valid
	return resp, nil
}
