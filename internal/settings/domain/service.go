package domain

import (
	"context"
	"errors"
)

type UpdateSettingsRequest struct {
	PortalName      *string
	ContactEmail    *string
	PixKey          *string
	PixMerchantName *string
	PixMerchantCity *string
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

var (
	ErrInvalidPortalName = errors.New("invalid_portal_name")
	ErrPixNotConfigured  = errors.New("pix_not_configured")
)
