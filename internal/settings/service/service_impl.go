package service

import (
	"context"
	"strings"
	"time"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("settings.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	item, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.Settings{}, err
	}
	if item == nil {
		return defaultSettings(), nil
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if req.PortalName != nil {
		name := strings.TrimSpace(*req.PortalName)
		if name == "" {
			return domain.Settings{}, domain.ErrInvalidPortalName
		}
		current.PortalName = name
	}
	if req.ContactEmail != nil {
		current.ContactEmail = strings.TrimSpace(*req.ContactEmail)
	}
	if req.PixKey != nil {
		current.PixKey = strings.TrimSpace(*req.PixKey)
	}
	if req.PixMerchantName != nil {
		current.PixMerchantName = strings.TrimSpace(*req.PixMerchantName)
	}
	if req.PixMerchantCity != nil {
		current.PixMerchantCity = strings.TrimSpace(*req.PixMerchantCity)
	}

	current.ID = domain.DefaultID
	current.UpdatedAt = time.Now().UTC()
	if current.Metadata == nil {
		current.Metadata = datatypes.JSONMap{}
	}

	if err := s.repo.Upsert(ctx, s.db, &current); err != nil {
		return domain.Settings{}, err
	}

	s.log.Info("portal settings updated", zap.Bool("pix_configured", current.PixConfigured()))
	return current, nil
}

func defaultSettings() domain.Settings {
	now := time.Now().UTC()
	return domain.Settings{
		ID:              domain.DefaultID,
		PortalName:      "Lagoa Formosa no Momento",
		PixMerchantCity: "Lagoa Formosa",
		Metadata:        datatypes.JSONMap{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
