package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/boleto"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/config"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability/metrics"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/email"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/pdf"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Clock       clock.Clock
	SettingsSvc settingsdomain.Service
	BillingCfg  *config.BillingConfigHolder
	PDF         pdf.Provider
	Email       email.Provider
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	clock       clock.Clock
	settingsSvc settingsdomain.Service
	billingCfg  *config.BillingConfigHolder
	pdf         pdf.Provider
	email       email.Provider
	metrics     *metrics.Metrics
	synth       *boleto.Synthesizer
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("advertiser.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		clock:       p.Clock,
		settingsSvc: p.SettingsSvc,
		billingCfg:  p.BillingCfg,
		pdf:         p.PDF,
		email:       p.Email,
		metrics:     p.Metrics,
		synth:       boleto.New(),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAdvertiserRequest) (domain.Advertiser, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Advertiser{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	startDate := now
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	advertiser := domain.Advertiser{
		ID:      s.genID.Generate(),
		Name:    name,
		Company: strings.TrimSpace(req.Company),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		LogoURL: strings.TrimSpace(req.LogoURL),
		Active:  true,

		BaseValue:                req.BaseValue,
		BillingCycle:             strings.TrimSpace(req.BillingCycle),
		ContractDurationMonths:   req.ContractDurationMonths,
		InstallmentCount:         req.InstallmentCount,
		InterestRatePercent:      req.InterestRatePercent,
		InterestFreeInstallments: req.InterestFreeInstallments,
		DailyInterestPercent:     req.DailyInterestPercent,
		LateFeePercent:           req.LateFeePercent,
		StartDate:                startDate,

		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.recompute(&advertiser); err != nil {
		return domain.Advertiser{}, err
	}
	advertiser.BillingBarcodeLine = s.synth.Synthesize(advertiser.ID.String(), 1, advertiser.InstallmentCount)

	if err := s.repo.Insert(ctx, s.db, &advertiser); err != nil {
		return domain.Advertiser{}, err
	}
	if advertiser.BaseValue.IsZero() {
		s.log.Warn("advertiser created with zero base value", zap.String("advertiser_id", advertiser.ID.String()))
	}
	return advertiser, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAdvertiserRequest) (domain.Advertiser, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Advertiser{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Advertiser{}, err
	}
	if item == nil {
		return domain.Advertiser{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Advertiser{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Company != nil {
		item.Company = strings.TrimSpace(*req.Company)
	}
	if req.Email != nil {
		item.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LogoURL != nil {
		item.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.BaseValue != nil {
		item.BaseValue = *req.BaseValue
	}
	if req.BillingCycle != nil {
		item.BillingCycle = strings.TrimSpace(*req.BillingCycle)
	}
	if req.ContractDurationMonths != nil {
		item.ContractDurationMonths = *req.ContractDurationMonths
	}
	if req.InstallmentCount != nil {
		item.InstallmentCount = *req.InstallmentCount
	}
	if req.InterestRatePercent != nil {
		item.InterestRatePercent = *req.InterestRatePercent
	}
	if req.InterestFreeInstallments != nil {
		item.InterestFreeInstallments = *req.InterestFreeInstallments
	}
	if req.DailyInterestPercent != nil {
		item.DailyInterestPercent = *req.DailyInterestPercent
	}
	if req.LateFeePercent != nil {
		item.LateFeePercent = *req.LateFeePercent
	}
	if req.StartDate != nil {
		item.StartDate = req.StartDate.UTC()
	}

	// Derived columns follow every contract mutation.
	if err := s.recompute(item); err != nil {
		return domain.Advertiser{}, err
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Advertiser{}, err
	}
	return *item, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAdvertiserRequest) (domain.Advertiser, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Advertiser{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Advertiser{}, err
	}
	if item == nil {
		return domain.Advertiser{}, domain.ErrNotFound
	}

	s.healBarcodeLine(ctx, item)
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAdvertiserRequest) (domain.ListAdvertiserResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Name:   strings.TrimSpace(req.Name),
		Active: req.Active,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListAdvertiserResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(advertiser *domain.Advertiser) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        advertiser.ID.String(),
			CreatedAt: advertiser.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	advertisers := make([]domain.Advertiser, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		advertisers = append(advertisers, *item)
	}

	resp := domain.ListAdvertiserResponse{Advertisers: advertisers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
