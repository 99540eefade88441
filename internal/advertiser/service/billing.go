package service

import (
	"context"
	"strings"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/boleto"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/pix"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) profile(a *domain.Advertiser) (billing.Profile, error) {
	cycle := billing.CycleMonthly
	if strings.TrimSpace(a.BillingCycle) != "" {
		parsed, err := billing.ParseCycle(a.BillingCycle)
		if err != nil {
			return billing.Profile{}, err
		}
		cycle = parsed
	}

	p := billing.Profile{
		BaseValue:                a.BaseValue,
		Cycle:                    cycle,
		ContractDurationMonths:   a.ContractDurationMonths,
		InstallmentCount:         a.InstallmentCount,
		InterestRatePercent:      a.InterestRatePercent,
		InterestFreeInstallments: a.InterestFreeInstallments,
		StartDate:                a.StartDate,
	}

	cfg := s.billingCfg.Current()
	if p.ContractDurationMonths == 0 && cycle == billing.CycleMonthly {
		p.ContractDurationMonths = cfg.DefaultDurationMonths
	}
	if p.InterestFreeInstallments == 0 {
		p.InterestFreeInstallments = cfg.DefaultInterestFreeCount
	}
	return p, nil
}

// recompute refreshes the derived contract columns from the editable
// ones. Stored end_date and total_with_interest are outputs only.
func (s *Service) recompute(a *domain.Advertiser) error {
	p, err := s.profile(a)
	if err != nil {
		return err
	}
	p = p.Normalize()

	cfg := s.billingCfg.Current()
	if p.InstallmentCount > cfg.MaxInstallments {
		return domain.ErrTooManyInstallments
	}

	total, err := billing.Total(p)
	if err != nil {
		return err
	}

	a.BillingCycle = string(p.Cycle)
	a.ContractDurationMonths = p.ContractDurationMonths
	a.InstallmentCount = p.InstallmentCount
	a.InterestFreeInstallments = p.InterestFreeInstallments
	a.TotalWithInterest = total
	a.EndDate = billing.EndDate(p.StartDate, p.ContractDurationMonths)
	return nil
}

// healBarcodeLine regenerates a stored reference line that no longer
// passes validation and writes the repaired value back. Early records
// persisted template artifacts instead of digits; reads must never
// surface those.
func (s *Service) healBarcodeLine(ctx context.Context, a *domain.Advertiser) {
	if boleto.Valid(a.BillingBarcodeLine) {
		return
	}

	repaired := s.synth.Synthesize(a.ID.String(), 1, a.InstallmentCount)
	s.log.Warn("repaired malformed boleto line",
		zap.String("advertiser_id", a.ID.String()),
		zap.String("stored", a.BillingBarcodeLine),
	)
	a.BillingBarcodeLine = repaired
	if s.metrics != nil {
		s.metrics.BarcodeRepairs.Inc()
	}

	if err := s.repo.UpdateBarcodeLine(ctx, s.db, a.ID, repaired); err != nil {
		s.log.Error("failed to persist repaired boleto line",
			zap.String("advertiser_id", a.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) Quote(ctx context.Context, id string) (domain.BillingQuote, error) {
	parsedID, err := s.parseID(id)
	if err != nil {
		return domain.BillingQuote{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, parsedID)
	if err != nil {
		return domain.BillingQuote{}, err
	}
	if item == nil {
		return domain.BillingQuote{}, domain.ErrNotFound
	}

	p, err := s.profile(item)
	if err != nil {
		return domain.BillingQuote{}, err
	}
	p = p.Normalize()

	total, err := billing.Total(p)
	if err != nil {
		return domain.BillingQuote{}, err
	}
	per := billing.PerInstallment(total, p.InstallmentCount)

	return domain.BillingQuote{
		Total:                 total,
		PerInstallment:        per,
		TotalDisplay:          total.StringFixed(2),
		PerInstallmentDisplay: per.StringFixed(2),
		InstallmentCount:      p.InstallmentCount,
		StartDate:             p.StartDate,
		EndDate:               billing.EndDate(p.StartDate, p.ContractDurationMonths),
	}, nil
}

func (s *Service) PixCharge(ctx context.Context, id string) (domain.PixChargeResponse, error) {
	quote, err := s.Quote(ctx, id)
	if err != nil {
		return domain.PixChargeResponse{}, err
	}

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return domain.PixChargeResponse{}, err
	}

	txid := strings.ReplaceAll(uuid.NewString(), "-", "")[:25]
	payload, err := pix.Payload(pix.Charge{
		Key:          settings.PixKey,
		MerchantName: settings.PixMerchantName,
		MerchantCity: settings.PixMerchantCity,
		Amount:       quote.PerInstallment.Round(2),
		TxID:         txid,
	})
	if err != nil {
		return domain.PixChargeResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.PixPayloads.Inc()
	}
	amount := quote.PerInstallment.Round(2)
	return domain.PixChargeResponse{
		Payload:   payload,
		TxID:      txid,
		Amount:    amount,
		AmountStr: amount.StringFixed(2),
	}, nil
}

func (s *Service) Boleto(ctx context.Context, id string, installment int) (domain.BoletoResponse, error) {
	parsedID, err := s.parseID(id)
	if err != nil {
		return domain.BoletoResponse{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, parsedID)
	if err != nil {
		return domain.BoletoResponse{}, err
	}
	if item == nil {
		return domain.BoletoResponse{}, domain.ErrNotFound
	}

	if installment < 1 {
		installment = 1
	}
	if installment > item.InstallmentCount {
		installment = item.InstallmentCount
	}

	var line string
	if installment == 1 {
		s.healBarcodeLine(ctx, item)
		line = item.BillingBarcodeLine
	} else {
		line = s.synth.Synthesize(item.ID.String(), installment, item.InstallmentCount)
	}

	return domain.BoletoResponse{
		Line:        line,
		Barcode:     boleto.ToBarcode(line),
		Installment: installment,
		Disclaimer:  s.billingCfg.Current().BoletoDisclaimer,
	}, nil
}
