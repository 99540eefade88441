package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/boleto"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/pix"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/pdf"
	"go.uber.org/zap"
)

const dateLayout = "02/01/2006"

var cycleLabels = map[billing.Cycle]string{
	billing.CycleDaily:      "diário",
	billing.CycleWeekly:     "semanal",
	billing.CycleMonthly:    "mensal",
	billing.CycleQuarterly:  "trimestral",
	billing.CycleSemiannual: "semestral",
	billing.CycleYearly:     "anual",
	billing.CycleSingle:     "pagamento único",
}

func (s *Service) ContractPDF(ctx context.Context, id string) (io.Reader, error) {
	item, quote, err := s.quoteFor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.healBarcodeLine(ctx, item)

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	data := pdf.ContractData{
		PortalName:       settings.PortalName,
		AdvertiserID:     item.ID.String(),
		Name:             item.Name,
		Company:          item.Company,
		Email:            item.Email,
		Phone:            item.Phone,
		CycleLabel:       cycleLabel(item.BillingCycle),
		BaseValue:        item.BaseValue.StringFixed(2),
		Total:            quote.TotalDisplay,
		PerInstallment:   quote.PerInstallmentDisplay,
		InstallmentCount: quote.InstallmentCount,
		StartDate:        quote.StartDate.Format(dateLayout),
		EndDate:          quote.EndDate.Format(dateLayout),
		BoletoLine:       item.BillingBarcodeLine,
		Disclaimer:       s.billingCfg.Current().BoletoDisclaimer,
	}
	data.PixPayload = s.pixPayloadOrEmpty(ctx, id)

	out, err := s.pdf.GenerateContract(ctx, data)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsGenerated.WithLabelValues("contract").Inc()
	}
	return out, nil
}

func (s *Service) CarnetPDF(ctx context.Context, id string) (io.Reader, error) {
	item, quote, err := s.quoteFor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.healBarcodeLine(ctx, item)

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	cycle, err := billing.ParseCycle(item.BillingCycle)
	if err != nil {
		cycle = billing.CycleMonthly
	}

	installments := make([]pdf.CarnetInstallment, 0, quote.InstallmentCount)
	for i := 1; i <= quote.InstallmentCount; i++ {
		line := item.BillingBarcodeLine
		if i > 1 {
			line = s.synth.Synthesize(item.ID.String(), i, quote.InstallmentCount)
		}
		installments = append(installments, pdf.CarnetInstallment{
			Number:     i,
			Total:      quote.InstallmentCount,
			Amount:     quote.PerInstallmentDisplay,
			DueDate:    billing.InstallmentDueDate(quote.StartDate, cycle, i-1).Format(dateLayout),
			BoletoLine: line,
			Barcode:    boleto.ToBarcode(line),
		})
	}

	data := pdf.CarnetData{
		PortalName:   settings.PortalName,
		AdvertiserID: item.ID.String(),
		Name:         item.Name,
		Company:      item.Company,
		PixPayload:   s.pixPayloadOrEmpty(ctx, id),
		Disclaimer:   s.billingCfg.Current().BoletoDisclaimer,
		Installments: installments,
	}

	out, err := s.pdf.GenerateCarnet(ctx, data)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsGenerated.WithLabelValues("carnet").Inc()
	}
	return out, nil
}

// EmailContract sends the contract summary to the advertiser's contact
// address. The Pix copy-and-paste code is included when the merchant
// account is configured.
func (s *Service) EmailContract(ctx context.Context, id string) error {
	item, quote, err := s.quoteFor(ctx, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(item.Email) == "" {
		return domain.ErrNoContactEmail
	}
	s.healBarcodeLine(ctx, item)

	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"portal_name":     settings.PortalName,
		"name":            item.Name,
		"company":         item.Company,
		"cycle":           cycleLabel(item.BillingCycle),
		"total":           quote.TotalDisplay,
		"per_installment": quote.PerInstallmentDisplay,
		"installments":    quote.InstallmentCount,
		"start_date":      quote.StartDate.Format(dateLayout),
		"end_date":        quote.EndDate.Format(dateLayout),
		"boleto_line":     item.BillingBarcodeLine,
		"pix_payload":     s.pixPayloadOrEmpty(ctx, id),
		"disclaimer":      s.billingCfg.Current().BoletoDisclaimer,
	}
	if err := s.email.SendTemplate(ctx, []string{item.Email}, "contract", data); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.DocumentsGenerated.WithLabelValues("contract_email").Inc()
	}
	return nil
}

func (s *Service) quoteFor(ctx context.Context, id string) (*domain.Advertiser, domain.BillingQuote, error) {
	parsedID, err := s.parseID(id)
	if err != nil {
		return nil, domain.BillingQuote{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, parsedID)
	if err != nil {
		return nil, domain.BillingQuote{}, err
	}
	if item == nil {
		return nil, domain.BillingQuote{}, domain.ErrNotFound
	}
	quote, err := s.Quote(ctx, id)
	if err != nil {
		return nil, domain.BillingQuote{}, err
	}
	return item, quote, nil
}

// pixPayloadOrEmpty keeps documents renderable before the Pix merchant
// account is configured; only the QR block is dropped.
func (s *Service) pixPayloadOrEmpty(ctx context.Context, id string) string {
	charge, err := s.PixCharge(ctx, id)
	if err != nil {
		if !errors.Is(err, pix.ErrMissingKey) {
			s.log.Warn("pix payload unavailable for document", zap.String("advertiser_id", id), zap.Error(err))
		}
		return ""
	}
	return charge.Payload
}

func cycleLabel(raw string) string {
	cycle, err := billing.ParseCycle(raw)
	if err != nil {
		return raw
	}
	if label, ok := cycleLabels[cycle]; ok {
		return label
	}
	return string(cycle)
}
