package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/boleto"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/billing/pix"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/pdf"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	settingsrepo "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/repository"
	settingssvc "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type recordingMail struct {
	to        []string
	templates []string
	data      []map[string]interface{}
}

func (m *recordingMail) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	m.to = append(m.to, to...)
	return nil
}

func (m *recordingMail) SendTemplate(ctx context.Context, to []string, templateName string, data interface{}) error {
	m.to = append(m.to, to...)
	m.templates = append(m.templates, templateName)
	if fields, ok := data.(map[string]interface{}); ok {
		m.data = append(m.data, fields)
	}
	return nil
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB, settingsdomain.Service) {
	svc, db, settings, _ := newTestServiceMail(t)
	return svc, db, settings
}

func newTestServiceMail(t *testing.T) (domain.Service, *gorm.DB, settingsdomain.Service, *recordingMail) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Advertiser{}, &settingsdomain.Settings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	settings := settingssvc.New(settingssvc.Params{
		DB:   db,
		Log:  log,
		Repo: settingsrepo.Provide(),
	})

	mail := &recordingMail{}
	svc := New(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		Clock:       clock.NewFakeClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)),
		SettingsSvc: settings,
		BillingCfg:  nil, // falls back to defaults
		PDF:         pdf.New(),
		Email:       mail,
	})
	return svc, db, settings, mail
}

func TestCreateComputesDerivedColumns(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:                "Padaria Central",
		BaseValue:           decimal.NewFromInt(100),
		BillingCycle:        "monthly",
		InstallmentCount:    12,
		InterestRatePercent: decimal.NewFromInt(2),
		StartDate:           &start,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, 12, created.ContractDurationMonths)
	// 100 x 12, plus 2% simple interest on 11 interest-bearing installments.
	assert.Equal(t, "1464.00", created.TotalWithInterest.StringFixed(2))
	assert.Equal(t, time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC), created.EndDate)
	assert.True(t, boleto.Valid(created.BillingBarcodeLine))
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateAdvertiserRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateRejectsTooManyInstallments(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateAdvertiserRequest{
		Name:             "Loja",
		BaseValue:        decimal.NewFromInt(50),
		BillingCycle:     "monthly",
		InstallmentCount: 61,
	})
	assert.ErrorIs(t, err, domain.ErrTooManyInstallments)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:         "Mercado",
		BaseValue:    decimal.NewFromInt(100),
		BillingCycle: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, "1200.00", created.TotalWithInterest.StringFixed(2))

	newBase := decimal.NewFromInt(200)
	updated, err := svc.Update(ctx, domain.UpdateAdvertiserRequest{
		ID:        created.ID.String(),
		BaseValue: &newBase,
	})
	require.NoError(t, err)
	assert.Equal(t, "2400.00", updated.TotalWithInterest.StringFixed(2))
}

func TestUpdateRejectsInvalidCycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:         "Farmacia",
		BaseValue:    decimal.NewFromInt(80),
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	bad := "fortnightly"
	_, err = svc.Update(ctx, domain.UpdateAdvertiserRequest{
		ID:           created.ID.String(),
		BillingCycle: &bad,
	})
	assert.Error(t, err)
}

func TestGetByIDHealsCorruptBarcodeLine(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:         "Autopecas",
		BaseValue:    decimal.NewFromInt(150),
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	corrupt := "3419${installment.value}0000000000000000000000000"
	require.NoError(t, db.Model(&domain.Advertiser{}).
		Where("id = ?", created.ID).
		Update("billing_barcode_line", corrupt).Error)

	got, err := svc.GetByID(ctx, domain.GetAdvertiserRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.True(t, boleto.Valid(got.BillingBarcodeLine))
	assert.NotEqual(t, corrupt, got.BillingBarcodeLine)

	// The repaired line is persisted, not just returned.
	var stored domain.Advertiser
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, got.BillingBarcodeLine, stored.BillingBarcodeLine)
}

func TestQuote(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:                   "Imobiliaria",
		BaseValue:              decimal.NewFromInt(500),
		BillingCycle:           "semiannual",
		ContractDurationMonths: 12,
		InstallmentCount:       2,
		StartDate:              &start,
	})
	require.NoError(t, err)

	quote, err := svc.Quote(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "1000.00", quote.TotalDisplay)
	assert.Equal(t, "500.00", quote.PerInstallmentDisplay)
	assert.Equal(t, 2, quote.InstallmentCount)
	assert.Equal(t, time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC), quote.EndDate)
}

func TestPixChargeRequiresConfiguredKey(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:         "Clinica",
		BaseValue:    decimal.NewFromInt(100),
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	_, err = svc.PixCharge(ctx, created.ID.String())
	assert.ErrorIs(t, err, pix.ErrMissingKey)
}

func TestPixChargeBuildsPayload(t *testing.T) {
	svc, _, settings := newTestService(t)
	ctx := context.Background()

	key := "11999990000"
	name := "Lagoa Formosa no Momento"
	city := "Lagoa Formosa"
	_, err := settings.Update(ctx, settingsdomain.UpdateSettingsRequest{
		PixKey:          &key,
		PixMerchantName: &name,
		PixMerchantCity: &city,
	})
	require.NoError(t, err)

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:             "Restaurante",
		BaseValue:        decimal.NewFromInt(100),
		BillingCycle:     "monthly",
		InstallmentCount: 12,
	})
	require.NoError(t, err)

	charge, err := svc.PixCharge(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "100.00", charge.AmountStr)
	assert.Len(t, charge.TxID, 25)

	tlvs, err := pix.Decode(charge.Payload)
	require.NoError(t, err)
	amount, ok := pix.Find(tlvs, "54")
	require.True(t, ok)
	assert.Equal(t, "100.00", amount)
}

func TestBoletoEndpoints(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:             "Escola",
		BaseValue:        decimal.NewFromInt(300),
		BillingCycle:     "monthly",
		InstallmentCount: 3,
	})
	require.NoError(t, err)

	first, err := svc.Boleto(ctx, created.ID.String(), 1)
	require.NoError(t, err)
	assert.Equal(t, created.BillingBarcodeLine, first.Line)
	assert.Len(t, first.Barcode, boleto.BarcodeLength)
	assert.NotEmpty(t, first.Disclaimer)

	second, err := svc.Boleto(ctx, created.ID.String(), 2)
	require.NoError(t, err)
	assert.True(t, boleto.Valid(second.Line))
	assert.Equal(t, 2, second.Installment)

	// Out-of-range requests clamp instead of failing.
	clamped, err := svc.Boleto(ctx, created.ID.String(), 99)
	require.NoError(t, err)
	assert.Equal(t, 3, clamped.Installment)
}

func TestListPaginates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
			Name:         name,
			BaseValue:    decimal.NewFromInt(10),
			BillingCycle: "monthly",
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, domain.ListAdvertiserRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Advertisers, 2)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextPageToken)

	rest, err := svc.List(ctx, domain.ListAdvertiserRequest{PageSize: 2, PageToken: page.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, rest.Advertisers, 1)
	assert.False(t, rest.HasMore)
}

func TestContractAndCarnetPDFs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:             "Supermercado",
		BaseValue:        decimal.NewFromInt(250),
		BillingCycle:     "monthly",
		InstallmentCount: 2,
	})
	require.NoError(t, err)

	contract, err := svc.ContractPDF(ctx, created.ID.String())
	require.NoError(t, err)
	contractBytes, err := io.ReadAll(contract)
	require.NoError(t, err)
	assert.True(t, len(contractBytes) > 500)
	assert.Equal(t, "%PDF", string(contractBytes[:4]))

	carnet, err := svc.CarnetPDF(ctx, created.ID.String())
	require.NoError(t, err)
	carnetBytes, err := io.ReadAll(carnet)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(carnetBytes[:4]))
}

func TestEmailContract(t *testing.T) {
	svc, _, _, mail := newTestServiceMail(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:             "Farmácia Popular",
		Email:            "contato@farmacia.example",
		BaseValue:        decimal.NewFromInt(300),
		BillingCycle:     "monthly",
		InstallmentCount: 3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.EmailContract(ctx, created.ID.String()))
	require.Len(t, mail.templates, 1)
	assert.Equal(t, "contract", mail.templates[0])
	assert.Equal(t, []string{"contato@farmacia.example"}, mail.to)
	require.Len(t, mail.data, 1)
	assert.Equal(t, created.BillingBarcodeLine, mail.data[0]["boleto_line"])
}

func TestEmailContractWithoutAddress(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAdvertiserRequest{
		Name:         "Sem Contato",
		BaseValue:    decimal.NewFromInt(100),
		BillingCycle: "monthly",
	})
	require.NoError(t, err)

	err = svc.EmailContract(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNoContactEmail)
}

func TestGetByIDUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), domain.GetAdvertiserRequest{ID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), domain.GetAdvertiserRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
