package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateAdvertiserRequest struct {
	Name    string
	Company string
	Email   string
	Phone   string
	LogoURL string

	BaseValue                decimal.Decimal
	BillingCycle             string
	ContractDurationMonths   int
	InstallmentCount         int
	InterestRatePercent      decimal.Decimal
	InterestFreeInstallments int
	DailyInterestPercent     decimal.Decimal
	LateFeePercent           decimal.Decimal
	StartDate                *time.Time
}

type UpdateAdvertiserRequest struct {
	ID string

	Name    *string
	Company *string
	Email   *string
	Phone   *string
	LogoURL *string
	Active  *bool

	BaseValue                *decimal.Decimal
	BillingCycle             *string
	ContractDurationMonths   *int
	InstallmentCount         *int
	InterestRatePercent      *decimal.Decimal
	InterestFreeInstallments *int
	DailyInterestPercent     *decimal.Decimal
	LateFeePercent           *decimal.Decimal
	StartDate                *time.Time
}

type GetAdvertiserRequest struct {
	ID string
}

type ListAdvertiserRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Active    *bool
}

type ListAdvertiserResponse struct {
	pagination.PageInfo
	Advertisers []Advertiser `json:"advertisers"`
}

// BillingQuote is the computed contract summary. Decimal values keep
// full precision; the two-decimal strings are what the UI and PDFs show.
type BillingQuote struct {
	Total                 decimal.Decimal `json:"-"`
	PerInstallment        decimal.Decimal `json:"-"`
	TotalDisplay          string          `json:"total"`
	PerInstallmentDisplay string          `json:"per_installment"`
	InstallmentCount      int             `json:"installment_count"`
	StartDate             time.Time       `json:"start_date"`
	EndDate               time.Time       `json:"end_date"`
}

// PixChargeResponse carries a ready-to-render BR Code payload.
type PixChargeResponse struct {
	Payload   string          `json:"payload"`
	TxID      string          `json:"txid"`
	Amount    decimal.Decimal `json:"-"`
	AmountStr string          `json:"amount"`
}

// BoletoResponse carries the reference line and its barcode encoding.
type BoletoResponse struct {
	Line        string `json:"line"`
	Barcode     string `json:"barcode"`
	Installment int    `json:"installment"`
	Disclaimer  string `json:"disclaimer"`
}

type Service interface {
	Create(ctx context.Context, req CreateAdvertiserRequest) (Advertiser, error)
	Update(ctx context.Context, req UpdateAdvertiserRequest) (Advertiser, error)
	GetByID(ctx context.Context, req GetAdvertiserRequest) (Advertiser, error)
	List(ctx context.Context, req ListAdvertiserRequest) (ListAdvertiserResponse, error)

	Quote(ctx context.Context, id string) (BillingQuote, error)
	PixCharge(ctx context.Context, id string) (PixChargeResponse, error)
	Boleto(ctx context.Context, id string, installment int) (BoletoResponse, error)

	ContractPDF(ctx context.Context, id string) (io.Reader, error)
	CarnetPDF(ctx context.Context, id string) (io.Reader, error)
	EmailContract(ctx context.Context, id string) error
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrNotFound            = errors.New("not_found")
	ErrTooManyInstallments = errors.New("too_many_installments")
	ErrNoContactEmail      = errors.New("no_contact_email")
)
