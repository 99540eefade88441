package pdf

import (
	"context"
	"io"
)

// ContractData is everything the contract document shows. Values arrive
// already computed and formatted; the renderer never does billing math.
type ContractData struct {
	PortalName   string
	AdvertiserID string
	Name         string
	Company      string
	Email        string
	Phone        string

	CycleLabel       string
	BaseValue        string
	Total            string
	PerInstallment   string
	InstallmentCount int
	StartDate        string
	EndDate          string

	PixPayload string
	BoletoLine string
	Disclaimer string
}

// CarnetData renders one payment slip per installment.
type CarnetData struct {
	PortalName   string
	AdvertiserID string
	Name         string
	Company      string

	PixPayload   string
	Disclaimer   string
	Installments []CarnetInstallment
}

type CarnetInstallment struct {
	Number     int
	Total      int
	Amount     string
	DueDate    string
	BoletoLine string
	Barcode    string
}

type Provider interface {
	GenerateContract(ctx context.Context, data ContractData) (io.Reader, error)
	GenerateCarnet(ctx context.Context, data CarnetData) (io.Reader, error)
}
