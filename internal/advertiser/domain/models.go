package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Advertiser is a portal sponsor with its billing contract. The derived
// columns (end_date, total_with_interest) are recomputed on every
// mutation of the contract fields, never read back as inputs.
type Advertiser struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"not null" json:"name"`
	Company string       `gorm:"type:text" json:"company"`
	Email   string       `gorm:"type:text" json:"email"`
	Phone   string       `gorm:"type:text" json:"phone"`
	LogoURL string       `gorm:"column:logo_url;type:text" json:"logo_url"`
	Active  bool         `gorm:"not null;default:true" json:"active"`

	BaseValue                decimal.Decimal `gorm:"column:base_value;type:numeric(14,4);not null" json:"base_value"`
	BillingCycle             string          `gorm:"column:billing_cycle;type:text;not null;default:'monthly'" json:"billing_cycle"`
	ContractDurationMonths   int             `gorm:"column:contract_duration_months;not null;default:12" json:"contract_duration_months"`
	InstallmentCount         int             `gorm:"column:installment_count;not null;default:1" json:"installment_count"`
	InterestRatePercent      decimal.Decimal `gorm:"column:interest_rate_percent;type:numeric(7,4);not null;default:0" json:"interest_rate_percent"`
	InterestFreeInstallments int             `gorm:"column:interest_free_installments;not null;default:1" json:"interest_free_installments"`

	// Contract-text fields only. Total never reads them.
	DailyInterestPercent decimal.Decimal `gorm:"column:daily_interest_percent;type:numeric(7,4);not null;default:0" json:"daily_interest_percent"`
	LateFeePercent       decimal.Decimal `gorm:"column:late_fee_percent;type:numeric(7,4);not null;default:0" json:"late_fee_percent"`

	StartDate          time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate            time.Time       `gorm:"column:end_date;not null" json:"end_date"`
	TotalWithInterest  decimal.Decimal `gorm:"column:total_with_interest;type:numeric(14,4);not null;default:0" json:"total_with_interest"`
	BillingBarcodeLine string          `gorm:"column:billing_barcode_line;type:text" json:"billing_barcode_line"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Advertiser) TableName() string { return "advertisers" }
