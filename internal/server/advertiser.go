package server

import (
	"io"
	"net/http"

	advertiserdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CreateAdvertiserBody struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logo_url"`

	BaseValue                decimal.Decimal `json:"base_value"`
	BillingCycle             string          `json:"billing_cycle"`
	ContractDurationMonths   int             `json:"contract_duration_months"`
	InstallmentCount         int             `json:"installment_count"`
	InterestRatePercent      decimal.Decimal `json:"interest_rate_percent"`
	InterestFreeInstallments int             `json:"interest_free_installments"`
	DailyInterestPercent     decimal.Decimal `json:"daily_interest_percent"`
	LateFeePercent           decimal.Decimal `json:"late_fee_percent"`
	StartDate                string          `json:"start_date"`
}

type UpdateAdvertiserBody struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	LogoURL *string `json:"logo_url"`
	Active  *bool   `json:"active"`

	BaseValue                *decimal.Decimal `json:"base_value"`
	BillingCycle             *string          `json:"billing_cycle"`
	ContractDurationMonths   *int             `json:"contract_duration_months"`
	InstallmentCount         *int             `json:"installment_count"`
	InterestRatePercent      *decimal.Decimal `json:"interest_rate_percent"`
	InterestFreeInstallments *int             `json:"interest_free_installments"`
	DailyInterestPercent     *decimal.Decimal `json:"daily_interest_percent"`
	LateFeePercent           *decimal.Decimal `json:"late_fee_percent"`
	StartDate                *string          `json:"start_date"`
}

func (s *Server) CreateAdvertiser(c *gin.Context) {
	var body CreateAdvertiserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(body.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_time", "invalid value"))
		return
	}

	advertiser, err := s.advertiserSvc.Create(c.Request.Context(), advertiserdomain.CreateAdvertiserRequest{
		Name:                     body.Name,
		Company:                  body.Company,
		Email:                    body.Email,
		Phone:                    body.Phone,
		LogoURL:                  body.LogoURL,
		BaseValue:                body.BaseValue,
		BillingCycle:             body.BillingCycle,
		ContractDurationMonths:   body.ContractDurationMonths,
		InstallmentCount:         body.InstallmentCount,
		InterestRatePercent:      body.InterestRatePercent,
		InterestFreeInstallments: body.InterestFreeInstallments,
		DailyInterestPercent:     body.DailyInterestPercent,
		LateFeePercent:           body.LateFeePercent,
		StartDate:                startDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, advertiser)
}

func (s *Server) UpdateAdvertiser(c *gin.Context) {
	var body UpdateAdvertiserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := advertiserdomain.UpdateAdvertiserRequest{
		ID:                       c.Param("id"),
		Name:                     body.Name,
		Company:                  body.Company,
		Email:                    body.Email,
		Phone:                    body.Phone,
		LogoURL:                  body.LogoURL,
		Active:                   body.Active,
		BaseValue:                body.BaseValue,
		BillingCycle:             body.BillingCycle,
		ContractDurationMonths:   body.ContractDurationMonths,
		InstallmentCount:         body.InstallmentCount,
		InterestRatePercent:      body.InterestRatePercent,
		InterestFreeInstallments: body.InterestFreeInstallments,
		DailyInterestPercent:     body.DailyInterestPercent,
		LateFeePercent:           body.LateFeePercent,
	}
	if body.StartDate != nil {
		startDate, err := parseOptionalTime(*body.StartDate)
		if err != nil {
			AbortWithError(c, newValidationError("start_date", "invalid_time", "invalid value"))
			return
		}
		req.StartDate = startDate
	}

	advertiser, err := s.advertiserSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, advertiser)
}

func (s *Server) GetAdvertiser(c *gin.Context) {
	advertiser, err := s.advertiserSvc.GetByID(c.Request.Context(), advertiserdomain.GetAdvertiserRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, advertiser)
}

func (s *Server) ListAdvertisers(c *gin.Context) {
	active, err := parseOptionalBool(c.Query("active"))
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_bool", "invalid value"))
		return
	}

	resp, err := s.advertiserSvc.List(c.Request.Context(), advertiserdomain.ListAdvertiserRequest{
		PageToken: c.Query("page_token"),
		PageSize:  parseIntDefault(c.Query("page_size"), 50),
		Name:      c.Query("name"),
		Active:    active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) QuoteAdvertiser(c *gin.Context) {
	quote, err := s.advertiserSvc.Quote(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) AdvertiserPixCharge(c *gin.Context) {
	charge, err := s.advertiserSvc.PixCharge(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, charge)
}

func (s *Server) AdvertiserBoleto(c *gin.Context) {
	resp, err := s.advertiserSvc.Boleto(c.Request.Context(), c.Param("id"), parseIntDefault(c.Query("installment"), 1))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) AdvertiserContractPDF(c *gin.Context) {
	doc, err := s.advertiserSvc.ContractPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.servePDF(c, "contrato", doc)
}

func (s *Server) AdvertiserCarnetPDF(c *gin.Context) {
	doc, err := s.advertiserSvc.CarnetPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.servePDF(c, "carne", doc)
}

func (s *Server) EmailAdvertiserContract(c *gin.Context) {
	if err := s.advertiserSvc.EmailContract(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (s *Server) servePDF(c *gin.Context, name string, doc io.Reader) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+name+`.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, doc)
}
