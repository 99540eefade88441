package server

import (
	"net/http"

	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

type UpdateSettingsBody struct {
	PortalName      *string `json:"portal_name"`
	ContactEmail    *string `json:"contact_email"`
	PixKey          *string `json:"pix_key"`
	PixMerchantName *string `json:"pix_merchant_name"`
	PixMerchantCity *string `json:"pix_merchant_city"`
}

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var body UpdateSettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	settings, err := s.settingsSvc.Update(c.Request.Context(), settingsdomain.UpdateSettingsRequest{
		PortalName:      body.PortalName,
		ContactEmail:    body.ContactEmail,
		PixKey:          body.PixKey,
		PixMerchantName: body.PixMerchantName,
		PixMerchantCity: body.PixMerchantCity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
