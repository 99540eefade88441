package server

import (
	"net/http"

	ticketdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"github.com/gin-gonic/gin"
)

type CreateTicketBody struct {
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	ReporterName  string `json:"reporter_name"`
	ReporterEmail string `json:"reporter_email"`
	ReporterPhone string `json:"reporter_phone"`
}

type ReplyTicketBody struct {
	Body string `json:"body"`
}

func (s *Server) CreateTicket(c *gin.Context) {
	var body CreateTicketBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.ticketSvc.Create(c.Request.Context(), ticketdomain.CreateTicketRequest{
		Subject:       body.Subject,
		Body:          body.Body,
		ReporterName:  body.ReporterName,
		ReporterEmail: body.ReporterEmail,
		ReporterPhone: body.ReporterPhone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) ReplyTicket(c *gin.Context) {
	var body ReplyTicketBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := ticketdomain.ReplyTicketRequest{
		TicketID: c.Param("id"),
		Body:     body.Body,
	}
	if user := currentUser(c); user != nil {
		req.AuthorID = user.ID.String()
	}

	ticket, err := s.ticketSvc.Reply(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) CloseTicket(c *gin.Context) {
	ticket, err := s.ticketSvc.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) GetTicket(c *gin.Context) {
	ticket, err := s.ticketSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) ListTickets(c *gin.Context) {
	resp, err := s.ticketSvc.List(c.Request.Context(), ticketdomain.ListTicketRequest{
		PageToken: c.Query("page_token"),
		PageSize:  parseIntDefault(c.Query("page_size"), 20),
		Status:    c.Query("status"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
