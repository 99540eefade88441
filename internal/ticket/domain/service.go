package domain

import (
	"context"
	"errors"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
)

type CreateTicketRequest struct {
	Subject       string
	Body          string
	ReporterName  string
	ReporterEmail string
	ReporterPhone string
}

type ReplyTicketRequest struct {
	TicketID string
	AuthorID string
	Body     string
}

type ListTicketRequest struct {
	PageToken string
	PageSize  int
	Status    string
}

type ListTicketResponse struct {
	pagination.PageInfo
	Tickets []Ticket `json:"tickets"`
}

type Service interface {
	Create(ctx context.Context, req CreateTicketRequest) (Ticket, error)
	Reply(ctx context.Context, req ReplyTicketRequest) (Ticket, error)
	Close(ctx context.Context, id string) (Ticket, error)
	Get(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context, req ListTicketRequest) (ListTicketResponse, error)
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidSubject = errors.New("invalid_subject")
	ErrEmptyBody      = errors.New("empty_body")
	ErrNotFound       = errors.New("not_found")
	ErrTicketClosed   = errors.New("ticket_closed")
)
