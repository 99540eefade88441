package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/email"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
	Email email.Provider
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
	email email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ticket.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
		email: p.Email,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTicketRequest) (domain.Ticket, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.Ticket{}, domain.ErrInvalidSubject
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return domain.Ticket{}, domain.ErrEmptyBody
	}

	now := s.clock.Now()
	ticket := domain.Ticket{
		ID:            s.genID.Generate(),
		Subject:       subject,
		Body:          body,
		Status:        domain.StatusOpen,
		ReporterName:  strings.TrimSpace(req.ReporterName),
		ReporterEmail: strings.TrimSpace(req.ReporterEmail),
		ReporterPhone: strings.TrimSpace(req.ReporterPhone),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.notify(ctx, ticket, "ticket_received", map[string]interface{}{
		"name":         ticket.ReporterName,
		"subject_line": ticket.Subject,
	})
	return ticket, nil
}

func (s *Service) Reply(ctx context.Context, req domain.ReplyTicketRequest) (domain.Ticket, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return domain.Ticket{}, domain.ErrEmptyBody
	}

	ticket, err := s.find(ctx, req.TicketID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket.Status == domain.StatusClosed {
		return domain.Ticket{}, domain.ErrTicketClosed
	}

	var authorID snowflake.ID
	if strings.TrimSpace(req.AuthorID) != "" {
		authorID, _ = snowflake.ParseString(req.AuthorID)
	}

	reply := domain.Reply{
		ID:        s.genID.Generate(),
		TicketID:  ticket.ID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertReply(ctx, s.db, &reply); err != nil {
		return domain.Ticket{}, err
	}

	ticket.Status = domain.StatusAnswered
	ticket.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.notify(ctx, *ticket, "ticket_reply", map[string]interface{}{
		"name":         ticket.ReporterName,
		"subject_line": ticket.Subject,
		"reply":        body,
	})

	return s.Get(ctx, req.TicketID)
}

func (s *Service) Close(ctx context.Context, id string) (domain.Ticket, error) {
	ticket, err := s.find(ctx, id)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket.Status == domain.StatusClosed {
		return *ticket, nil
	}

	ticket.Status = domain.StatusClosed
	ticket.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, ticket); err != nil {
		return domain.Ticket{}, err
	}
	return *ticket, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Ticket, error) {
	ticket, err := s.find(ctx, id)
	if err != nil {
		return domain.Ticket{}, err
	}
	return *ticket, nil
}

func (s *Service) List(ctx context.Context, req domain.ListTicketRequest) (domain.ListTicketResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Status: strings.TrimSpace(req.Status),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListTicketResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(ticket *domain.Ticket) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        ticket.ID.String(),
			CreatedAt: ticket.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	tickets := make([]domain.Ticket, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tickets = append(tickets, *item)
	}

	resp := domain.ListTicketResponse{Tickets: tickets}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

// notify sends best-effort mail; a down SMTP server never fails the
// ticket operation.
func (s *Service) notify(ctx context.Context, ticket domain.Ticket, templateName string, data map[string]interface{}) {
	if ticket.ReporterEmail == "" {
		return
	}
	if err := s.email.SendTemplate(ctx, []string{ticket.ReporterEmail}, templateName, data); err != nil {
		s.log.Warn("ticket notification failed",
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("template", templateName),
			zap.Error(err),
		)
	}
}

func (s *Service) find(ctx context.Context, id string) (*domain.Ticket, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	ticket, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return ticket, nil
}
