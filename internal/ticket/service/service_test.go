package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type capturingProvider struct {
	to        []string
	templates []string
}

func (p *capturingProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	p.to = append(p.to, to...)
	return nil
}

func (p *capturingProvider) SendTemplate(ctx context.Context, to []string, templateName string, data interface{}) error {
	p.to = append(p.to, to...)
	p.templates = append(p.templates, templateName)
	return nil
}

func newTestService(t *testing.T) (domain.Service, *capturingProvider) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Ticket{}, &domain.Reply{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	mail := &capturingProvider{}
	svc := New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: clock.NewFakeClock(time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)),
		Email: mail,
	})
	return svc, mail
}

func TestCreateNotifiesReporter(t *testing.T) {
	svc, mail := newTestService(t)

	ticket, err := svc.Create(context.Background(), domain.CreateTicketRequest{
		Subject:       "Anúncio com valor errado",
		Body:          "O banner mostra o preço antigo.",
		ReporterName:  "Maria",
		ReporterEmail: "maria@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, ticket.Status)
	assert.Equal(t, []string{"maria@example.com"}, mail.to)
	assert.Equal(t, []string{"ticket_received"}, mail.templates)
}

func TestCreateWithoutEmailSkipsNotification(t *testing.T) {
	svc, mail := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateTicketRequest{
		Subject: "Sem contato",
		Body:    "Mensagem anônima.",
	})
	require.NoError(t, err)
	assert.Empty(t, mail.to)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: " ", Body: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)

	_, err = svc.Create(ctx, domain.CreateTicketRequest{Subject: "ok", Body: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyBody)
}

func TestReplyMarksAnsweredAndNotifies(t *testing.T) {
	svc, mail := newTestService(t)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Subject:       "Dúvida sobre contrato",
		Body:          "Como funciona o parcelamento?",
		ReporterEmail: "joao@example.com",
	})
	require.NoError(t, err)

	answered, err := svc.Reply(ctx, domain.ReplyTicketRequest{
		TicketID: ticket.ID.String(),
		Body:     "O contrato pode ser parcelado em até 12 vezes.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnswered, answered.Status)
	require.Len(t, answered.Replies, 1)
	assert.Equal(t, "O contrato pode ser parcelado em até 12 vezes.", answered.Replies[0].Body)
	assert.Contains(t, mail.templates, "ticket_reply")
}

func TestReplyOnClosedTicket(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: "Encerrado", Body: "x"})
	require.NoError(t, err)

	_, err = svc.Close(ctx, ticket.ID.String())
	require.NoError(t, err)

	_, err = svc.Reply(ctx, domain.ReplyTicketRequest{TicketID: ticket.ID.String(), Body: "tarde demais"})
	assert.ErrorIs(t, err, domain.ErrTicketClosed)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	open, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: "Aberto", Body: "x"})
	require.NoError(t, err)

	closed, err := svc.Create(ctx, domain.CreateTicketRequest{Subject: "Fechado", Body: "y"})
	require.NoError(t, err)
	_, err = svc.Close(ctx, closed.ID.String())
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.ListTicketRequest{Status: string(domain.StatusOpen)})
	require.NoError(t, err)
	require.Len(t, page.Tickets, 1)
	assert.Equal(t, open.ID, page.Tickets[0].ID)
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "987654321")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
