package service

import (
	"context"
	"testing"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Settings{}))

	return New(Params{
		DB:   db,
		Log:  zaptest.NewLogger(t),
		Repo: repository.Provide(),
	})
}

func TestGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	svc := newTestService(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lagoa Formosa no Momento", settings.PortalName)
	assert.False(t, settings.PixConfigured())
}

func TestUpdatePersistsPixAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	key := "financeiro@lagoaformosanomomento.com.br"
	name := "LFNM Publicidade"
	city := "Lagoa Formosa"
	updated, err := svc.Update(ctx, domain.UpdateSettingsRequest{
		PixKey:          &key,
		PixMerchantName: &name,
		PixMerchantCity: &city,
	})
	require.NoError(t, err)
	assert.True(t, updated.PixConfigured())

	// A fresh read sees the persisted row, not the defaults.
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, key, got.PixKey)
	assert.Equal(t, "LFNM Publicidade", got.PixMerchantName)
}

func TestUpdateRejectsBlankPortalName(t *testing.T) {
	svc := newTestService(t)

	blank := "  "
	_, err := svc.Update(context.Background(), domain.UpdateSettingsRequest{PortalName: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidPortalName)
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	key := "31999990000"
	_, err := svc.Update(ctx, domain.UpdateSettingsRequest{PixKey: &key})
	require.NoError(t, err)

	email := "contato@lagoaformosanomomento.com.br"
	updated, err := svc.Update(ctx, domain.UpdateSettingsRequest{ContactEmail: &email})
	require.NoError(t, err)
	assert.Equal(t, key, updated.PixKey)
	assert.Equal(t, email, updated.ContactEmail)
}
