package device

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func TestDeviceTokens(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"token"}).
		AddRow("tok-new").
		AddRow("tok-old")

	mock.ExpectQuery("FROM device_tokens").
		WithArgs(userID).
		WillReturnRows(rows)

	tokens, err := repo.DeviceTokens(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-new", "tok-old"}, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceTokens_NoneRegistered(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	mock.ExpectQuery("FROM device_tokens").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"token"}))

	tokens, err := repo.DeviceTokens(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
