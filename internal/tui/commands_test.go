//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/models"
)

func TestMakeLoginCmd(t *testing.T) {
	t.Run("Успешный вход", func(t *testing.T) {
		m, client := newTestModel(t)
		token := makeTestToken(t, "anna")
		client.On("Login", "anna", "secret").Return(token, nil)
		client.On("SetAuthToken", token).Return()

		msg := m.makeLoginCmd("anna", "secret", false)()

		success, ok := msg.(loginSuccessMsg)
		require.True(t, ok)
		assert.Equal(t, "anna", success.session.Username)
		assert.True(t, success.session.Authenticated)
	})

	t.Run("Сервер отклонил вход", func(t *testing.T) {
		m, client := newTestModel(t)
		client.On("Login", "anna", "wrong").Return("", api.ErrAuthorization)

		msg := m.makeLoginCmd("anna", "wrong", false)()

		failure, ok := msg.(errMsg)
		require.True(t, ok)
		assert.ErrorIs(t, failure.err, api.ErrAuthorization)
	})
}

func TestFetchMediaCmd(t *testing.T) {
	t.Run("Успешная загрузка", func(t *testing.T) {
		m, client := newTestModel(t)
		client.On("MediaByUsername").Return([]models.Media{{MediaID: 1, Title: "Солярис"}}, nil)

		msg := m.fetchMediaCmd()()

		loaded, ok := msg.(mediaLoadedMsg)
		require.True(t, ok)
		assert.Len(t, loaded.items, 1)
	})

	t.Run("Ошибка загрузки", func(t *testing.T) {
		m, client := newTestModel(t)
		client.On("MediaByUsername").Return(nil, errors.New("сервер недоступен"))

		msg := m.fetchMediaCmd()()

		failed, ok := msg.(fetchFailedMsg)
		require.True(t, ok)
		assert.Equal(t, "media", failed.scope)
	})
}

func TestSetFavoriteCmd(t *testing.T) {
	m, client := newTestModel(t)
	updated := &models.Media{MediaID: 1, Title: "Солярис", IsFavorite: true}
	client.On("SetFavorite", int64(1), true).Return(updated, nil)

	msg := m.setFavoriteCmd(1, true)()

	result, ok := msg.(mediaUpdatedMsg)
	require.True(t, ok)
	assert.True(t, result.media.IsFavorite)
}

func TestCreateLoanCmd(t *testing.T) {
	m, client := newTestModel(t)
	due := testDate(2024, 1, 24)
	borrowed := testDateTime(2024, 1, 10, 12)
	created := &models.Loan{LoanID: 5, DueDate: due, BorrowedAt: borrowed}
	client.On("CreateLoan", int64(3), int64(7), due, borrowed).Return(created, nil)

	msg := m.createLoanCmd(3, 7, due, borrowed)()

	result, ok := msg.(loanCreatedMsg)
	require.True(t, ok)
	assert.Equal(t, int64(5), result.loan.LoanID)
}

func TestReturnLoanCmd_Error(t *testing.T) {
	m, client := newTestModel(t)
	at := testDateTime(2024, 1, 20, 9)
	apiErr := &api.APIError{StatusCode: 400, Message: "Loan already returned"}
	client.On("ReturnLoan", int64(5), at).Return(nil, apiErr)

	msg := m.returnLoanCmd(5, at)()

	failure, ok := msg.(errMsg)
	require.True(t, ok)
	var gotErr *api.APIError
	require.ErrorAs(t, failure.err, &gotErr)
	assert.Equal(t, "Loan already returned", gotErr.Message)
}

func TestFetchRecentUsersCmd(t *testing.T) {
	m, client := newTestModel(t)
	client.On("RecentUsers").Return([]models.User{{UserID: 1, Username: "anna"}}, nil)

	msg := m.fetchRecentUsersCmd()()

	result, ok := msg.(recentUsersMsg)
	require.True(t, ok)
	assert.Len(t, result.users, 1)
}
