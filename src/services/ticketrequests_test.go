package services

import (
	"testing"

	"ems/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func orgPrincipal(orgID uint) types.Principal {
	return types.Principal{UserID: 1, Role: types.ROLE_ORGANIZATION, OrganizationID: orgID}
}

func expectTicketChain(mock sqlmock.Sqlmock, ticketID, eventID, orgID uint, price float64) {
	mock.ExpectQuery(`SELECT \* FROM "ticket_categories"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "event_id", "price"}).
			AddRow(ticketID, eventID, price))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "org_id"}).
			AddRow(eventID, orgID))
}

func TestCreateTicketRequest(t *testing.T) {
	gdb, mock := newMockDB()
	expectTicketChain(mock, 7, 3, 5, 150.0)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	request, err := CreateTicketRequest(gdb, orgPrincipal(5), 7)
	assert.Nil(t, err)
	assert.Equal(t, uint(11), request.ID)
	assert.False(t, request.IsApproved)
	assert.Nil(t, request.TicketLink)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateTicketRequestForeignTicket(t *testing.T) {
	gdb, mock := newMockDB()
	expectTicketChain(mock, 7, 3, 5, 150.0)

	_, err := CreateTicketRequest(gdb, orgPrincipal(9), 7)
	assert.NotNil(t, err)
	assert.Equal(t, 403, HTTPStatus(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateTicketRequestFreeTicket(t *testing.T) {
	gdb, mock := newMockDB()
	expectTicketChain(mock, 7, 3, 5, 0)

	_, err := CreateTicketRequest(gdb, orgPrincipal(5), 7)
	assert.NotNil(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateTicketRequestDuplicate(t *testing.T) {
	gdb, mock := newMockDB()
	expectTicketChain(mock, 7, 3, 5, 150.0)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := CreateTicketRequest(gdb, orgPrincipal(5), 7)
	assert.NotNil(t, err)
	assert.Equal(t, 400, HTTPStatus(err))
	assert.Contains(t, err.Error(), "already exists")
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveTicketRequestSetsLink(t *testing.T) {
	gdb, mock := newMockDB()
	mock.ExpectQuery(`SELECT \* FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "ticket_id", "org_id", "is_approved"}).
			AddRow(11, 7, 5, false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "ticket_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	link := "https://forms.example.com/signup/abc"
	request, err := ApproveTicketRequest(gdb, 11, &link)
	assert.Nil(t, err)
	assert.True(t, request.IsApproved)
	assert.Equal(t, link, *request.TicketLink)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveTicketRequestClearingLinkRevokes(t *testing.T) {
	gdb, mock := newMockDB()
	mock.ExpectQuery(`SELECT \* FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "ticket_id", "org_id", "is_approved", "ticket_link"}).
			AddRow(11, 7, 5, true, "https://forms.example.com/signup/abc"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "ticket_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	request, err := ApproveTicketRequest(gdb, 11, nil)
	assert.Nil(t, err)
	assert.False(t, request.IsApproved)
	assert.Nil(t, request.TicketLink)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveTicketRequestEmptyLinkRevokes(t *testing.T) {
	gdb, mock := newMockDB()
	mock.ExpectQuery(`SELECT \* FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "ticket_id", "org_id", "is_approved"}).
			AddRow(11, 7, 5, true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "ticket_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	empty := ""
	request, err := ApproveTicketRequest(gdb, 11, &empty)
	assert.Nil(t, err)
	assert.False(t, request.IsApproved)
	assert.Nil(t, request.TicketLink)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestApproveTicketRequestNotFound(t *testing.T) {
	gdb, mock := newMockDB()
	mock.ExpectQuery(`SELECT \* FROM "ticket_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	link := "https://forms.example.com/signup/abc"
	_, err := ApproveTicketRequest(gdb, 99, &link)
	assert.NotNil(t, err)
	assert.Equal(t, 404, HTTPStatus(err))
	assert.Nil(t, mock.ExpectationsWereMet())
}
