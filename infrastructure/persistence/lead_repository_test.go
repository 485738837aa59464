package persistence

import (
	"context"
	"testing"
	"time"

	"creedava-api/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func nowUTC() time.Time { return time.Now().UTC() }

func TestLeadRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs("Jane Doe", "jane@example.com", "", "", "Need a VA", "contact-form", model.LeadStatusNew,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := NewLeadRepository(db)
	lead := &model.Lead{Name: "Jane Doe", Email: "jane@example.com", Message: "Need a VA", Source: "contact-form"}
	err = repo.Create(context.Background(), lead)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), lead.ID)
	assert.Equal(t, model.LeadStatusNew, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "company", "message", "source", "status", "created_at", "updated_at"}))

	repo := NewLeadRepository(db)
	lead, err := repo.GetByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, lead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_List_FiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM leads WHERE status`).
		WithArgs(model.LeadStatusQualified).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs(model.LeadStatusQualified, 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "company", "message", "source", "status", "created_at", "updated_at"}).
			AddRow(int64(3), "Acme Buyer", "buyer@acme.test", "555-0101", "Acme", "", "referral", model.LeadStatusQualified, nowUTC(), nowUTC()))

	repo := NewLeadRepository(db)
	leads, total, err := repo.List(context.Background(), model.LeadStatusQualified, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Acme Buyer", leads[0].Name)
	assert.Equal(t, "Acme", leads[0].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM leads`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewLeadRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
