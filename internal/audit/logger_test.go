package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestLoggerRecord(t *testing.T) {
	db, mock := newMockDB(t)
	l := audit.New(db)

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WithArgs(sqlmock.AnyArg(), audit.ActionAppointmentCreated, audit.EntityAppointment, sqlmock.AnyArg(), `{"startsAt":"09:00"}`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := l.Record(context.Background(), audit.Event{
		ActorID:  audit.Ptr(3),
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(9),
		Metadata: map[string]string{"startsAt": "09:00"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoggerList(t *testing.T) {
	db, mock := newMockDB(t)
	l := audit.New(db)

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2`).
		WithArgs(audit.ActionAppointmentCancelled, from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(audit.ActionAppointmentCancelled, from, 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action"}).AddRow(1, audit.ActionAppointmentCancelled))

	logs, total, err := l.List(context.Background(), audit.Filter{
		Action: audit.ActionAppointmentCancelled,
		From:   &from,
		Page:   2,
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterNormalize(t *testing.T) {
	f := audit.Filter{Limit: 1000}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
}
