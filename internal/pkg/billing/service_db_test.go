package billing

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ManuelReschke/PlanChange/internal/pkg/planchange"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const tiersQuery = "SELECT pricings.period AS period, plan_pricings.price AS price FROM `plan_pricings` JOIN pricings"

func TestNewPlanChangeServiceFromDB_CachesTiers(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mock.ExpectQuery(tiersQuery).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "20.00"))
	mock.ExpectQuery(tiersQuery).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "30.00"))

	svc := NewPlanChangeServiceFromDB(db, rdb, Config{
		Policy:   planchange.NewStandardPolicy(),
		CacheTTL: time.Minute,
	})

	for i := 0; i < 3; i++ {
		q, err := svc.Quote(context.Background(), QuoteInput{OldPlanID: 2, NewPlanID: 3, Period: 10})
		require.NoError(t, err)
		assert.Equal(t, "3.63", q.Amount.Decimal.StringFixed(2))
	}
	assert.NoError(t, mock.ExpectationsWereMet())

	// new price for plan 3 becomes visible after a flush
	require.NoError(t, svc.FlushTierCache(context.Background(), 2, 3))
	assert.False(t, mr.Exists("planchange:tiers:3"))

	mock.ExpectQuery(tiersQuery).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "20.00"))
	mock.ExpectQuery(tiersQuery).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "35.00"))

	q, err := svc.Quote(context.Background(), QuoteInput{OldPlanID: 2, NewPlanID: 3, Period: 10})
	require.NoError(t, err)
	// daily 1.17 - 0.67 = 0.50, 10 * 0.50 * 1.10
	assert.Equal(t, "5.50", q.Amount.Decimal.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPlanChangeServiceFromDB_WithoutCache(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(tiersQuery).WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "20.00"))
		mock.ExpectQuery(tiersQuery).WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"period", "price"}).AddRow(30, "10.00"))
	}

	svc := NewPlanChangeServiceFromDB(db, nil, Config{Policy: planchange.BasePolicy{}, CacheTTL: time.Minute})

	for i := 0; i < 2; i++ {
		q, err := svc.Quote(context.Background(), QuoteInput{OldPlanID: 2, NewPlanID: 1, Period: 10})
		require.NoError(t, err)
		assert.Equal(t, DirectionDowngrade, q.Direction)
		assert.False(t, q.Amount.Valid)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
