package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
)

// newMockDB 创建基于sqlmock的GORM连接
// SkipInitializeWithVersion跳过GORM连接时的SELECT VERSION()探测
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

// TestFindLatestByProductID 按created_at倒序取最新一条
func TestFindLatestByProductID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "product_id", "price", "min_final_price", "unit_cost"}).
		AddRow(3, 42, "12000.00", "10000.00", "8000.00")

	mock.ExpectQuery(`SELECT .* FROM .price_histories. WHERE product_id = .* ORDER BY created_at DESC, id DESC`).
		WithArgs(42).
		WillReturnRows(rows)

	rec, err := repo.FindLatestByProductID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(3), rec.ID)
	assert.True(t, rec.Price.Equal(decimal.NewFromInt(12000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestFindLatestByProductID_NoHistory 无记录映射为领域错误
func TestFindLatestByProductID_NoHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	mock.ExpectQuery(`SELECT .* FROM .price_histories.`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindLatestByProductID(context.Background(), 99)
	assert.ErrorIs(t, err, pricing.ErrNoPriceHistory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSumActiveByProductID 只汇总Active门店，无行时COALESCE兜底为0
func TestSumActiveByProductID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStockRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(current\), 0\) FROM .agency_stocks. WHERE product_id = .* AND active = `).
		WithArgs(7, true).
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(current), 0)"}).AddRow(8))

	total, err := repo.SumActiveByProductID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSumActiveByProductID_NoRows 没有门店记录返回0
func TestSumActiveByProductID_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStockRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(current\), 0\) FROM .agency_stocks.`).
		WithArgs(404, true).
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(current), 0)"}).AddRow(0))

	total, err := repo.SumActiveByProductID(context.Background(), 404)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
