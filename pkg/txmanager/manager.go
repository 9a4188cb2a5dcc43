package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/OmarShama/eventorove-booking/pkg/dbmetrics"
)

var (
	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationFailure возвращается, когда Postgres отклонил
	// сериализуемую транзакцию из-за конкурентного конфликта (коды 40001, 40P01).
	// Такую транзакцию безопасно повторить целиком
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

// Коды ошибок Postgres, означающие проигрыш в конкурентной сериализации
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// TxBeginner интерфейс для открытия транзакций
// Поддерживает *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакций *dbmetrics.DB
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций поверх обёрнутой метриками БД
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// Используется для критичных к гонкам операций (создание бронирования)
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
// Даёт согласованный снимок нескольких запросов (проверка доступности)
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return MapSerializationError(err)
	}

	if err := tx.Commit(); err != nil {
		if mapped := MapSerializationError(err); errors.Is(mapped, ErrSerializationFailure) {
			return mapped
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// MapSerializationError заменяет ошибки сериализации Postgres на
// ErrSerializationFailure, сохраняя остальные ошибки как есть
func MapSerializationError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if code == pgSerializationFailure || code == pgDeadlockDetected {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
	}
	return err
}
