package database

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

type afterCommitKey struct{}

// commitHooks acumula as funções registradas por AfterCommit durante uma transação.
type commitHooks struct {
	fns []func()
}

// Executor é o subconjunto comum de *sql.DB e *sql.Tx usado pelos repositórios.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Conn devolve a transação ativa no contexto ou, na ausência dela, o próprio pool.
func Conn(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// InTx informa se o contexto carrega uma transação aberta pelo TxManager.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// AfterCommit adia fn até o commit da transação presente no contexto; sem transação,
// fn roda na hora. Em rollback as funções registradas são descartadas.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

// TxManager executa uma unidade de trabalho dentro de uma transação do PostgreSQL.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx abre uma transação, injeta-a no contexto entregue a fn e faz commit se fn
// retornar nil. Qualquer erro ou panic em fn provoca rollback. Chamadas aninhadas
// reaproveitam a transação externa.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	hooks := &commitHooks{}
	txCtx := context.WithValue(context.WithValue(ctx, txKey{}, tx), afterCommitKey{}, hooks)

	if err = fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback falhou: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}

	for _, hook := range hooks.fns {
		hook()
	}
	return nil
}
