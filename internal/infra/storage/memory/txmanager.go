package memory

import "context"

// TxManager выполняет функцию без транзакции. Хранилища в памяти атомарны на уровне одной операции,
// поэтому для тестов сервисов этого достаточно.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
