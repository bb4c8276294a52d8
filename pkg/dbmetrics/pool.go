package dbmetrics

import (
	"database/sql"
	"time"
)

// DefaultPoolStatsInterval период опроса состояния пула соединений
const DefaultPoolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает *sql.DB со сбором метрик запросов и
// запускает периодический сбор статистики пула до закрытия stop
func WrapWithDefault(db *sql.DB, observer PoolObserver, stop <-chan struct{}) *DB {
	wrapped := WrapWithObserver(db, observer)
	go CollectPoolStats(db, observer, DefaultPoolStatsInterval, stop)
	return wrapped
}

// CollectPoolStats публикует db.Stats() с заданным интервалом до закрытия stop
func CollectPoolStats(db *sql.DB, observer PoolObserver, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	observer.SetPoolStats(db.Stats())
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			observer.SetPoolStats(db.Stats())
		}
	}
}
