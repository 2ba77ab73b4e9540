package lock

import "errors"

var (
	// ErrAcquire возвращается, если Redis недоступен при захвате блокировки
	ErrAcquire = errors.New("lock: failed to acquire")
)
