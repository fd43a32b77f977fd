package common

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrStaleState возвращается, когда условное обновление не затронуло ни одной строки:
// запись успели перевести в другой статус.
var ErrStaleState = errors.New("entity state changed concurrently")

// pgUniqueViolation код ошибки unique_violation в PostgreSQL.
const pgUniqueViolation = "23505"

// IsUniqueViolation распознаёт нарушение уникальности для обоих драйверов.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
