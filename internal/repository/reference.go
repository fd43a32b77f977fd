package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// maxReferenceAttempts ограничивает число попыток при коллизии номера.
const maxReferenceAttempts = 10

// ErrReferenceExhausted возвращается, если все попытки сгенерировать номер дали коллизию.
var ErrReferenceExhausted = errors.New("reference number space exhausted")

// ReferenceGenerator выдаёт номер заявления вида <prefix>-<year>-<4 цифры>.
type ReferenceGenerator func(prefix string, now time.Time) string

// RandomReference генератор по умолчанию.
func RandomReference(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, now.Year(), rand.Intn(10000))
}

// insertWithReference повторяет вставку, пока номер не окажется уникальным.
// insert возвращает sql.ErrNoRows, когда ON CONFLICT отбросил строку.
func insertWithReference(ctx context.Context, gen ReferenceGenerator, prefix string, now time.Time, insert func(ref string) error) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ref := gen(prefix, now)
		err := insert(ref)
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}
	return "", ErrReferenceExhausted
}
