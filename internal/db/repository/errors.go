package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on uniqueness violations (duplicate username,
// duplicate role name, duplicate shoe/size variant).
var ErrConflict = errors.New("already exists")

// InsufficientStockError reports a sale line that exceeds the variant's
// available stock. It is raised both by the read-only pre-check and by the
// conditional decrement inside the sale transaction, so a concurrent sale
// racing past the pre-check still fails cleanly.
type InsufficientStockError struct {
	VariantID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d: %d available, %d requested",
		e.VariantID, e.Available, e.Requested)
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
