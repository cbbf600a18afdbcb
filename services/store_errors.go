package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// outcome is the storage adapter's classification of a write or lookup result.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeDuplicate
	outcomeNotFound
	outcomeMissingParent
	outcomeOther
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// classify maps driver and GORM errors onto a small tagged set so services
// never inspect driver message text.
func classify(err error) outcome {
	if err == nil {
		return outcomeOK
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return outcomeDuplicate
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return outcomeDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return outcomeMissingParent
	}
	if errors.As(err, &myErr) && myErr.Number == mysqlNoReferencedRow {
		return outcomeMissingParent
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return outcomeNotFound
	}
	return outcomeOther
}
