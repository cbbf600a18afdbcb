package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filter accumulates optional predicates with their parameters and renders
// them as a single parameterized WHERE clause.
type filter struct {
	exprs []clause.Expression
}

func (f *filter) add(sql string, vars ...any) *filter {
	f.exprs = append(f.exprs, clause.Expr{SQL: sql, Vars: vars})
	return f
}

// addIf appends the predicate only when cond holds.
func (f *filter) addIf(cond bool, sql string, vars ...any) *filter {
	if cond {
		f.add(sql, vars...)
	}
	return f
}

func (f *filter) apply(tx *gorm.DB) *gorm.DB {
	if len(f.exprs) == 0 {
		return tx
	}
	return tx.Clauses(clause.Where{Exprs: f.exprs})
}
