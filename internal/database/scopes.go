package database

import (
	"math"

	"gorm.io/gorm"
)

// Paginate applies zero-indexed page/size pagination to a GORM query.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		// an offset that does not fit in an int selects nothing
		if page < 0 || size < 1 || page > math.MaxInt/size {
			return db.Limit(0)
		}
		return db.Offset(page * size).Limit(size)
	}
}
