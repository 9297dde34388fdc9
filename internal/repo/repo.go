package repo

import (
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = fmt.Errorf("record not found: %w", gorm.ErrRecordNotFound)

type GormRepo struct {
	DB *gorm.DB
}
