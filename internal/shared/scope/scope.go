package scope

import "gorm.io/gorm"

// Branch restricts rows of table to a single branch. An empty branchID is a no-op.
func Branch(table, branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if branchID == "" {
			return db
		}
		return db.Where(table+".branch_id = ?", branchID)
	}
}
