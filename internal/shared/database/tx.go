package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements run on tx.
// Services own the *sql.Tx; repositories only bind to it.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	sess := db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	sess.Statement.ConnPool = tx
	return sess
}
