package scope

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type probe struct {
	ID string
}

func TestBranch(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DryRun: true})
	assert.NoError(t, err)

	stmt := gdb.Table("assets").Scopes(Branch("assets", "b-1")).Find(&[]probe{}).Statement
	assert.Contains(t, stmt.SQL.String(), "assets.branch_id = $1")
	assert.Equal(t, []interface{}{"b-1"}, stmt.Vars)

	stmt = gdb.Session(&gorm.Session{NewDB: true}).Table("assets").Scopes(Branch("assets", "")).Find(&[]probe{}).Statement
	assert.NotContains(t, stmt.SQL.String(), "branch_id")
}
