package repo

import (
	"fmt"
	"testing"

	"flowstudio"
	"flowstudio/internal/api/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB points the global connection at a private in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), flowstudio.GormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FlowContainer{}, &models.FlowNode{}))
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	flowstudio.DB = db
	flowstudio.Logger = zerolog.Nop()
	t.Cleanup(func() { conn.Close() })
	return db
}
