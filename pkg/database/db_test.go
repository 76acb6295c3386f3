package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/pkg/database"
)

func TestOpenSQL_SQLiteMemory(t *testing.T) {
	db, err := database.OpenSQL("sqlite", "file:opensql?mode=memory&cache=shared")
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := database.OpenSQL("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
