package postgres

import (
	"testing"

	"github.com/VitaminP8/picshare/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB подменяет глобальную DB на sqlite в памяти и возвращает старое значение
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	oldDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	err = testDB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
	require.NoError(t, err)

	DB = testDB
	return oldDB
}

// teardownTestDB закрывает тестовую БД и восстанавливает старую
func teardownTestDB(oldDB *gorm.DB) {
	if DB != nil {
		DB.Close()
	}
	DB = oldDB
}

func TestGetDB(t *testing.T) {
	originalDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	DB = testDB

	result := GetDB()
	assert.Equal(t, DB, result)

	DB = originalDB
}

func TestInitDBWithConnection(t *testing.T) {
	originalDB := DB

	testDB, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer testDB.Close()

	InitDBWithConnection(testDB)
	assert.Equal(t, testDB, DB)

	DB = originalDB
}

func TestCloseDBWithNilDB(t *testing.T) {
	originalDB := DB

	DB = nil
	err := CloseDB()
	assert.NoError(t, err)

	DB = originalDB
}

// Примечание: Тесты InitDB с реальным подключением не включены, так как они требуют настоящую PostgreSQL базу данных.
