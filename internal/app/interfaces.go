package app

import (
	"gorm.io/gorm"

	"github.com/catalogix/catalogd/config"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// AppContext combines the provider interfaces with the lifecycle methods
type AppContext interface {
	DBProvider
	ConfigProvider

	MigrateDB(track bool) error
	InitDb()
	DropAll()
	Release()
}
