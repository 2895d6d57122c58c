// Package dao 实现数据访问层
package dao

import (
	"os"
	"time"

	"github.com/haierkeys/notes-web-client/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig database configuration (injected, no global state)
// DatabaseConfig 数据库配置（注入式，无全局状态）
type DatabaseConfig struct {
	Type         string
	Path         string
	TablePrefix  string
	MaxIdleConns int
	MaxOpenConns int
	RunMode      string
}

type Dao struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{db: db}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngineWithConfig initializes the gorm engine from injected config
// NewDBEngineWithConfig 使用注入的配置初始化 gorm 引擎
func NewDBEngineWithConfig(c DatabaseConfig) (*gorm.DB, error) {

	db, err := gorm.Open(sessionDialector(c), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// :memory: 模式下每个连接都是独立的数据库，必须固定为单连接
	if c.Path == ":memory:" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return db, nil
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func sessionDialector(c DatabaseConfig) gorm.Dialector {
	if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
		fileurl.CreatePath(c.Path, os.ModePerm)
	}
	return sqlite.Open(c.Path)
}
