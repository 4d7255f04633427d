package database

import (
	"context"
	"fmt"
	"strings"

	"expenses/config"
	"expenses/logging"
	"expenses/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DSN 根据驱动构建连接字符串
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		), nil
	case "postgres", "postgresql":
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.DBName,
			sslMode,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Dialector 根据配置选择 gorm 方言
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.ToLower(cfg.Driver), "postgres") {
		return postgres.Open(dsn), nil
	}
	return mysql.Open(dsn), nil
}

// Init 初始化数据库连接并迁移表结构
func Init(cfg *config.Config, logger *logrus.Logger) error {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return err
	}

	db, err := Open(dialector, cfg.Database, logger)
	if err != nil {
		return err
	}
	DB = db

	logger.WithFields(logrus.Fields{
		"driver": cfg.Database.Driver,
		"host":   cfg.Database.Host,
		"dbname": cfg.Database.DBName,
	}).Info("database initialized")
	return nil
}

// Open 打开连接、设置连接池并自动迁移
func Open(dialector gorm.Dialector, cfg config.DatabaseConfig, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(logger, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := db.AutoMigrate(&models.Expense{}); err != nil {
		return nil, fmt.Errorf("migrate expense table: %w", err)
	}
	return db, nil
}

// Pinger 通过 gorm 底层连接池探活，供就绪探针使用
type Pinger struct {
	db *gorm.DB
}

// NewPinger 包装 gorm 连接
func NewPinger(db *gorm.DB) Pinger {
	return Pinger{db: db}
}

// PingContext 检查数据库连通性
func (p Pinger) PingContext(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭连接池
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
