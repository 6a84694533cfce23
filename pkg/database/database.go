package database

import (
	"fmt"
	"log"
	"tmua_guide_backend/internal/config"
	"tmua_guide_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式下默认跳过迁移，通过 -migrate / -migrate-only 显式触发
	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Question{},
			&model.Attempt{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	return db, nil
}
