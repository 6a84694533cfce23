// 初始化管理员账号脚本
//
// 全新部署时数据库里没有任何管理员，管理端接口无法使用。
// 此脚本创建（或将已有用户提升为）管理员，仅需在首次部署后执行一次。
//
// 用法: ADMIN_EMAIL=admin@example.com ADMIN_PASSWORD=xxx go run scripts/seed_admin.go

package main

import (
	"errors"
	"log"
	"os"
	"tmua_guide_backend/internal/config"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/repository"
	"tmua_guide_backend/pkg/database"
	"tmua_guide_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("必须设置 ADMIN_EMAIL 和 ADMIN_PASSWORD 环境变量")
	}
	if name == "" {
		name = "Administrator"
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	existing, err := userRepo.FindByEmail(email)
	if err == nil {
		if existing.Role == model.Admin {
			log.Printf("用户 %s 已是管理员", email)
			return
		}
		existing.Role = model.Admin
		if err := userRepo.Update(existing); err != nil {
			log.Fatalf("提升管理员失败: %v", err)
		}
		log.Printf("已将用户 %s 提升为管理员", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询用户失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	admin := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}
	log.Printf("已创建管理员 %s", email)
}
