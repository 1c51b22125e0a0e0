package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/anasouza/boutique/config"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}

	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			panic(err)
		}
		sqldb, err := db.DB()
		if err == nil {
			sqldb.SetMaxOpenConns(cfg.MaxConn)
			sqldb.SetMaxIdleConns(cfg.IdleConn)
		}
		return db
	default:
		// schema file is created on first start when absent
		dbfile := filepath.Join(workdir, "data", cfg.Name+".db")
		db, err := gorm.Open(sqlite.Open(dbfile), gormCfg)
		if err != nil {
			panic(err)
		}
		return db
	}
}

// checkAdminAccount seeds the admin panel operator on first start and
// repairs an emptied password on later ones.
func (a *Application) checkAdminAccount() {
	username := a.appConfig.Web.AdminUsername
	password := a.appConfig.Web.AdminPassword

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	var operator domain.User
	err = a.gormDB.Where("email = ?", username).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Email:     username,
			Password:  string(hashed),
			Phone:     "0000",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create admin account", zap.Error(err))
		} else {
			zap.L().Info("initialized admin account", zap.String("username", username))
		}
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	case operator.Password == "":
		if err := a.gormDB.Model(&domain.User{}).Where("id = ?", operator.ID).
			Update("password", string(hashed)).Error; err != nil {
			zap.L().Error("failed to repair admin account", zap.Error(err))
		} else {
			zap.L().Warn("repaired admin account password", zap.String("username", username))
		}
	}
}

// checkProducts seeds a demo catalog so a fresh install renders pages
// with content.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "Colar Flor do Cerrado", Description: "Colar artesanal banhado a ouro", Price: 89.9, Stock: 12, Color: "dourado", Image: "/static/img/colar-flor.jpg"},
		{Name: "Brinco Aurora", Description: "Brinco de prata com pedra natural", Price: 59.5, Stock: 30, Color: "prata", Image: "/static/img/brinco-aurora.jpg"},
		{Name: "Pulseira Mar Aberto", Description: "Pulseira ajustável com pingente", Price: 45.0, Stock: 25, Color: "azul", Image: "/static/img/pulseira-mar.jpg"},
		{Name: "Anel Lua Cheia", Description: "Anel minimalista", Price: 39.9, Stock: 40, Color: "prata", Image: "/static/img/anel-lua.jpg"},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}

// checkPosts seeds the blog with a welcome entry.
func (a *Application) checkPosts() {
	defaultPosts := []domain.Post{
		{
			Title:     "Bem-vindos ao ateliê",
			Subtitle:  "Como tudo começou",
			Body:      "Cada peça é feita à mão, uma história de cada vez.",
			Author:    "Ana Souza",
			Published: "10/01/2025",
			Image:     "/static/img/atelie.jpg",
		},
	}

	for _, p := range defaultPosts {
		var count int64
		a.gormDB.Model(&domain.Post{}).Where("title = ?", p.Title).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default post", zap.String("title", p.Title), zap.Error(err))
			} else {
				zap.L().Info("initialized default post", zap.String("title", p.Title))
			}
		}
	}
}
