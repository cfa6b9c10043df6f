// cmd/seed/main.go — Crea/actualiza el usuario admin y datos de demo.
// Uso: go run cmd/seed/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/emerpc1992/horale/internal/infra"
	"github.com/emerpc1992/horale/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "data/horale.db"
	}
	username := "admin"
	password := "admin2026"

	db, err := infra.NewDatabase(dsn)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	admin := model.User{
		Username:     username,
		Name:         "Administrador",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "name", "role", "active"}),
	}).Create(&admin).Error; err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	products := []model.Product{
		{Name: "Shampoo 500ml", Category: "Cuidado personal", CostPrice: decimal.NewFromInt(30), Price: decimal.NewFromInt(55), Stock: 25, MinStock: 5, Active: true},
		{Name: "Tinte castaño", Category: "Coloración", CostPrice: decimal.NewFromInt(80), Price: decimal.NewFromInt(150), Stock: 12, MinStock: 3, Active: true},
		{Name: "Cera moldeadora", Category: "Estilizado", CostPrice: decimal.NewFromInt(45), Price: decimal.NewFromInt(90), Stock: 8, MinStock: 5, Active: true},
	}
	for i := range products {
		if err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			log.Fatalf("seed product error: %v", err)
		}
	}

	staff := []model.Staff{
		{Name: "María López", Active: true},
		{Name: "Carlos Pérez", Active: true},
	}
	for i := range staff {
		if err := db.Where("name = ?", staff[i].Name).FirstOrCreate(&staff[i]).Error; err != nil {
			log.Fatalf("seed staff error: %v", err)
		}
	}

	fmt.Printf("✅ Usuario '%s' creado/actualizado con password '%s'\n", username, password)
}
