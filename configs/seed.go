package configs

import (
	"bakery/entity"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// สร้าง admin ครั้งแรก
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Warn().Msg("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Info().Str("email", email).Msg("admin already exists")
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Fullname: "Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// Seed สินค้าตั้งต้น ให้หน้าร้านมีของโชว์ตั้งแต่ boot แรก
func SeedProducts() error {
	db := DB()

	var count int64
	db.Model(&entity.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []entity.Product{
		{Name: "Chocolate Fudge Cake", Description: "เค้กช็อกโกแลตหน้านิ่ม", Price: 259, Category: "cake", Stock: 10},
		{Name: "Strawberry Shortcake", Description: "เค้กสตรอว์เบอร์รีครีมสด", Price: 279, Category: "cake", Stock: 10},
		{Name: "Butter Croissant", Description: "ครัวซองต์เนยแท้", Price: 65, Category: "bakery", Stock: 30},
		{Name: "Sourdough Loaf", Description: "ขนมปังซาวร์โดว์", Price: 120, Category: "bakery", Stock: 15},
		{Name: "Thai Milk Tea", Description: "ชาไทยเย็น", Price: 55, Category: "drink", Stock: 50},
		{Name: "Iced Americano", Description: "อเมริกาโน่เย็น", Price: 60, Category: "drink", Stock: 50},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	log.Info().Int("count", len(products)).Msg("seeded products")
	return nil
}
