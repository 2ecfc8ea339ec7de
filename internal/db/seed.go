package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

// Seed fills empty tables with the shop defaults so a fresh install is
// bookable without touching the admin panel first. Existing rows are
// never modified.
func Seed(db *gorm.DB) {
	seedOpeningHours(db)
	seedServices(db)
}

// Keep in sync with the fallback week in internal/domain/schedule.
func seedOpeningHours(db *gorm.DB) {
	var count int64
	db.Model(&models.OpeningHours{}).Count(&count)
	if count > 0 {
		return
	}

	week := []models.OpeningHours{
		{Weekday: 0, Closed: true},
		{Weekday: 1, OpenTime: "10:00", CloseTime: "19:00"},
		{Weekday: 2, OpenTime: "09:00", CloseTime: "19:30"},
		{Weekday: 3, OpenTime: "09:00", CloseTime: "19:30"},
		{Weekday: 4, OpenTime: "09:00", CloseTime: "19:30"},
		{Weekday: 5, OpenTime: "09:00", CloseTime: "19:30"},
		{Weekday: 6, OpenTime: "09:00", CloseTime: "19:30"},
	}

	if err := db.Create(&week).Error; err != nil {
		log.Printf("seed: opening hours: %v", err)
	}
}

func seedServices(db *gorm.DB) {
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return
	}

	services := []models.Service{
		{Name: "Taglio", Description: "Taglio classico con finitura", DurationMin: 30, Price: 18},
		{Name: "Taglio + Barba", Description: "Taglio completo con rifinitura barba", DurationMin: 45, Price: 25},
		{Name: "Barba", Description: "Regolazione e rifinitura barba", DurationMin: 15, Price: 10},
		{Name: "Taglio Bambino", Description: "Fino a 12 anni", DurationMin: 30, Price: 14},
	}

	if err := db.Create(&services).Error; err != nil {
		log.Printf("seed: services: %v", err)
	}
}
