package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the routes and users tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RouteModel{}, &UserModel{})
}
