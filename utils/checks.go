package utils

import (
	models "Tambola/models/postgres"
	"fmt"

	"gorm.io/gorm"
)

// Function to check if a game exists
func CheckGameExists(db *gorm.DB, gameID string) (*models.Game, error) {
	var game models.Game
	result := db.Where("id = ?", gameID).First(&game)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game not found")
		}
		return nil, result.Error
	}

	return &game, nil
}

// Function to check if a game exists by its join code
func CheckGameByCode(db *gorm.DB, code string) (*models.Game, error) {
	var game models.Game
	result := db.Where("code = ?", code).First(&game)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game not found")
		}
		return nil, result.Error
	}

	return &game, nil
}

// Check if a user id resolves to an account
func UserExists(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func IsPlayerInGame(db *gorm.DB, gameID string, userID string) (bool, error) {
	game, err := CheckGameExists(db, gameID)
	if err != nil {
		return false, err
	}
	return game.HasPlayer(userID), nil
}
