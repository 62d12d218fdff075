package services

import (
	"github.com/Mark-Bosco/Clear-Meals/config"
	"github.com/Mark-Bosco/Clear-Meals/models"
)

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateProfile(userID uint, fullName string) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("full_name", fullName).Error
}

// DeleteAccount removes the user and every log they own.
func DeleteAccount(userID uint) error {
	var logs []models.DailyLog
	if err := config.DB.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return err
	}
	for _, log := range logs {
		var meals []models.Meal
		if err := config.DB.Where("daily_log_id = ?", log.ID).Find(&meals).Error; err != nil {
			return err
		}
		for _, meal := range meals {
			if err := config.DB.Unscoped().Where("meal_id = ?", meal.ID).Delete(&models.FoodListItem{}).Error; err != nil {
				return err
			}
		}
		if err := config.DB.Unscoped().Where("daily_log_id = ?", log.ID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
	}
	if err := config.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.DailyLog{}).Error; err != nil {
		return err
	}
	if err := config.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.DailyGoal{}).Error; err != nil {
		return err
	}
	return config.DB.Unscoped().Delete(&models.User{}, userID).Error
}
