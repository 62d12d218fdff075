package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Mark-Bosco/Clear-Meals/config"
	"github.com/Mark-Bosco/Clear-Meals/models"
	"github.com/Mark-Bosco/Clear-Meals/utils"
)

// RegisterUser creates an unverified account and mails a verification
// code. Sign-in is blocked until the code is confirmed.
func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))

	user := models.User{
		Email:            email,
		Password:         hashedPassword,
		FullName:         fullName,
		Verified:         false,
		VerificationCode: code,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return err
	}

	return utils.SendVerificationEmail(email, code)
}

// VerifyEmail confirms the emailed code and unlocks the account.
func VerifyEmail(email, code string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return errors.New("user not found")
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return errors.New("invalid verification code")
	}

	user.Verified = true
	user.VerificationCode = ""
	return config.DB.Save(user).Error
}

// AuthenticateUser checks credentials and returns a signed JWT.
func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}
	if !user.Verified {
		return "", errors.New("email not verified")
	}

	return utils.GenerateJWT(user.Email)
}

// ForgotPassword mails a one-time reset code.
func ForgotPassword(email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return errors.New("user not found")
	}

	code := utils.GenerateRandomToken(8)
	user.ResetCode = code
	if err := config.DB.Save(user).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(email, code)
}

// ResetPassword consumes the emailed code and sets a new password.
func ResetPassword(email, code, newPassword string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return errors.New("user not found")
	}
	if user.ResetCode == "" || user.ResetCode != code {
		return errors.New("invalid reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetCode = ""
	return config.DB.Save(user).Error
}
