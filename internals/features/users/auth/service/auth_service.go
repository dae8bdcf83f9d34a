// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authDTO "sekolahku_backend/internals/features/users/auth/dto"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

const accessTTLDefault = 24 * time.Hour

var validate = validator.New()

/* ==========================
   Password helpers
========================== */

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

/* ==========================
   Token issue
========================== */

func IssueAccessToken(u *userModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"role":      u.Role,
		"user_name": u.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

/* ==========================
   Register & Login
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var body authDTO.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	var count int64
	if err := db.Model(&userModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	hashed, err := HashPassword(body.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := body.ToModel(hashed)
	if err := db.Create(user).Error; err != nil {
		// unique index student_id/teacher_id/visitor_id bisa bentrok juga
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Email atau ID sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan user")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", authDTO.LoginUser{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	})
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var body authDTO.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	var user userModel.UserModel
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		// pesan sengaja sama untuk email tidak terdaftar & password salah
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if err := CheckPasswordHash(user.Password, body.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	token, err := IssueAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", authDTO.LoginResponse{
		Token: token,
		User: authDTO.LoginUser{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
		},
	})
}
