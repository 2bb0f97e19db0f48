package controllers

import (
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	msgUserAlreadyExists  = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgRegistered         = "Registration successful. Please login."
)

var phoneRegex = regexp.MustCompile(`^(\+84|0)\d{9}$`)

type AuthController struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
}

func NewAuthController(db *gorm.DB, mailer *utils.Mailer) *AuthController {
	return &AuthController{DB: db, Mailer: mailer}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.UserID,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// parseDOB accepts dd-mm-yyyy and rejects impossible dates.
func parseDOB(s string) (*time.Time, bool) {
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// Register handles new buyer/seller accounts. The admin role is never
// self-assigned.
func (c *AuthController) Register(ctx *gin.Context) {
	var data models.RegisterData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var count int64
	if err := c.DB.Model(&models.User{}).Where("email = ?", data.Email).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("database error during user check")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	if data.PhoneNumber != "" && !phoneRegex.MatchString(data.PhoneNumber) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Phone number must be in +84XXXXXXXXX or 0XXXXXXXXX format")
		return
	}

	var dob *time.Time
	if data.DOB != "" {
		parsed, ok := parseDOB(data.DOB)
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "dob must be in dd-mm-yyyy format")
			return
		}
		dob = parsed
	}

	role := models.RoleBuyer
	if data.Role == models.RoleSeller {
		role = models.RoleSeller
	}

	hashedPassword, err := hashPassword(data.Password)
	if err != nil {
		log.Error().Err(err).Msg("password hashing error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	displayName := data.DisplayName
	if displayName == "" {
		displayName = data.Name
	}

	user := models.User{
		UserID:      utils.NewID("U"),
		UserName:    strings.Split(data.Email, "@")[0] + "_" + utils.NewID("")[1:],
		Email:       data.Email,
		Password:    hashedPassword,
		Role:        role,
		Name:        data.Name,
		DisplayName: displayName,
		PhoneNumber: data.PhoneNumber,
		DOB:         dob,
		Gender:      data.Gender,
	}

	if err := c.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("user creation error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success": true,
		"message": msgRegistered,
		"userID":  user.UserID,
		"email":   user.Email,
		"role":    user.Role,
	})
}

// Login authenticates a user. Unknown email and bad password produce the
// same message so registration status is not leaked.
func (c *AuthController) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := c.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, data.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Error().Err(err).Msg("JWT generation error")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":          true,
		"token":            tokenString,
		"role":             user.Role,
		"userID":           user.UserID,
		"name":             user.Name,
		"displayName":      user.DisplayName,
		"profileCompleted": user.ProfileCompleted,
		"onboardingShown":  user.OnboardingShown,
		"data":             user,
	})
}
