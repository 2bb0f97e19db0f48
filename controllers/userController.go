package controllers

import (
	"net/http"
	"regexp"

	"github.com/foodway/foodway-api/models"
	"github.com/foodway/foodway-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var userNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserController struct {
	DB       *gorm.DB
	Uploader *utils.Uploader
}

func NewUserController(db *gorm.DB, uploader *utils.Uploader) *UserController {
	return &UserController{DB: db, Uploader: uploader}
}

// GetProfile returns the caller's profile together with its checkout
// readiness: the delivery address and phone are copied into orders, so both
// must be present before checkout is allowed.
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := findUserByUserID(c.DB, currentUserID(ctx))
	if err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	missing := user.MissingProfileFields()
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":       true,
		"data":          user,
		"isComplete":    len(missing) == 0,
		"missingFields": missing,
	})
}

type profileUpdateData struct {
	Name         *string `json:"name"`
	DisplayName  *string `json:"displayName"`
	UserName     *string `json:"userName"`
	Address      *string `json:"address"`
	PhoneNumber  *string `json:"phoneNumber"`
	DOB          *string `json:"dob"`
	Gender       *string `json:"gender"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateProfile accepts only the allow-listed fields; email, userID and
// role are system-managed and cannot be changed here.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var data profileUpdateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByUserID(c.DB, currentUserID(ctx))
	if err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	update := map[string]any{}
	if data.Name != nil && *data.Name != "" {
		update["name"] = *data.Name
	}
	if data.DisplayName != nil && *data.DisplayName != "" {
		update["display_name"] = *data.DisplayName
	}
	if data.Address != nil && *data.Address != "" {
		update["address"] = *data.Address
	}
	if data.ProfileImage != nil && *data.ProfileImage != "" {
		update["profile_image"] = *data.ProfileImage
	}

	if data.UserName != nil && *data.UserName != "" {
		if !userNameRegex.MatchString(*data.UserName) {
			sendErrorResponse(ctx, http.StatusBadRequest, "userName must contain only letters, numbers, and underscores")
			return
		}
		var count int64
		c.DB.Model(&models.User{}).
			Where("user_name = ? AND user_id <> ?", *data.UserName, user.UserID).
			Count(&count)
		if count > 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "userName already taken. Please choose another one.")
			return
		}
		update["user_name"] = *data.UserName
	}

	if data.Gender != nil && *data.Gender != "" {
		switch *data.Gender {
		case "Male", "Female", "Other":
			update["gender"] = *data.Gender
		default:
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid gender. Allowed values: Male, Female, Other.")
			return
		}
	}

	if data.PhoneNumber != nil && *data.PhoneNumber != "" {
		if !phoneRegex.MatchString(*data.PhoneNumber) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Phone number must be in +84XXXXXXXXX or 0XXXXXXXXX format")
			return
		}
		update["phone_number"] = *data.PhoneNumber
	}

	if data.DOB != nil && *data.DOB != "" {
		parsed, ok := parseDOB(*data.DOB)
		if !ok {
			sendErrorResponse(ctx, http.StatusBadRequest, "dob must be in dd-mm-yyyy format")
			return
		}
		update["dob"] = *parsed
	}

	if len(update) > 0 {
		if err := c.DB.Model(&user).Updates(update).Error; err != nil {
			log.Error().Err(err).Msg("error updating profile")
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": user})
}

// UploadAvatar stores the avatar via the uploader and returns its URL; the
// client saves it onto the profile with a follow-up update.
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	if c.Uploader == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}

	url, err := c.Uploader.Upload(ctx.Request.Context(), "avatars", file)
	if err != nil {
		log.Error().Err(err).Msg("avatar upload failed")
		sendErrorResponse(ctx, http.StatusInternalServerError, "Error uploading avatar")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":   true,
		"message":   "Avatar uploaded successfully",
		"avatarUrl": url,
	})
}

// AdminUpdateRole changes a user's role. Admins cannot demote themselves.
func (c *UserController) AdminUpdateRole(ctx *gin.Context) {
	var data struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
		NewRole      string `json:"newRole" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	switch data.NewRole {
	case models.RoleBuyer, models.RoleSeller, models.RoleAdmin:
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid role. Allowed: buyer, seller, admin")
		return
	}

	if data.TargetUserID == currentUserID(ctx) && data.NewRole != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, "You cannot change your own admin role")
		return
	}

	target, err := findUserByUserID(c.DB, data.TargetUserID)
	if err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Target user not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := c.DB.Model(&target).Update("role", data.NewRole).Error; err != nil {
		log.Error().Err(err).Msg("error updating role")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "User role updated to " + data.NewRole,
		"data":    gin.H{"userID": target.UserID, "role": data.NewRole},
	})
}

// AdminUpdateUser lets an admin edit another user's profile fields.
func (c *UserController) AdminUpdateUser(ctx *gin.Context) {
	var data struct {
		TargetUserID string  `json:"targetUserId" binding:"required"`
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		Address      *string `json:"address"`
		PhoneNumber  *string `json:"phoneNumber"`
		Gender       *string `json:"gender"`
	}
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	target, err := findUserByUserID(c.DB, data.TargetUserID)
	if err != nil {
		if isNotFound(err) {
			sendErrorResponse(ctx, http.StatusNotFound, "Target user not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	update := map[string]any{}
	if data.Name != nil {
		update["name"] = *data.Name
	}
	if data.Address != nil {
		update["address"] = *data.Address
	}
	if data.PhoneNumber != nil {
		update["phone_number"] = *data.PhoneNumber
	}
	if data.Gender != nil {
		update["gender"] = *data.Gender
	}

	if data.Email != nil && *data.Email != "" {
		var count int64
		c.DB.Model(&models.User{}).
			Where("email = ? AND user_id <> ?", *data.Email, target.UserID).
			Count(&count)
		if count > 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Email already in use")
			return
		}
		update["email"] = *data.Email
	}

	if len(update) > 0 {
		if err := c.DB.Model(&target).Updates(update).Error; err != nil {
			log.Error().Err(err).Msg("error updating user")
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "User updated successfully", "data": target})
}
