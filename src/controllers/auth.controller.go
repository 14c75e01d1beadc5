package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"ems/src/db"
	"ems/src/lib"
	"ems/src/models"
	"ems/src/types"
	"ems/src/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.UserLoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err = db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, http.StatusUnauthorized, errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}

	var orgID uint
	if user.OrganizationID != nil {
		orgID = *user.OrganizationID
	}
	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role, orgID)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not sign token")
	}

	rd := lib.GetRedisClient()
	if rd != nil {
		if err := rd.Set(ctx, fmt.Sprintf("%d:last_login", user.ID), time.Now().UnixMilli(), 0).Err(); err != nil {
			log.Printf("[redis] Error updating login cache: %s\n", err.Error())
		}
	}
	return &jwt, http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (id *uint, status int, err error) {
	var body types.UserSignupRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("could not hash password")
	}

	db := db.GetDb()
	var newUser models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&existing).Error; err != nil {
			return errors.New("could not complete transaction")
		}
		if existing > 0 {
			return errors.New("user is already registered in the system. Please proceed to Log In")
		}

		newUser = models.User{
			Email:    body.Email,
			Password: string(hashed),
			Role:     types.ROLE_USER,
			IsActive: true,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return fmt.Errorf("error creating user: %s", body.Email)
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &newUser.ID, http.StatusCreated, nil
}
