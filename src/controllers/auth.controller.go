package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"hros/src/db"
	"hros/src/models"
	"hros/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func AuthLogin(ctx *gin.Context) (string, int, error) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return "", http.StatusBadRequest, err
	}
	var user models.User
	db := db.GetDb()
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("Error retrieving user [%s]: %s\n", body.Email, err.Error())
		return "", http.StatusNotFound, errors.New("no user account is associated with this email")
	}
	token, err := GenerateJWT(user.Email, user.ID)
	if err != nil {
		log.Printf("Error generating JWT token: %s\n", err.Error())
		return "", http.StatusInternalServerError, err
	}
	return token, http.StatusOK, nil
}
