package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wishwell/internal/config"
	"wishwell/internal/database"
	"wishwell/internal/httperr"
	"wishwell/internal/logger"
	"wishwell/internal/token"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"required,min=1,max=100"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("email, password and fullName are required"))
		return
	}

	db := getDB(c)
	user, err := database.CreateUser(db, req.Email, req.FullName, req.Password)
	if err != nil {
		if err == database.ErrEmailTaken {
			httperr.Respond(c, httperr.Conflict("user already exists"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	logger.Info("user registered", logrus.Fields{"email": user.Email})

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    user.Public(),
	})
}

func handleSignin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.Validation("email and password are required"))
		return
	}

	db := getDB(c)
	user, err := database.AuthenticateUser(db, req.Email, req.Password)
	if err != nil {
		if err == database.ErrInvalidCredentials {
			httperr.Respond(c, httperr.Unauthorized("invalid email or password"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	cfg := c.MustGet("cfg").(*config.Config)
	tokenString, err := token.Generate(user.ID, user.Email, []byte(cfg.JWTSecret), cfg.TokenDuration)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "signed in successfully",
		"token":   tokenString,
		"user":    user.Public(),
	})
}

func handleMe(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
