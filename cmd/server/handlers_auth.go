package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jgardel/vivero-api/internal/httpx"
	"github.com/jgardel/vivero-api/internal/user"
)

func registerHandler(repo user.Repository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		if req.Nombre == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nombre, email y contraseña son requeridos"})
			return
		}

		hash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al registrar usuario"})
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Nombre:       req.Nombre,
			Email:        req.Email,
			PasswordHash: hash,
			Telefono:     req.Telefono,
			Direccion:    req.Direccion,
			Rol:          user.RolUsuario,
		}
		if err := repo.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "el email ya está registrado"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al registrar usuario"})
			return
		}

		token, err := user.IssueToken(u, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al registrar usuario"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Usuario registrado exitosamente",
			"user":    u,
			"token":   token,
		})
	}
}

func loginHandler(repo user.Repository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email y contraseña son requeridos"})
			return
		}

		u, err := repo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al iniciar sesión"})
			return
		}
		if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales incorrectas"})
			return
		}
		token, err := user.IssueToken(u, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al iniciar sesión"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login exitoso", "user": u, "token": token})
	}
}

func profileHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := repo.GetByID(c.Request.Context(), c.GetString(httpx.CtxUserID))
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener el perfil"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}
