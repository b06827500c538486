package main

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jgardel/vivero-api/internal/category"
	"github.com/jgardel/vivero-api/internal/plantid"
)

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API de Catálogo de Plantas funcionando ✅"})
}

func listCategoriesHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener categorías"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

const maxImageSize = 5 << 20 // 5MB

func identifyPlantHandler(client *plantid.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no se proporcionó imagen"})
			return
		}
		if fh.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "imagen demasiado grande (máx 5MB)"})
			return
		}
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "solo se permiten imágenes"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error al procesar la imagen"})
			return
		}
		defer f.Close()
		img, err := io.ReadAll(io.LimitReader(f, maxImageSize))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error al procesar la imagen"})
			return
		}

		res := client.Identify(c.Request.Context(), img)
		message := "✅ Planta identificada con IA"
		if res.Demo {
			message = "🧪 Modo Demo: Resultados de prueba (configura API key para identificación real)"
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": message,
			"results": res.Results,
			"total":   res.Total,
			"demo":    res.Demo,
		})
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
