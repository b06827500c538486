package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	prod "github.com/jgardel/vivero-api/internal/product"
)

func listProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener productos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func listActiveProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener productos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func searchProductsHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parámetro q requerido"})
			return
		}
		products, err := repo.Search(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al buscar productos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "q": q})
	}
}

func getProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, prod.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "producto no encontrado"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al obtener producto"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func createProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		if req.Nombre == "" || req.Precio == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y precio son requeridos"})
			return
		}
		if req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock no puede ser negativo"})
			return
		}
		p := &prod.Product{
			ID:               uuid.NewString(),
			Nombre:           req.Nombre,
			NombreCientifico: req.NombreCientifico,
			Descripcion:      req.Descripcion,
			Precio:           req.Precio,
			Stock:            req.Stock,
			ImagenURL:        req.ImagenURL,
			CategoriaID:      req.CategoriaID,
			Cuidados:         req.Cuidados,
			Luz:              req.Luz,
			Riego:            req.Riego,
			Tamano:           req.Tamano,
			Estado:           req.Estado,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al crear producto"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Producto creado exitosamente", "product": p})
	}
}

func updateProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		if req.Stock != nil && *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock no puede ser negativo"})
			return
		}
		p := &prod.Product{
			ID:               c.Param("id"),
			Nombre:           req.Nombre,
			NombreCientifico: req.NombreCientifico,
			Descripcion:      req.Descripcion,
			Precio:           req.Precio,
			ImagenURL:        req.ImagenURL,
			CategoriaID:      req.CategoriaID,
			Cuidados:         req.Cuidados,
			Luz:              req.Luz,
			Riego:            req.Riego,
			Tamano:           req.Tamano,
			Estado:           req.Estado,
		}
		err := repo.Update(c.Request.Context(), p, req.Precio != "", req.Stock)
		if errors.Is(err, prod.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "producto no encontrado"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al actualizar producto"})
			return
		}
		updated, err := repo.GetByID(c.Request.Context(), p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al actualizar producto"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Producto actualizado", "product": updated})
	}
}

func deleteProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al eliminar producto"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "producto no encontrado"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
	}
}

func toggleProductStatusHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.ToggleEstado(c.Request.Context(), c.Param("id"))
		if errors.Is(err, prod.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "producto no encontrado"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al cambiar estado"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Estado actualizado", "product": p})
	}
}

func restockProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req prod.RestockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		p, err := repo.Restock(c.Request.Context(), c.Param("id"), req.Cantidad)
		switch {
		case errors.Is(err, prod.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "producto no encontrado"})
		case errors.Is(err, prod.ErrNegativeStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "el stock no puede quedar negativo"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error al actualizar stock"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Stock actualizado", "product": p})
		}
	}
}
