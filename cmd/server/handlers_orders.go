package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jgardel/vivero-api/internal/httpx"
	ord "github.com/jgardel/vivero-api/internal/order"
	"github.com/jgardel/vivero-api/internal/redisx"
)

// orderErrorResponse traduce los errores tipados del engine a HTTP. El engine
// nunca loguea; el contexto del intento se loguea acá, en la frontera.
func orderErrorResponse(c *gin.Context, err error, userID string, nItems int) {
	var ve *ord.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		return
	}
	var ise *ord.InsufficientStockError
	if errors.As(err, &ise) {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "stock insuficiente",
			"product_id": ise.ProductID,
			"requested":  ise.Requested,
			"available":  ise.Available,
		})
		return
	}
	if errors.Is(err, ord.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "orden no encontrada"})
		return
	}
	if errors.Is(err, ord.ErrInvalidTransition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transición de estado no permitida"})
		return
	}
	log.Printf("[orders] user=%s items=%d error: %v", userID, nItems, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "error al procesar la orden"})
}

// cachedOrder es el payload que se guarda bajo la clave de idempotencia.
type cachedOrder struct {
	Order ord.Order  `json:"order"`
	Items []ord.Item `json:"items"`
}

func createOrderHandler(repo ord.Repository, cache redisx.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		userID := c.GetString(httpx.CtxUserID)

		// Fast-path de idempotencia: un replay con la misma clave se responde
		// desde redis sin abrir transacción. La clave incluye el user_id, así
		// que nunca se sirve la orden de otro usuario.
		if cache != nil && req.IdempotencyKey != "" {
			idemKey := fmt.Sprintf(redisx.KeyIdemOrderCreate, userID, req.IdempotencyKey)
			if raw, err := cache.Get(c.Request.Context(), idemKey); err == nil {
				var prev cachedOrder
				if err := json.Unmarshal([]byte(raw), &prev); err == nil && prev.Order.ID != "" {
					c.JSON(http.StatusOK, gin.H{
						"message": "Orden creada exitosamente",
						"order":   prev.Order,
						"items":   prev.Items,
					})
					return
				}
			}
		}

		o := &ord.Order{
			UserID:           userID,
			Total:            req.Total,
			DireccionEnvio:   req.DireccionEnvio,
			TelefonoContacto: req.TelefonoContacto,
			Notas:            req.Notas,
			IdempotencyKey:   req.IdempotencyKey,
		}
		items := make([]ord.ItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, ord.ItemInput{ProductID: it.ProductID, Cantidad: it.Cantidad})
		}

		persisted, existed, err := repo.Create(c.Request.Context(), o, items)
		if err != nil {
			orderErrorResponse(c, err, userID, len(items))
			return
		}

		if cache != nil {
			ctx := c.Request.Context()
			if o.IdempotencyKey != "" {
				if raw, err := json.Marshal(cachedOrder{Order: *o, Items: persisted}); err == nil {
					key := fmt.Sprintf(redisx.KeyIdemOrderCreate, userID, o.IdempotencyKey)
					_ = cache.Set(ctx, key, string(raw), redisx.TTLIdempotency)
				}
			}
			_ = cache.Set(ctx, fmt.Sprintf(redisx.KeyOrderEstado, o.ID), string(o.Estado), redisx.TTLEstadoCache)
		}

		code := http.StatusCreated
		if existed {
			code = http.StatusOK
		}
		c.JSON(code, gin.H{
			"message": "Orden creada exitosamente",
			"order":   o,
			"items":   persisted,
		})
	}
}

func myOrdersHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(httpx.CtxUserID)
		limit := intQuery(c, "limit", 20)
		offset := intQuery(c, "offset", 0)
		orders, err := repo.ListByUser(c.Request.Context(), userID, limit, offset)
		if err != nil {
			orderErrorResponse(c, err, userID, 0)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			orderErrorResponse(c, err, c.GetString(httpx.CtxUserID), 0)
			return
		}
		items, err := repo.GetItems(c.Request.Context(), id)
		if err != nil {
			orderErrorResponse(c, err, c.GetString(httpx.CtxUserID), 0)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}

func allOrdersHandler(repo ord.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.ListAll(c.Request.Context())
		if err != nil {
			orderErrorResponse(c, err, c.GetString(httpx.CtxUserID), 0)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// getOrderStatusHandler sirve el estado desde redis cuando está caliente;
// solo en miss va a Postgres y repuebla la clave.
func getOrderStatusHandler(repo ord.Repository, cache redisx.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if cache != nil {
			if v, err := cache.Get(c.Request.Context(), fmt.Sprintf(redisx.KeyOrderEstado, id)); err == nil {
				c.JSON(http.StatusOK, gin.H{"id": id, "estado": v})
				return
			}
		}
		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			orderErrorResponse(c, err, c.GetString(httpx.CtxUserID), 0)
			return
		}
		if cache != nil {
			_ = cache.Set(c.Request.Context(), fmt.Sprintf(redisx.KeyOrderEstado, id), string(o.Estado), redisx.TTLEstadoCache)
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "estado": o.Estado})
	}
}

func updateOrderStatusHandler(repo ord.Repository, cache redisx.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req ord.UpdateEstadoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "json inválido"})
			return
		}
		if err := repo.UpdateEstado(c.Request.Context(), id, req.Estado); err != nil {
			orderErrorResponse(c, err, c.GetString(httpx.CtxUserID), 0)
			return
		}
		if cache != nil {
			_ = cache.Set(c.Request.Context(), fmt.Sprintf(redisx.KeyOrderEstado, id), string(req.Estado), redisx.TTLEstadoCache)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Estado actualizado", "estado": req.Estado})
	}
}
