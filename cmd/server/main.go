package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jgardel/vivero-api/docs"
	"github.com/jgardel/vivero-api/internal/category"
	"github.com/jgardel/vivero-api/internal/config"
	"github.com/jgardel/vivero-api/internal/httpx"
	ord "github.com/jgardel/vivero-api/internal/order"
	"github.com/jgardel/vivero-api/internal/plantid"
	"github.com/jgardel/vivero-api/internal/postgres"
	prod "github.com/jgardel/vivero-api/internal/product"
	"github.com/jgardel/vivero-api/internal/redisx"
	"github.com/jgardel/vivero-api/internal/user"
)

func newRouter(users user.Repository, products prod.Repository, categories category.Repository,
	orders ord.Repository, cache redisx.Cache, identifier *plantid.Client, jwtSecret string) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	auth := httpx.Auth(jwtSecret)
	admin := httpx.RequireAdmin()

	api := r.Group("/api")
	api.GET("/health", healthHandler)

	api.POST("/auth/register", registerHandler(users, jwtSecret))
	api.POST("/auth/login", loginHandler(users, jwtSecret))
	api.GET("/auth/profile", auth, profileHandler(users))

	api.GET("/products/active", listActiveProductsHandler(products))
	api.GET("/products/search", searchProductsHandler(products))
	api.GET("/products/:id", getProductHandler(products))
	api.GET("/products", auth, admin, listProductsHandler(products))
	api.POST("/products", auth, admin, createProductHandler(products))
	api.PUT("/products/:id", auth, admin, updateProductHandler(products))
	api.DELETE("/products/:id", auth, admin, deleteProductHandler(products))
	api.PATCH("/products/:id/toggle-status", auth, admin, toggleProductStatusHandler(products))
	api.PATCH("/products/:id/stock", auth, admin, restockProductHandler(products))

	api.GET("/categories", listCategoriesHandler(categories))

	api.POST("/orders/create", auth, createOrderHandler(orders, cache))
	api.GET("/orders/my-orders", auth, myOrdersHandler(orders))
	api.GET("/orders/all", auth, admin, allOrdersHandler(orders))
	api.GET("/orders/:id", auth, getOrderHandler(orders))
	api.GET("/orders/:id/status", auth, getOrderStatusHandler(orders, cache))
	api.PUT("/orders/:id/status", auth, admin, updateOrderStatusHandler(orders, cache))

	api.POST("/plant-id/identify", identifyPlantHandler(identifier))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[server] db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	router := newRouter(
		user.NewPGRepo(db),
		prod.NewPGRepo(db),
		category.NewPGRepo(db),
		ord.NewPGRepo(db),
		redisx.NewCache(rdb),
		plantid.NewClient(cfg.PlantNetBaseURL, cfg.PlantNetAPIKey),
		cfg.JWTSecret,
	)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Printf("[server] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("[server] shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
