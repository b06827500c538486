// Crea las tablas del storefront (idempotente). Equivalente a un paso de
// migración inicial; se corre una vez antes de levantar el server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jgardel/vivero-api/internal/config"
	"github.com/jgardel/vivero-api/internal/postgres"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[setup-db] connect: %v", err)
	}
	defer db.Close()

	if err := postgres.Setup(ctx, db); err != nil {
		log.Fatalf("[setup-db] schema: %v", err)
	}
	log.Println("[setup-db] tablas creadas exitosamente")
}
