package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/smallkid/line-ledger-bot/internal/config"
	"github.com/smallkid/line-ledger-bot/internal/events/kafka"
	"github.com/smallkid/line-ledger-bot/internal/interfaces"
	"github.com/smallkid/line-ledger-bot/internal/ledger"
	"github.com/smallkid/line-ledger-bot/internal/storage/memory"
	"github.com/smallkid/line-ledger-bot/internal/storage/postgres"
	"github.com/smallkid/line-ledger-bot/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("load time zone %q: %v", cfg.TimeZone, err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		log.Printf("publishing record events to %v", cfg.KafkaBrokers)
	}

	svc := ledger.NewService(store, publisher, loc)
	client := webhook.NewReplyClient(cfg.ChannelToken)
	handler := webhook.NewHandler(svc, client, cfg.ChannelSecret)

	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.Register(router)

	log.Printf("listening on :%d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// openStore selects the record store backend: Postgres when a DSN is
// configured, the in-memory store otherwise.
func openStore(cfg *config.Config) (interfaces.RecordStore, error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory record store")
		return memory.NewRecordStore(), nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := postgres.NewRecordStore(db)
	if err := store.InitTable(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}
