package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gamma-omg/bizbot-brain/brain"
	"github.com/gamma-omg/bizbot-brain/providers"
	"github.com/gamma-omg/bizbot-brain/readers"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfgPath := flag.String("config", "cfg/config.yaml", "Configuration file for the assistant server")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := readConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %s", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	store := brain.NewStore(brain.StoreConfig{
		Log: logger,
		Readers: []brain.Reader{
			&readers.TextReader{},
			&readers.UniversalReader{},
		},
		VectorizeFloor: cfg.vectorizeFloor(),
	})

	router := providers.NewRouter(providers.RouterConfig{
		Log:             logger,
		OpenRouterTitle: "BizBot Brain",
	})

	session := brain.NewSession(brain.SessionConfig{
		Store:           store,
		Responder:       router,
		Provider:        providers.Provider(cfg.Provider),
		Model:           cfg.Model,
		Credentials:     cfg.credentials(),
		BaseInstruction: cfg.SystemInstruction,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DocRoot != "" {
		reg := &DocRegistry{
			log:              logger,
			root:             cfg.DocRoot,
			store:            store,
			mergeEventsDelay: cfg.mergeEventsDelay(),
		}

		go func() {
			if err := reg.Sync(ctx); err != nil {
				log.Fatal(err)
			}
			if err := reg.Watch(ctx); err != nil {
				log.Fatal(err)
			}
		}()
	}

	srv := NewBrainServer(store, session)
	sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.ServerAddr)))
	log.Println(sse.Start(cfg.ServerAddr))
}
