package main

import (
	"log"
	"net/http"

	"moneydeck/internal/config"
	"moneydeck/internal/httpmw"
	"moneydeck/internal/server"
	"moneydeck/internal/store"
)

func main() {
	cfg, err := config.Load("moneydeck.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sessions, err := store.NewFileRepo(cfg.Server.DataDir)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	runs, err := store.OpenRunRepo(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("open run history: %v", err)
	}
	defer runs.Close()

	app := server.NewApp(cfg.Balance, sessions, runs, log.Default())

	mux := http.NewServeMux()
	server.Register(mux, app)
	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(log.Default()),
		httpmw.WithRecover(log.Default()),
	)

	log.Printf("moneydeck listening on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
