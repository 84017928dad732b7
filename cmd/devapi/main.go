package main

import (
	"log"
	"net/http"

	"github.com/cedrotech1/digitalretransfer/internal/config"
	"github.com/cedrotech1/digitalretransfer/internal/devapi"
)

func main() {
	cfg := config.LoadDevAPI()

	db, err := devapi.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	srv := devapi.NewServer(db, cfg.JWTSecret)
	log.Printf("devapi listening on %s (db %s)", cfg.Addr, cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler(cfg.CORSOrigin)); err != nil {
		log.Fatal(err)
	}
}
