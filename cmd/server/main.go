package main

import (
	"log"
	"net/http"

	"github.com/cedrotech1/digitalretransfer/internal/config"
	"github.com/cedrotech1/digitalretransfer/internal/web"
)

func main() {
	cfg := config.Load()

	r := web.Router(cfg)

	log.Printf("Digital Retransfer dashboard listening on %s (api: %s)", cfg.Addr, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
