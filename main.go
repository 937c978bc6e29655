package main

import (
	"log"

	"whackamole/config"
	"whackamole/network"
)

func main() {
	cfg := config.Load()
	srv := network.NewServer(cfg.Addr, cfg.Game)
	log.Fatal(srv.ListenAndServe())
}
