package main

import (
	"fmt"
	"log"

	"cpusim/api"
	"cpusim/config"
)

func main() {
	cfg := config.GetSchedulerConfig()
	app := api.NewApp(cfg)

	log.Printf("scheduler simulator listening on :%d", cfg.Port)
	log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
