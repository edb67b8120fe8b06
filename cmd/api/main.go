package main

import (
	"context"
	"log"

	"stockroom/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config and pick the storage driver.
// 2) Build app wiring (inventory + audit modules, HTTP server).
// 3) Serve until the process is stopped.
func main() {
	log.Println("stockroom api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("stockroom api stopped with error: %v", err)
	}
}
