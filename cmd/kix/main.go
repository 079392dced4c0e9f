package main

import (
	"log"

	"github.com/kixhq/kix/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ kix failed to start: %v", err)
	}
}
