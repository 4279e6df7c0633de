package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// version se sobreescribe en build con -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	// .env es opcional; sin archivo se usan las variables del sistema
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
