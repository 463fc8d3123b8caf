package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/care-rota-api/pkg/auth"
	"github.com/arnavshah/care-rota-api/pkg/config"
)

func main() {
	config.LoadEnv()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not set")
		os.Exit(1)
	}

	userID := os.Args[1]
	fmt.Printf("Generated Key for %s:\n%s\n", userID, auth.GenerateHMACKey(userID))
}
