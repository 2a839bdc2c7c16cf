package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/FrenchMajesty/ticket-triage/cmd"
	"github.com/FrenchMajesty/ticket-triage/internal/render"
)

func main() {
	// A missing .env is fine, keys can come from the environment or saved settings
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.StatusLine("", err))
		os.Exit(1)
	}
}
