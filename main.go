package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/akashtjohn/boundbox/cmd"
	"github.com/akashtjohn/boundbox/internal/utils"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		utils.ExitOnError("Error loading .env file", err)
	}

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
