// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:     "jokebox",
		Usage:    "Share, browse and like jokes",
		Flags:    config.Flags(),
		Action:   server.Run,
		Commands: []*cli.Command{migrateCommand()},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
