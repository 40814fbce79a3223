package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	rooms, err := di.InitializeRoomService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize room service")
	}

	duplicates, err := rooms.DuplicateNumbers(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up duplicate room numbers")
	}

	if len(duplicates) == 0 {
		fmt.Fprintln(os.Stdout, "no duplicate room numbers")

		return
	}

	for _, duplicate := range duplicates {
		fmt.Fprintf(os.Stdout, "%s\t%d\t%s\n", duplicate.Number, duplicate.Count, strings.Join(duplicate.IDs, ","))
	}

	os.Exit(1)
}
