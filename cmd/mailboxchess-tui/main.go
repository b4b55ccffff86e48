// mailboxchess-tui plays chess in the terminal with typed moves.
package main

import (
	"flag"
	"log"

	"github.com/hailam/mailboxchess/internal/storage"
	"github.com/hailam/mailboxchess/internal/tui"
)

func main() {
	dataDir := flag.String("data", "", "database directory (default: platform data dir)")
	noStore := flag.Bool("no-store", false, "run without saving preferences, stats or games")
	flag.Parse()

	var store *storage.Storage
	if !*noStore {
		var err error
		if *dataDir != "" {
			store, err = storage.Open(*dataDir)
		} else {
			store, err = storage.NewStorage()
		}
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	if err := tui.Run(store); err != nil {
		log.Fatal(err)
	}
}
