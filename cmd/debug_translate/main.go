package main

import (
	"fmt"
	"log"
	"os"

	"nms-extractor/core/config"
	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"

	"go.uber.org/zap"
)

// Resolves localization keys from the command line against the merged
// locale table, showing the raw entry next to the resolved text. Handy
// when a catalog name comes out wrong and the question is whether the
// key, the platform tokens, or the markup stripping is at fault.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_translate KEY [KEY...]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	logg, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	cache := mxml.NewCache()
	table := locale.BuildTable(cache, cfg.Game.TableDir, logg)
	fmt.Printf("Loaded %d localization keys from %s\n\n", len(table), cfg.Game.TableDir)

	resolver := locale.NewResolver(table, cfg.Game.Platform, cfg.Game.RawTokens)

	for _, key := range os.Args[1:] {
		raw, ok := table[key]
		if !ok {
			fmt.Printf("%s\n  not in table\n", key)
			continue
		}
		fmt.Printf("%s\n  raw:      %q\n  resolved: %q\n", key, raw, resolver.Translate(key, ""))
	}
}
