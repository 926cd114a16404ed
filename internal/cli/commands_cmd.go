// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands_cmd.go - "uecast commands" searches the console command catalog.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/uecast/internal/catalog"
	"github.com/jeranaias/uecast/internal/favourites"
	"github.com/jeranaias/uecast/internal/index"
	"github.com/jeranaias/uecast/internal/util"
)

// HandleCommands handles the "commands" command.
func HandleCommands(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	result, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	// Favourites are optional here: a broken favourites file degrades
	// to a plain catalog search.
	var favs []string
	store := favourites.NewStore(cfg.Favourites.Path)
	if err := store.Load(); err != nil {
		if !args.Quiet {
			fmt.Fprintf(os.Stderr, "%s favourites unavailable: %v\n",
				RenderConditional(WarningStyle, "[WARN]"), err)
		}
	} else {
		favs = store.Commands()
	}

	policy := index.Policy{
		FavouritesFirst: cfg.Search.FavouritesFirst,
		MaxResults:      cfg.Search.MaxResults,
	}
	if args.Options["favourites"] == "true" {
		policy.FavouritesFirst = true
	}
	if limit := optionInt(args, "limit", 0); limit > 0 {
		policy.MaxResults = limit
	}

	ix := index.New(policy)
	ix.Rebuild(result.Commands, favs)
	entries := ix.Search(args.Query)

	if args.Verbose && (result.Skipped > 0 || result.Duplicates > 0) {
		fmt.Fprintf(os.Stderr, "%s catalog: %d malformed, %d duplicate entries ignored\n",
			RenderConditional(DimStyle, "[i]"), result.Skipped, result.Duplicates)
	}

	if len(entries) == 0 {
		if !args.Quiet {
			fmt.Printf("No commands match %q.\n", args.Query)
		}
		return nil
	}

	for _, e := range entries {
		name := e.Name
		if e.Favourite {
			name = RenderConditional(HighlightStyle, name) + " " + RenderConditional(WarningStyle, "*")
		} else {
			name = RenderConditional(ValueStyle, name)
		}
		line := name
		if e.Help != "" {
			line += "  " + RenderConditional(DimStyle, util.TruncateRunes(e.Help, 100))
		}
		fmt.Println(line)
	}

	if !args.Quiet {
		fmt.Printf("\n%d of %d entries\n", len(entries), ix.Len())
	}
	return nil
}
