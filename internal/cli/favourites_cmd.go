// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// favourites_cmd.go - "uecast favourites" manages the favourites file.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/uecast/internal/favourites"
)

// HandleFavourites handles the "favourites" command.
func HandleFavourites(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	store := favourites.NewStore(cfg.Favourites.Path)
	if err := store.Load(); err != nil {
		return WrapError(err, "load favourites")
	}

	switch args.Subcommand {
	case "list", "":
		return favouritesList(args, store)

	case "add":
		command := strings.TrimSpace(args.Query)
		if command == "" {
			return ErrMissingArgument("command", `uecast favourites add "stat gpu"`)
		}
		added, err := store.Add(command)
		if err != nil {
			return NewCommandError("favourites", "add", "could not save", err)
		}
		if !added {
			if !args.Quiet {
				fmt.Printf("%q is already a favourite\n", command)
			}
			return nil
		}
		if !args.Quiet {
			fmt.Printf("%s added %q\n", RenderConditional(SuccessStyle, "[OK]"), command)
		}
		return nil

	case "remove", "rm":
		command := strings.TrimSpace(args.Query)
		if command == "" {
			return ErrMissingArgument("command", `uecast favourites remove "stat gpu"`)
		}
		removed, err := store.Remove(command)
		if err != nil {
			return NewCommandError("favourites", "remove", "could not save", err)
		}
		if !removed {
			return NewNotFoundError("favourite", command)
		}
		if !args.Quiet {
			fmt.Printf("%s removed %q\n", RenderConditional(SuccessStyle, "[OK]"), command)
		}
		return nil

	case "move", "mv":
		from, to, err := parseMovePositions(args.Query)
		if err != nil {
			return NewValidationErrorWithExample("positions", args.Query,
				err.Error(), "uecast favourites move 3 1")
		}
		if from < 1 || from > store.Len() || to < 1 || to > store.Len() {
			return NewValidationError("positions", args.Query,
				fmt.Sprintf("positions must be between 1 and %d", store.Len()))
		}
		if err := store.Move(from-1, to-1); err != nil {
			return NewCommandError("favourites", "move", "could not save", err)
		}
		if !args.Quiet {
			fmt.Printf("%s moved %d -> %d\n", RenderConditional(SuccessStyle, "[OK]"), from, to)
		}
		return nil

	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"unknown favourites subcommand", "uecast favourites [list|add|remove|move]")
	}
}

// parseMovePositions parses the "<from> <to>" pair of 1-based list
// positions given to "favourites move".
func parseMovePositions(query string) (int, int, error) {
	fields := strings.Fields(query)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two positions")
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a position", fields[0])
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a position", fields[1])
	}
	return from, to, nil
}

func favouritesList(args Args, store *favourites.Store) error {
	commands := store.Commands()
	if len(commands) == 0 {
		if !args.Quiet {
			fmt.Println("No favourites yet.")
			fmt.Println(RenderConditional(DimStyle, `Add one with: uecast favourites add "stat fps"`))
		}
		return nil
	}
	if !args.Quiet {
		fmt.Println(RenderConditional(TitleStyle, "Favourites"))
	}
	for i, c := range commands {
		fmt.Printf("%2d. %s\n", i+1, c)
	}
	if args.Verbose {
		fmt.Println(RenderConditional(DimStyle, "\nfile: "+store.Path()))
	}
	return nil
}
