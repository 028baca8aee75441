package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/memoria-chat/memoria/internal/memory"
	"github.com/memoria-chat/memoria/pkg/types"
)

func init() {
	rememberCmd := &cobra.Command{
		Use:   "remember [character] [content]",
		Short: "Add a memory entry to a character's bucket",
	}
	rememberKind := rememberCmd.Flags().String("kind", "notes", "Kind: topics, events, notes")
	rememberCmd.Args = cobra.MinimumNArgs(2)
	rememberCmd.Run = withStore(func(ctx context.Context, store *memory.Store, args []string) {
		kind := *rememberKind
		if !types.IsValidMemoryKind(kind) {
			exitErr("invalid kind", fmt.Errorf("%q (must be topics, events, or notes)", kind))
		}
		char, content := args[0], args[1]
		if !store.AddCharacterMemory(ctx, char, types.MemoryKind(kind), content) {
			fmt.Printf("%s already remembers something like that\n", char)
			return
		}
		fmt.Printf("%s will remember that\n", char)
	})

	forgetCmd := &cobra.Command{
		Use:   "forget [character] [index]",
		Short: "Delete a memory entry by index, or everything with --all",
	}
	forgetKind := forgetCmd.Flags().String("kind", "notes", "Kind: topics, events, notes")
	forgetAll := forgetCmd.Flags().Bool("all", false, "Delete the character's entire memory bucket")
	forgetCmd.Args = cobra.MinimumNArgs(1)
	forgetCmd.Run = withStore(func(ctx context.Context, store *memory.Store, args []string) {
		char := args[0]

		if *forgetAll {
			if !store.DeleteAllCharacterMemory(ctx, char) {
				fmt.Printf("%s has no memories\n", char)
				return
			}
			fmt.Printf("%s forgot everything\n", char)
			return
		}

		if len(args) < 2 {
			exitErr("missing index", fmt.Errorf("pass an entry index or --all"))
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			exitErr("invalid index", err)
		}
		kind := *forgetKind
		if !types.IsValidMemoryKind(kind) {
			exitErr("invalid kind", fmt.Errorf("%q (must be topics, events, or notes)", kind))
		}

		if err := store.DeleteCharacterMemory(ctx, char, types.MemoryKind(kind), index); err != nil {
			if errors.Is(err, memory.ErrIndexOutOfRange) {
				fmt.Println(err)
				return
			}
			exitErr("failed to delete memory", err)
		}
		fmt.Printf("deleted %s entry %d for %s\n", kind, index, char)
	})

	RootCmd.AddCommand(rememberCmd, forgetCmd)
}
