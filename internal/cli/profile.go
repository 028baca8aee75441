package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/memoria-chat/memoria/internal/config"
	"github.com/memoria-chat/memoria/internal/memory"
	"github.com/memoria-chat/memoria/pkg/types"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and edit your shared profile",
	}

	profileCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the shared profile and per-character memories",
		Run:   runProfileShow,
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a basic-info entry (e.g. name, occupation)",
		Args:  cobra.ExactArgs(2),
		Run: withStore(func(ctx context.Context, store *memory.Store, args []string) {
			store.SetBasicInfo(ctx, args[0], args[1])
			fmt.Printf("set %s\n", args[0])
		}),
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "unset [key]",
		Short: "Remove a basic-info entry",
		Args:  cobra.ExactArgs(1),
		Run: withStore(func(ctx context.Context, store *memory.Store, args []string) {
			if !store.DeleteBasicInfo(ctx, args[0]) {
				fmt.Printf("%s: not found\n", args[0])
				return
			}
			fmt.Printf("removed %s\n", args[0])
		}),
	})

	profileCmd.AddCommand(preferenceCmd("like", types.PreferenceLikes))
	profileCmd.AddCommand(preferenceCmd("dislike", types.PreferenceDislikes))

	RootCmd.AddCommand(profileCmd)
}

// preferenceCmd builds the like/dislike add-or-remove command pair.
func preferenceCmd(use string, kind types.PreferenceKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [item]",
		Short: "Add to your " + string(kind) + " (use --remove to delete)",
		Args:  cobra.ExactArgs(1),
	}
	remove := cmd.Flags().Bool("remove", false, "Remove instead of add")

	cmd.Run = withStore(func(ctx context.Context, store *memory.Store, args []string) {
		item := args[0]
		if *remove {
			if !store.DeletePreference(ctx, item, kind) {
				fmt.Printf("%s: not found in %s\n", item, kind)
				return
			}
			fmt.Printf("removed %q from %s\n", item, kind)
			return
		}
		if !store.AddPreference(ctx, item, kind) {
			fmt.Printf("%q is already in %s\n", item, kind)
			return
		}
		fmt.Printf("added %q to %s\n", item, kind)
	})
	return cmd
}

// withStore wires a command body to an opened memory store.
func withStore(fn func(ctx context.Context, store *memory.Store, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		ctx := context.Background()

		docs, err := openDocs(cfg)
		if err != nil {
			exitErr("failed to open storage", err)
		}
		defer docs.Close()

		fn(ctx, memory.NewStore(ctx, docs, userID()), args)
	}
}

func runProfileShow(cmd *cobra.Command, args []string) {
	withStore(func(ctx context.Context, store *memory.Store, _ []string) {
		if summary, ok := store.CommonSummary(); ok {
			fmt.Println(summary)
		} else {
			fmt.Println("(no profile information yet)")
		}

		names := make([]string, 0, len(store.Profile().Characters))
		for name := range store.Profile().Characters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if summary, ok := store.CharacterSummary(name); ok {
				fmt.Printf("\n=== %s ===\n%s\n", name, summary)
			}
		}
	})(cmd, args)
}
