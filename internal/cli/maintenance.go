package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memoria-chat/memoria/internal/config"
	"github.com/memoria-chat/memoria/internal/llm"
	"github.com/memoria-chat/memoria/internal/memory"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "characters",
		Short: "List available characters",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			registry, err := loadCharacters(cfg)
			if err != nil {
				exitErr("failed to load characters", err)
			}
			for _, c := range registry.All() {
				fmt.Printf("%s %-8s %s\n", c.Emoji, c.Name, c.Description)
			}
		},
	})

	RootCmd.AddCommand(&cobra.Command{
		Use:   "compact [character]",
		Short: "Deduplicate and summarize a character's memory bucket now",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			ctx := context.Background()

			docs, err := openDocs(cfg)
			if err != nil {
				exitErr("failed to open storage", err)
			}
			defer docs.Close()

			gen, err := llm.NewTextGenerator(cfg.LLM)
			if err != nil {
				exitErr("failed to create LLM client", err)
			}

			store := memory.NewStore(ctx, docs, userID())
			result := memory.NewCompactor(store, gen).Compact(ctx, args[0])
			fmt.Printf("removed %d duplicates, summarized %d entries\n",
				result.DuplicatesRemoved, result.EntriesSummarized)
		},
	})

	RootCmd.AddCommand(&cobra.Command{
		Use:   "reset [character]",
		Short: "Delete the conversation transcript with a character",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			ctx := context.Background()

			docs, err := openDocs(cfg)
			if err != nil {
				exitErr("failed to open storage", err)
			}
			defer docs.Close()

			if docs.DeleteConversation(ctx, userID(), args[0]) {
				fmt.Printf("conversation with %s cleared\n", args[0])
			} else {
				fmt.Println("could not clear conversation")
			}
		},
	})

	RootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show total stored messages across all characters",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig()
			ctx := context.Background()

			docs, err := openDocs(cfg)
			if err != nil {
				exitErr("failed to open storage", err)
			}
			defer docs.Close()

			fmt.Printf("%d messages stored\n", docs.ConversationCount(ctx, userID()))
		},
	})
}
