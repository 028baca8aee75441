// Package cli implements the memoria CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/memoria-chat/memoria/internal/character"
	"github.com/memoria-chat/memoria/internal/chat"
	"github.com/memoria-chat/memoria/internal/config"
	"github.com/memoria-chat/memoria/internal/storage"
	"github.com/memoria-chat/memoria/internal/storage/postgres"
	"github.com/memoria-chat/memoria/internal/storage/sqlite"
)

var passphraseFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memoria",
	Short: "Multi-character AI chat with durable memory",
	Long: "memoria is a terminal chat with multiple AI personas that share a durable\n" +
		"profile of you: common facts plus each character's private memories,\n" +
		"harvested automatically from conversation and kept bounded by compaction.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&passphraseFlag, "passphrase", "p", "",
		"Passphrase identifying your profile (default: $MEMORIA_PASSPHRASE)")
}

// userID resolves the opaque user identity from the passphrase flag or env.
func userID() string {
	pass := passphraseFlag
	if pass == "" {
		pass = os.Getenv("MEMORIA_PASSPHRASE")
	}
	if pass == "" {
		exitErr("a passphrase is required", fmt.Errorf("set --passphrase or $MEMORIA_PASSPHRASE"))
	}
	return chat.UserID(pass)
}

// openDocs opens the configured document store.
func openDocs(cfg *config.Config) (storage.DocumentStore, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		return postgres.NewDocumentStore(cfg.Storage.PostgresDSN)
	case "sqlite", "":
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o700); err != nil {
			return nil, err
		}
		return sqlite.NewDocumentStore(filepath.Join(cfg.Storage.DataPath, "memoria.db"))
	default:
		return nil, fmt.Errorf("unsupported storage engine: %q", cfg.Storage.Engine)
	}
}

// loadCharacters loads the persona registry per config.
func loadCharacters(cfg *config.Config) (*character.Registry, error) {
	return character.Load(cfg.Characters.Path)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
