package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memoria-chat/memoria/internal/character"
	"github.com/memoria-chat/memoria/internal/chat"
	"github.com/memoria-chat/memoria/internal/config"
	"github.com/memoria-chat/memoria/internal/llm"
	"github.com/memoria-chat/memoria/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [character]",
		Short: "Start an interactive chat with a character",
		Long: "Start an interactive chat session. Type messages and press enter;\n" +
			"/profile shows what the character remembers, /reset clears the\n" +
			"conversation, /quit (or Ctrl-D) ends the session.",
		Args: cobra.ExactArgs(1),
		Run:  runChat,
	}
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	cfg := config.LoadConfig()
	ctx := context.Background()

	registry, err := loadCharacters(cfg)
	if err != nil {
		exitErr("failed to load characters", err)
	}
	char, ok := registry.Get(args[0])
	if !ok {
		exitErr("unknown character", fmt.Errorf("%q (try: %s)", args[0], strings.Join(registry.Names(), ", ")))
	}

	var watcher *character.Watcher
	if cfg.Characters.Watch && cfg.Characters.Path != "" {
		watcher = character.NewWatcher(cfg.Characters.Path, registry)
		if err := watcher.Start(); err != nil {
			exitErr("failed to watch characters file", err)
		}
		defer watcher.Stop()
	}

	docs, err := openDocs(cfg)
	if err != nil {
		exitErr("failed to open storage", err)
	}
	defer docs.Close()

	gen, err := llm.NewTextGenerator(cfg.LLM)
	if err != nil {
		exitErr("failed to create LLM client", err)
	}

	uid := userID()
	mem := memory.NewStore(ctx, docs, uid)
	session := chat.NewSession(ctx, docs, gen, mem, char, uid, cfg.Chat)

	fmt.Printf("%s %s — %s\n", char.Emoji, char.Name, char.Description)
	fmt.Printf("(%d earlier messages; /quit to leave)\n\n", len(session.Messages()))

	assembler := memory.NewAssembler(mem)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit":
			return
		case "/reset":
			if session.Reset(ctx) {
				fmt.Println("conversation cleared")
			} else {
				fmt.Println("could not clear conversation")
			}
			continue
		case "/profile":
			if block, ok := assembler.BuildContext(char.Name); ok {
				fmt.Println(block)
			} else {
				fmt.Println("(no profile information yet)")
			}
			continue
		}

		reply, err := session.Send(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("%s> %s\n", strings.ToLower(char.Name), reply)
	}
}
