package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordreel/internal/archive"
	"codeberg.org/snonux/wordreel/internal/cli"
	"codeberg.org/snonux/wordreel/internal/models"
	"codeberg.org/snonux/wordreel/internal/processor"
	"codeberg.org/snonux/wordreel/internal/words"
)

func main() {
	// A missing .env file is fine; API keys may come from the environment
	// or the config file
	_ = godotenv.Load()

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	logger := newLogger(flags.Debug)

	// Handle --archive flag
	if flags.Archive {
		if err := archive.ArchiveOutput(flags.OutputDir); err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		if len(args) == 0 && flags.WordsFile == "" {
			return nil
		}
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	// Collect the word list
	wordList := args
	if flags.WordsFile != "" {
		fileWords, err := words.ReadListFile(flags.WordsFile)
		if err != nil {
			return err
		}
		wordList = append(wordList, fileWords...)
	}
	if len(wordList) == 0 {
		return fmt.Errorf("no words given: pass words as arguments or use --words")
	}

	wordList, err := words.ApplyOffset(wordList, flags.Offset)
	if err != nil {
		return err
	}

	ctx := context.Background()

	proc, err := processor.NewFromFlags(ctx, flags, logger)
	if err != nil {
		return err
	}
	defer proc.Close()

	if err := proc.Run(ctx, wordList, flags.Offset); err != nil {
		return err
	}

	fmt.Printf("\nDone! Videos saved to: %s\n", flags.OutputDir)
	return nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
