package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordreel/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordreel [word]...",
		Short: "Kid-friendly vocabulary video generator",
		Long: `wordreel turns English vocabulary words into short narrated videos.

For each word it asks an LLM for a kid-friendly definition and example,
illustrates the word with a generated image, lays everything out on a
slide, narrates it with text-to-speech and muxes slide and narration
into a video clip. Every few words the clips are combined into one
batch video.

Examples:
  wordreel apple                     # Generate a clip for "apple"
  wordreel --words words.txt         # Process a word list file
  wordreel --words words.txt --offset 20`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordreel.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "./output", "Output directory for final videos")
	cmd.Flags().StringVar(&flags.ScratchDir, "scratch", "", "Scratch directory for intermediate files (default: per-run dir under the system temp dir)")
	cmd.Flags().StringVar(&flags.WordsFile, "words", "", "Process words from file (one per line)")
	cmd.Flags().IntVar(&flags.Offset, "offset", 0, "Skip the first N words of the list")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, "Number of clips combined into one batch video")
	cmd.Flags().BoolVar(&flags.KeepScratch, "keep-scratch", false, "Keep per-word intermediate files instead of deleting them")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the previous output directory before running")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	// Image generation flags
	cmd.Flags().StringVar(&flags.ImageAPI, "image-api", flags.ImageAPI, "Image backend: openai or imagen")
	cmd.Flags().BoolVar(&flags.ExpandPrompt, "expand-prompt", false, "Rewrite the image prompt with the LLM before generation (imagen only)")
	cmd.Flags().StringVar(&flags.ImagenModel, "imagen-model", flags.ImagenModel, "Imagen model for the imagen backend")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIChatModel, "openai-model", flags.OpenAIChatModel, "OpenAI chat model for definitions and prompt expansion")
	cmd.Flags().StringVar(&flags.OpenAITTSModel, "openai-tts-model", flags.OpenAITTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.NarratorVoice, "narrator-voice", flags.NarratorVoice, "Voice for word and definition narration")
	cmd.Flags().StringVar(&flags.ExampleVoice, "example-voice", flags.ExampleVoice, "Voice for example sentence narration")
	cmd.Flags().StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024")
	cmd.Flags().StringVar(&flags.OpenAIImageQuality, "openai-image-quality", flags.OpenAIImageQuality, "Image quality: standard or hd (dall-e-3 only)")

	// Audio flags
	cmd.Flags().Float64Var(&flags.GapSeconds, "gap", flags.GapSeconds, "Silence gap in seconds between narration segments")
	cmd.Flags().BoolVar(&flags.ESpeakFallback, "espeak-fallback", false, "Fall back to espeak-ng when OpenAI TTS fails")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.scratch", cmd.Flags().Lookup("scratch"))
	viper.BindPFlag("pipeline.batch_size", cmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("pipeline.gap_seconds", cmd.Flags().Lookup("gap"))
	viper.BindPFlag("llm.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_tts_model", cmd.Flags().Lookup("openai-tts-model"))
	viper.BindPFlag("audio.narrator_voice", cmd.Flags().Lookup("narrator-voice"))
	viper.BindPFlag("audio.example_voice", cmd.Flags().Lookup("example-voice"))
	viper.BindPFlag("image.provider", cmd.Flags().Lookup("image-api"))
	viper.BindPFlag("image.imagen_model", cmd.Flags().Lookup("imagen-model"))
	viper.BindPFlag("image.openai_model", cmd.Flags().Lookup("openai-image-model"))
	viper.BindPFlag("image.openai_size", cmd.Flags().Lookup("openai-image-size"))
	viper.BindPFlag("image.openai_quality", cmd.Flags().Lookup("openai-image-quality"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordreel" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordreel")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDREEL")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("llm.openai_key")
}

// GetGeminiKey retrieves the Gemini API key for the imagen backend
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("image.gemini_key")
}
