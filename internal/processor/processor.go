package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordreel/internal"
	"codeberg.org/snonux/wordreel/internal/audio"
	"codeberg.org/snonux/wordreel/internal/cli"
	"codeberg.org/snonux/wordreel/internal/ffmpeg"
	"codeberg.org/snonux/wordreel/internal/image"
	"codeberg.org/snonux/wordreel/internal/manifest"
	"codeberg.org/snonux/wordreel/internal/slide"
	"codeberg.org/snonux/wordreel/internal/video"
	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// InfoGenerator yields a word's definition and example
type InfoGenerator interface {
	Generate(ctx context.Context, word string) (wordinfo.Result, error)
}

// Narrator synthesizes the three narration segments of a word
type Narrator interface {
	Narrate(ctx context.Context, info *wordinfo.WordInfo, outputDir string) (*audio.Segments, error)
}

// Mixer concatenates narration segments into one audio track
type Mixer interface {
	Mix(ctx context.Context, inputs []string, outputPath string) error
}

// Rasterizer flattens a presentation file to a PNG image
type Rasterizer interface {
	Rasterize(ctx context.Context, pptxPath string) (string, error)
}

// Composer encodes a still-image video clip
type Composer interface {
	Compose(ctx context.Context, imagePath, audioPath, outputPath string) error
}

// Combiner concatenates clips into one video
type Combiner interface {
	Combine(ctx context.Context, inputs []string, outputPath string) error
}

// Deps bundles the pipeline stages the processor drives
type Deps struct {
	InfoGen    InfoGenerator
	ImageGen   image.Generator
	BuildSlide func(outputPath string, info *wordinfo.WordInfo, imageData []byte) error
	Rasterizer Rasterizer
	Narrator   Narrator
	Mixer      Mixer
	Composer   Composer
	Combiner   Combiner
	Manifest   *manifest.Store
}

// Processor drives the per-word pipeline and batch combination
type Processor struct {
	deps        Deps
	logger      zerolog.Logger
	outputDir   string
	scratchDir  string
	batchSize   int
	keepScratch bool
}

// Options configures a processor
type Options struct {
	OutputDir   string
	ScratchDir  string
	BatchSize   int
	KeepScratch bool
}

// New creates a processor from explicit dependencies
func New(deps Deps, opts Options, logger zerolog.Logger) *Processor {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}
	return &Processor{
		deps:        deps,
		logger:      logger.With().Str("component", "processor").Logger(),
		outputDir:   opts.OutputDir,
		scratchDir:  opts.ScratchDir,
		batchSize:   opts.BatchSize,
		keepScratch: opts.KeepScratch,
	}
}

// NewFromFlags wires the real pipeline stages from command-line flags
func NewFromFlags(ctx context.Context, flags *cli.Flags, logger zerolog.Logger) (*Processor, error) {
	openAIKey := cli.GetOpenAIKey()

	infoGen, err := wordinfo.NewGenerator(&wordinfo.Config{
		APIKey:         openAIKey,
		Model:          flags.OpenAIChatModel,
		FailureLogPath: filepath.Join(flags.OutputDir, "failures.log"),
	})
	if err != nil {
		return nil, err
	}

	var imageGen image.Generator
	switch flags.ImageAPI {
	case "openai":
		imageGen = image.NewOpenAIClient(&image.OpenAIConfig{
			APIKey:  openAIKey,
			Model:   flags.OpenAIImageModel,
			Size:    flags.OpenAIImageSize,
			Quality: flags.OpenAIImageQuality,
		})
	case "imagen":
		imagenConfig := &image.ImagenConfig{
			APIKey: cli.GetGeminiKey(),
			Model:  flags.ImagenModel,
		}
		if flags.ExpandPrompt {
			imagenConfig.Expander = image.NewLLMExpander(&image.ExpanderConfig{
				APIKey: openAIKey,
				Model:  flags.OpenAIChatModel,
			})
		}
		imageGen, err = image.NewImagenClient(ctx, imagenConfig)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown image provider: %s", flags.ImageAPI)
	}

	rasterizer, err := slide.NewRasterizer(logger)
	if err != nil {
		return nil, err
	}

	executor, err := ffmpeg.New(logger)
	if err != nil {
		return nil, err
	}

	scratchDir := flags.ScratchDir
	if scratchDir == "" {
		scratchDir = filepath.Join(os.TempDir(), "wordreel-"+internal.GenerateRunID(flags.OutputDir))
	}

	if err := os.MkdirAll(flags.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	store, err := manifest.Open(filepath.Join(flags.OutputDir, "manifest.db"))
	if err != nil {
		return nil, err
	}
	if err := adoptLegacyClips(store, flags.OutputDir); err != nil {
		store.Close()
		return nil, err
	}

	deps := Deps{
		InfoGen:    infoGen,
		ImageGen:   imageGen,
		BuildSlide: slide.Build,
		Rasterizer: rasterizer,
		Narrator: audio.NewNarrator(narratorConfig(flags, openAIKey)),
		Mixer:    audio.NewMixer(executor, time.Duration(flags.GapSeconds*float64(time.Second))),
		Composer: video.NewComposer(executor),
		Combiner: video.NewCombiner(executor),
		Manifest: store,
	}

	opts := Options{
		OutputDir:   flags.OutputDir,
		ScratchDir:  scratchDir,
		BatchSize:   flags.BatchSize,
		KeepScratch: flags.KeepScratch,
	}

	return New(deps, opts, logger), nil
}

// narratorConfig builds the TTS configuration from flags, with the audio
// cache settings read from the config file
func narratorConfig(flags *cli.Flags, openAIKey string) *audio.NarratorConfig {
	config := &audio.NarratorConfig{
		OpenAIKey:      openAIKey,
		Model:          flags.OpenAITTSModel,
		NarratorVoice:  flags.NarratorVoice,
		ExampleVoice:   flags.ExampleVoice,
		ESpeakFallback: flags.ESpeakFallback,
		EnableCache:    viper.GetBool("audio.enable_cache"),
		CacheDir:       viper.GetString("audio.cache_dir"),
	}

	// Default cache directory
	if config.CacheDir == "" {
		config.CacheDir = "./.audio_cache"
	}

	return config
}

// adoptLegacyClips imports clips produced before the manifest existed, found
// by their filename convention, so batch combination still sees them
func adoptLegacyClips(store *manifest.Store, outputDir string) error {
	existing, err := store.Clips()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	discovered, err := video.DiscoverClips(outputDir)
	if err != nil {
		return err
	}

	for _, clip := range discovered {
		if err := store.AddClip(clip); err != nil {
			return fmt.Errorf("failed to adopt legacy clip %s: %w", clip.Path, err)
		}
	}

	return nil
}

// Close releases the processor's resources
func (p *Processor) Close() error {
	if p.deps.Manifest != nil {
		return p.deps.Manifest.Close()
	}
	return nil
}

// Run processes the words sequentially, starting numbering at baseIndex.
// Words whose LLM response cannot be parsed are skipped; any other stage
// failure aborts the run.
func (p *Processor) Run(ctx context.Context, words []string, baseIndex int) error {
	var batch []manifest.Clip
	processedCount := 0
	skippedCount := 0

	for i, word := range words {
		index := baseIndex + i
		p.logger.Info().Int("index", index).Str("word", word).
			Msgf("Processing %d/%d: %s", i+1, len(words), word)

		clip, skipped, err := p.processWord(ctx, index, word)
		if err != nil {
			return fmt.Errorf("processing %q failed: %w", word, err)
		}
		if skipped {
			skippedCount++
			continue
		}

		processedCount++
		batch = append(batch, clip)

		if len(batch) >= p.batchSize {
			if err := p.flushBatch(ctx, batch); err != nil {
				return err
			}
			batch = nil
		}
	}

	// Combine the remaining pending clips so a short run still yields a
	// combined video. With a manifest this also picks up clips a previous
	// interrupted run left uncombined.
	if p.deps.Manifest != nil {
		var err error
		batch, err = p.deps.Manifest.PendingClips()
		if err != nil {
			return err
		}
	}
	for len(batch) > 0 {
		n := p.batchSize
		if n > len(batch) {
			n = len(batch)
		}
		if err := p.flushBatch(ctx, batch[:n]); err != nil {
			return err
		}
		batch = batch[n:]
	}

	fmt.Printf("\n=== Processing Summary ===\n")
	fmt.Printf("Total words: %d\n", len(words))
	fmt.Printf("Processed: %d\n", processedCount)
	if skippedCount > 0 {
		fmt.Printf("Skipped (unparseable definitions): %d\n", skippedCount)
	}
	fmt.Printf("==========================\n")

	return nil
}

// processWord drives one word through all pipeline stages. A wordinfo parse
// failure is reported via skipped=true; every other failure is an error.
func (p *Processor) processWord(ctx context.Context, index int, word string) (manifest.Clip, bool, error) {
	var clip manifest.Clip

	p.logger.Info().Msg("  Generating word information...")
	result, err := p.deps.InfoGen.Generate(ctx, word)
	if err != nil {
		return clip, false, err
	}
	if result.Failed() {
		p.logger.Warn().Str("word", word).Msg("  Definition did not parse, skipping word")
		return clip, true, nil
	}
	info := result.Info

	p.logger.Info().Str("backend", p.deps.ImageGen.Name()).Msg("  Generating image...")
	imageData, err := p.deps.ImageGen.Generate(ctx, info)
	if err != nil {
		return clip, false, fmt.Errorf("image generation failed: %w", err)
	}

	p.logger.Info().Msg("  Building slide...")
	pptxPath := filepath.Join(p.scratchDir, "slide.pptx")
	if err := p.deps.BuildSlide(pptxPath, info, imageData); err != nil {
		return clip, false, fmt.Errorf("slide build failed: %w", err)
	}

	p.logger.Info().Msg("  Rasterizing slide...")
	slidePNG, err := p.deps.Rasterizer.Rasterize(ctx, pptxPath)
	if err != nil {
		return clip, false, err
	}

	p.logger.Info().Msg("  Narrating...")
	segments, err := p.deps.Narrator.Narrate(ctx, info, p.scratchDir)
	if err != nil {
		return clip, false, fmt.Errorf("narration failed: %w", err)
	}

	p.logger.Info().Msg("  Mixing audio...")
	mixedAudio := filepath.Join(p.scratchDir, "combined_audio.mp3")
	if err := p.deps.Mixer.Mix(ctx, segments.Paths(), mixedAudio); err != nil {
		return clip, false, err
	}

	p.logger.Info().Msg("  Composing video...")
	clipPath := filepath.Join(p.outputDir, internal.ClipFileName(index, word))
	if err := p.deps.Composer.Compose(ctx, slidePNG, mixedAudio, clipPath); err != nil {
		return clip, false, err
	}

	clip = manifest.Clip{Index: index, Word: word, Path: clipPath}
	if p.deps.Manifest != nil {
		if err := p.deps.Manifest.AddClip(clip); err != nil {
			return clip, false, err
		}
	}

	if !p.keepScratch {
		for _, path := range []string{pptxPath, slidePNG, mixedAudio} {
			if err := os.Remove(path); err != nil {
				p.logger.Warn().Str("path", path).Err(err).Msg("failed to remove scratch file")
			}
		}
	}

	p.logger.Info().Str("clip", clipPath).Msg("  Clip produced")
	return clip, false, nil
}

// flushBatch combines the accumulated clips into one batch video
func (p *Processor) flushBatch(ctx context.Context, batch []manifest.Clip) error {
	batchNumber := 1
	if p.deps.Manifest != nil {
		var err error
		batchNumber, err = p.deps.Manifest.NextBatchNumber()
		if err != nil {
			return err
		}
	}

	outputPath := filepath.Join(p.outputDir, fmt.Sprintf("batch_%d.mp4", batchNumber))
	p.logger.Info().Int("clips", len(batch)).Str("output", outputPath).Msg("Combining batch")

	paths := make([]string, len(batch))
	indices := make([]int, len(batch))
	for i, clip := range batch {
		paths[i] = clip.Path
		indices[i] = clip.Index
	}

	if err := p.deps.Combiner.Combine(ctx, paths, outputPath); err != nil {
		return fmt.Errorf("batch combination failed: %w", err)
	}

	if p.deps.Manifest != nil {
		if err := p.deps.Manifest.MarkCombined(batchNumber, indices); err != nil {
			return err
		}
	}

	return nil
}
