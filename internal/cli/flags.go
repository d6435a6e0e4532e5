package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	OutputDir   string
	ScratchDir  string
	WordsFile   string
	Offset      int
	BatchSize   int
	KeepScratch bool
	ListModels  bool
	Archive     bool
	Debug       bool

	// Image generation flags
	ImageAPI     string
	ExpandPrompt bool
	ImagenModel  string

	// OpenAI flags
	OpenAIChatModel    string
	OpenAITTSModel     string
	NarratorVoice      string
	ExampleVoice       string
	OpenAIImageModel   string
	OpenAIImageSize    string
	OpenAIImageQuality string

	// Audio flags
	GapSeconds     float64
	ESpeakFallback bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		BatchSize:          10,
		ImageAPI:           "openai",
		ImagenModel:        "imagen-3.0-generate-002",
		OpenAIChatModel:    "gpt-4o",
		OpenAITTSModel:     "tts-1",
		NarratorVoice:      "shimmer",
		ExampleVoice:       "nova",
		OpenAIImageModel:   "dall-e-3",
		OpenAIImageSize:    "1024x1024",
		OpenAIImageQuality: "standard",
		GapSeconds:         2.0,
	}
}
