package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	OutputDir      string
	AudioFormat    string
	ServiceURL     string
	BatchFile      string
	RulesFile      string
	FavoritesDB    string
	Speak          bool
	SaveFavorite   bool
	ShowFavorites  bool
	RemoveFavorite string
	ExportCSV      string
	ListVoices     bool
	Phonetic       bool

	// Speech provider flags
	Provider string

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// eSpeak flags
	ESpeakVoice string
	ESpeakSpeed int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AudioFormat: "mp3",
		ServiceURL:  "http://localhost:8000",
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAISpeed: 0.9,
		ESpeakVoice: "fr",
		ESpeakSpeed: 140,
	}
}
