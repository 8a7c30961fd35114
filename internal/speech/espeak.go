package speech

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation.
// espeak-ng has no Haitian Creole voice; phrases arrive already rewritten
// into phonetic spelling and are spoken through the French voice.
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "fr", "fr+m3", "fr+f1")
	Speed     int    // Speech speed in words per minute (default: 140)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
	OutputDir string // Directory for output files
}

// DefaultESpeakConfig returns the default configuration for the French voice
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "fr",
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
		WordGap:   0,
		OutputDir: "./",
	}
}

// ESpeakConfigFromOptions maps synthesis options onto espeak-ng flags
func ESpeakConfigFromOptions(opts Options) *ESpeakConfig {
	config := DefaultESpeakConfig()
	if opts.Language != "" {
		config.Voice = opts.Language
	}
	if opts.Rate > 0 {
		config.Speed = clampSpeed(int(opts.Rate * 150))
	}
	if opts.Pitch > 0 {
		config.Pitch = clampPitch(int(opts.Pitch * 50))
	}
	return config
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
}

// NewESpeak creates a new ESpeak instance with the given configuration
func NewESpeak(config *ESpeakConfig) (*ESpeak, error) {
	// Check if espeak-ng is installed
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultESpeakConfig()
	}

	return &ESpeak{config: config}, nil
}

// GenerateAudio generates an audio file for the given phonetic text
func (e *ESpeak) GenerateAudio(text string, outputFile string) error {
	if err := ValidateSpeakable(text); err != nil {
		return err
	}

	// Ensure output directory exists
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}

	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}

	args = append(args, "-w", outputFile, text)

	cmd := exec.Command("espeak-ng", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// SetVoice updates the voice variant
func (e *ESpeak) SetVoice(voice string) {
	e.config.Voice = voice
}

// SetSpeed updates the speech speed
func (e *ESpeak) SetSpeed(speed int) {
	e.config.Speed = clampSpeed(speed)
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeak) SetPitch(pitch int) {
	e.config.Pitch = clampPitch(pitch)
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeak) SetAmplitude(amplitude int) {
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.config.Amplitude = amplitude
}

// SetWordGap updates the gap between words in 10ms units
func (e *ESpeak) SetWordGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	e.config.WordGap = gap
}

func clampSpeed(speed int) int {
	if speed < 80 {
		return 80
	}
	if speed > 450 {
		return 450
	}
	return speed
}

func clampPitch(pitch int) int {
	if pitch < 0 {
		return 0
	}
	if pitch > 99 {
		return 99
	}
	return pitch
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListESpeakVoices returns the French voice variants suitable for speaking
// phonetically rewritten Creole
func ListESpeakVoices() []string {
	return []string{
		"fr",    // Default French voice
		"fr+m1", // French male voice 1
		"fr+m2", // French male voice 2
		"fr+m3", // French male voice 3
		"fr+f1", // French female voice 1
		"fr+f2", // French female voice 2
		"fr+f3", // French female voice 3
	}
}

// ConvertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func ConvertWAVToMP3(wavFile, mp3File string) error {
	// Check if ffmpeg is installed
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	cmd := exec.Command("ffmpeg", "-i", wavFile, "-acodec", "mp3", "-y", mp3File)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// GenerateMP3 generates an MP3 file for the given phonetic text
func (e *ESpeak) GenerateMP3(text string, outputFile string) error {
	// Generate temporary WAV file
	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"

	if err := e.GenerateAudio(text, tempWAV); err != nil {
		return err
	}

	if err := ConvertWAVToMP3(tempWAV, outputFile); err != nil {
		// Clean up temporary file
		os.Remove(tempWAV)
		return err
	}

	return os.Remove(tempWAV)
}
