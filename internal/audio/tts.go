package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// TTSService generates pronunciation audio for vocabulary words
type TTSService struct {
	audioDir string
	language string
}

// NewTTSService creates a new TTS service that writes MP3 files to audioDir.
// language is the BCP-47 code used for pronunciation, e.g. "hi" for Hindi.
func NewTTSService(audioDir, language string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		language: language,
	}
}

// GenerateAudioFile converts text to speech and saves it as an MP3, keyed by
// the given word id so Devanagari text never ends up in a filename.
// Returns the filename (not full path) on success.
func (s *TTSService) GenerateAudioFile(wordID int64, text string) (string, error) {
	filename := fmt.Sprintf("word_%d.mp3", wordID)
	outputPath := filepath.Join(s.audioDir, filename)

	// Skip when the file already exists
	if _, err := os.Stat(outputPath); err == nil {
		return filename, nil
	}

	if err := s.generateUsingGoogleTTS(text, outputPath); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
// This is a simple, free option that doesn't require API keys
func (s *TTSService) generateUsingGoogleTTS(text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// User agent is required by Google
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// DeleteAudioFile removes an audio file
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(path)
}

// GetAllAudioFiles returns a list of all MP3 files in the audio directory
func (s *TTSService) GetAllAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".mp3") {
			audioFiles = append(audioFiles, file.Name())
		}
	}

	return audioFiles, nil
}
