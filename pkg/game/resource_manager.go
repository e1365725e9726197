package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ResourceManager is responsible for loading and caching frame images and
// sound effects. Resources are loaded once and reused by every animator that
// references the same path.
//
// This implementation is NOT thread-safe; load resources from the main
// goroutine only.
type ResourceManager struct {
	imageCache   map[string]*ebiten.Image // path -> Image
	audioCache   map[string]*audio.Player // path -> Player
	audioContext *audio.Context           // may be nil when audio is unavailable
	baseDir      string                   // relative paths are resolved against this directory
}

// NewResourceManager creates a ResourceManager. audioContext may be nil, in
// which case every sound load fails and animators requesting sound are
// reported as misconfigured.
func NewResourceManager(audioContext *audio.Context, baseDir string) *ResourceManager {
	return &ResourceManager{
		imageCache:   make(map[string]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
		baseDir:      baseDir,
	}
}

// HasAudio reports whether an audio output is available.
func (rm *ResourceManager) HasAudio() bool {
	return rm.audioContext != nil
}

func (rm *ResourceManager) resolve(path string) string {
	if rm.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rm.baseDir, path)
}

// LoadImage loads a PNG or JPEG image and caches it.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(rm.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadFrames loads every frame of a frame set in order. Loading stops at the
// first failing frame.
func (rm *ResourceManager) LoadFrames(paths []string) ([]*ebiten.Image, error) {
	frames := make([]*ebiten.Image, 0, len(paths))
	for i, path := range paths {
		img, err := rm.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// GetImage returns a cached image or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadSoundEffect loads a one-shot sound effect and caches its player.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and WAV (.wav).
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available for %s", path)
	}

	file, err := os.Open(rm.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}
	defer file.Close()

	// Read the entire file into memory so the stream can seek after the file is closed
	audioData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}
	reader := bytes.NewReader(audioData)

	var stream io.ReadSeeker
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = decoded
	case ".wav":
		decoded, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}
