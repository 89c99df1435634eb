package narration

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

// Clip is one synthesized narration file with its measured length.
type Clip struct {
	Path    string
	Seconds float64
}

// Track wraps the complete ordered narration list. A track either covers
// every slide or is not used at all; Matches guards the pairing.
type Track struct {
	Clips []Clip
}

// Matches reports whether the track covers exactly slideCount slides.
func (t *Track) Matches(slideCount int) bool {
	return t != nil && len(t.Clips) == slideCount
}

// Durations returns the measured clip lengths in order.
func (t *Track) Durations() []float64 {
	seconds := make([]float64, len(t.Clips))
	for i, c := range t.Clips {
		seconds[i] = c.Seconds
	}
	return seconds
}

// Prober measures encoded audio durations.
type Prober interface {
	ProbeAudioSeconds(path string) (float64, error)
}

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".ogg": true,
}

// LoadDir builds a track from the audio files in dir, in name order. Files
// whose duration cannot be probed fall back to a fixed default length.
func LoadDir(prober Prober, dir string) (*Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read narration directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, errors.Errorf("no narration audio files found in %s", dir)
	}

	track := &Track{Clips: make([]Clip, 0, len(paths))}
	for _, path := range paths {
		seconds, err := prober.ProbeAudioSeconds(path)
		if err != nil {
			log.Printf("Warning: could not probe %s, assuming %.1fs: %v",
				path, ffmpegWrap.DefaultAudioSeconds, err)
			seconds = ffmpegWrap.DefaultAudioSeconds
		}
		track.Clips = append(track.Clips, Clip{Path: path, Seconds: seconds})
	}
	return track, nil
}
