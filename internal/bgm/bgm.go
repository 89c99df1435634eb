package bgm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Daewooki/simple-shorts-generator/internal/config"
	ffmpegWrap "github.com/Daewooki/simple-shorts-generator/internal/ffmpeg"
)

// audioPatterns is the search order for background tracks.
var audioPatterns = []string{"*.mp3", "*.wav", "*.m4a", "*.ogg"}

// FindTrack returns the first background track in dir, or "" when the
// directory is missing or holds no audio.
func FindTrack(dir string) string {
	if _, err := os.Stat(dir); err != nil {
		return ""
	}

	for _, pattern := range audioPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return matches[0]
		}
	}
	return ""
}

// Mixer blends a background track under the composed video's audio.
type Mixer struct {
	runner ffmpegWrap.Runner
	volume float64
}

// NewMixer creates a mixer with the configured background volume.
// Narration always stays at full volume.
func NewMixer(runner ffmpegWrap.Runner, volume float64) *Mixer {
	return &Mixer{
		runner: runner,
		volume: volume,
	}
}

// Mix writes videoPath plus trackPath into outputPath, copying the video
// stream. With narration the two audio streams are mixed and the result
// follows the narration length; without narration the track is padded with
// trailing silence out to the video length rather than looped.
func (m *Mixer) Mix(videoPath, trackPath, outputPath string, hasNarration bool) error {
	video := ffmpeg.Input(videoPath)
	music := ffmpeg.Input(trackPath)

	kwargs := ffmpeg.KwArgs{
		"c:v":      "copy",
		"c:a":      "aac",
		"movflags": "+faststart",
	}

	var mixed *ffmpeg.Stream
	if hasNarration {
		fg := video.Audio().Filter("volume", ffmpeg.Args{"1.0"})
		bg := music.Audio().Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", m.volume)})
		mixed = ffmpeg.Filter([]*ffmpeg.Stream{fg, bg}, "amix",
			ffmpeg.Args{"inputs=2", "duration=first"})
		kwargs["b:a"] = config.NarrationAudioBitrate
	} else {
		mixed = music.Audio().
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", m.volume)}).
			Filter("apad", ffmpeg.Args{})
		kwargs["b:a"] = config.BGMOnlyAudioBitrate
		kwargs["shortest"] = ""
	}

	res := m.runner.Run(ffmpeg.Output(
		[]*ffmpeg.Stream{video.Video(), mixed}, outputPath, kwargs))
	if res.Failed() {
		return errors.Errorf("audio mix failed (exit %d): %s", res.ExitCode, res.Diagnostic())
	}
	return nil
}
