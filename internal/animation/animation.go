package animation

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Zoom travel range for the Ken-Burns effect.
const (
	ZoomMin = 1.0
	ZoomMax = 1.15
)

// Params drives the per-frame transform of one slide clip. All values are
// derived deterministically from the slide index and timing inputs.
type Params struct {
	ZoomStart    float64
	ZoomEnd      float64
	ZoomIn       bool
	TotalFrames  int
	FadeFrames   int
	FadeOutStart int
}

// Build derives animation parameters for a slide. The zoom direction
// alternates by slide parity: even indexes zoom in, odd indexes zoom out.
// seconds must leave room for both fade windows.
func Build(index, fps int, seconds, transition float64) (Params, error) {
	if fps <= 0 {
		return Params{}, errors.Errorf("fps must be positive, got %d", fps)
	}
	if transition < 0 {
		return Params{}, errors.Errorf("transition duration must not be negative, got %.2f", transition)
	}
	if seconds <= 2*transition {
		return Params{}, errors.Errorf(
			"slide duration %.2fs leaves no room for two %.2fs fade windows", seconds, transition)
	}

	p := Params{
		ZoomIn:       index%2 == 0,
		TotalFrames:  int(math.Round(float64(fps) * seconds)),
		FadeFrames:   int(math.Round(float64(fps) * transition)),
		FadeOutStart: int(math.Round(float64(fps) * (seconds - transition))),
	}
	if p.ZoomIn {
		p.ZoomStart, p.ZoomEnd = ZoomMin, ZoomMax
	} else {
		p.ZoomStart, p.ZoomEnd = ZoomMax, ZoomMin
	}
	return p, nil
}

// ZoomAt returns the zoom factor applied at a 0-indexed frame, clamped to
// the travel range.
func (p Params) ZoomAt(frame int) float64 {
	travel := (ZoomMax - ZoomMin) * float64(frame) / float64(p.TotalFrames)
	if p.ZoomIn {
		return math.Min(ZoomMin+travel, ZoomMax)
	}
	return math.Max(ZoomMax-travel, ZoomMin)
}

func (p Params) zoomExpr() string {
	if p.ZoomIn {
		return fmt.Sprintf("min(1+0.15*on/%d,1.15)", p.TotalFrames)
	}
	return fmt.Sprintf("max(1.15-0.15*on/%d,1.0)", p.TotalFrames)
}

// FilterChain renders the full zoompan+fade video filter for one clip.
// The crop stays centered on the image midpoint at every zoom level.
func (p Params) FilterChain(width, height, fps int) string {
	zoompan := fmt.Sprintf(
		"zoompan=z='%s':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d:fps=%d",
		p.zoomExpr(), p.TotalFrames, width, height, fps)

	return fmt.Sprintf("%s,fade=in:0:%d,fade=out:%d:%d",
		zoompan, p.FadeFrames, p.FadeOutStart, p.FadeFrames)
}

// FallbackChain renders the reduced scale+fade filter used when the
// animated encode fails.
func (p Params) FallbackChain(width, height int) string {
	return fmt.Sprintf("scale=%d:%d,fade=in:0:%d,fade=out:%d:%d",
		width, height, p.FadeFrames, p.FadeOutStart, p.FadeFrames)
}
