// Package timecode converts between frame counts, seconds, and
// HH:MM:SS:FF timecode strings for drop and non-drop counting.
package timecode

import (
	"fmt"
	"math"
)

// Rate is an exact frame rate used for frames/seconds conversion.
type Rate struct {
	Num int64
	Den int64
}

// RateFromFPS maps a float frame rate back to its exact rational form.
// The NTSC family uses 1001-based denominators; everything else is treated
// as an integer or millesimal rate.
func RateFromFPS(fps float64) Rate {
	switch {
	case math.Abs(fps-23.976) < 0.01:
		return Rate{24000, 1001}
	case math.Abs(fps-29.97) < 0.01:
		return Rate{30000, 1001}
	case math.Abs(fps-59.94) < 0.01:
		return Rate{60000, 1001}
	}
	if fps == math.Trunc(fps) {
		return Rate{int64(fps), 1}
	}
	return Rate{int64(math.Round(fps * 1000)), 1000}
}

// FPS returns the float frame rate.
func (r Rate) FPS() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// FrameDuration renders the duration of one frame as an exact seconds
// fraction, e.g. "1001/24000s" or "1/25s".
func (r Rate) FrameDuration() string {
	if r.Den == 1 {
		return fmt.Sprintf("1/%ds", r.Num)
	}
	return fmt.Sprintf("%d/%ds", r.Den, r.Num)
}

// FramesToSeconds converts a frame count to seconds at the given rate.
func FramesToSeconds(frames int64, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / fps
}

// Format renders frames as HH:MM:SS:FF (or HH:MM:SS;FF for drop-frame).
// Drop-frame counting skips the first two frame numbers of every minute
// that is not a multiple of ten, per the NTSC convention.
func Format(frames int64, fps float64, drop bool) string {
	if fps <= 0 {
		fps = 25
	}
	base := int64(math.Round(fps))
	if base <= 0 {
		base = 25
	}

	if drop && (base == 30 || base == 60) {
		return formatDrop(frames, base)
	}

	ff := frames % base
	totalSeconds := frames / base
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hh, mm, ss, ff)
}

func formatDrop(frames int64, base int64) string {
	dropPerMinute := int64(2)
	if base == 60 {
		dropPerMinute = 4
	}

	framesPerMinute := base*60 - dropPerMinute
	framesPerTenMinutes := framesPerMinute*10 + dropPerMinute

	tenMinuteBlocks := frames / framesPerTenMinutes
	remainder := frames % framesPerTenMinutes

	var droppedFrames int64
	if remainder >= dropPerMinute {
		droppedFrames = dropPerMinute * ((remainder - dropPerMinute) / framesPerMinute)
	}
	adjusted := frames + dropPerMinute*9*tenMinuteBlocks + droppedFrames

	ff := adjusted % base
	totalSeconds := adjusted / base
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d;%02d", hh, mm, ss, ff)
}
