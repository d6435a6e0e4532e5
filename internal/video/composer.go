package video

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/snonux/wordreel/internal/ffmpeg"
)

// FrameRate is the fixed frame rate of composed clips
const FrameRate = 24

// Composer pairs a still image with an audio track, holding the image for
// the audio's duration
type Composer struct {
	executor *ffmpeg.Executor
}

// NewComposer creates a new video composer
func NewComposer(executor *ffmpeg.Executor) *Composer {
	return &Composer{executor: executor}
}

// Compose encodes a video that shows imagePath for the exact duration of
// audioPath
func (c *Composer) Compose(ctx context.Context, imagePath, audioPath, outputPath string) error {
	duration, err := c.executor.ProbeDuration(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("failed to probe audio duration: %w", err)
	}

	args := ComposeArgs(imagePath, audioPath, outputPath, duration)
	if err := c.executor.Run(ctx, args...); err != nil {
		return fmt.Errorf("video composition failed: %w", err)
	}

	return nil
}

// ComposeArgs builds the ffmpeg argument list for a still-image clip
func ComposeArgs(imagePath, audioPath, outputPath string, duration time.Duration) []string {
	return []string{
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-t", fmt.Sprintf("%.3f", duration.Seconds()),
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		// Even dimensions are required by yuv420p
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-c:a", "aac",
		"-r", fmt.Sprintf("%d", FrameRate),
		outputPath,
	}
}
