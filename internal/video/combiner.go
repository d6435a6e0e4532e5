package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/snonux/wordreel/internal/ffmpeg"
	"codeberg.org/snonux/wordreel/internal/manifest"
)

// Combiner concatenates per-word clips into one combined video
type Combiner struct {
	executor *ffmpeg.Executor
}

// NewCombiner creates a new batch combiner
func NewCombiner(executor *ffmpeg.Executor) *Combiner {
	return &Combiner{executor: executor}
}

// Combine concatenates the input clips in the order given. An empty input
// list is rejected.
func (c *Combiner) Combine(ctx context.Context, inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input clips provided")
	}
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}

	listFile, err := writeConcatFile(inputs)
	if err != nil {
		return fmt.Errorf("failed to create concat file: %w", err)
	}
	defer os.Remove(listFile)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-r", fmt.Sprintf("%d", FrameRate),
		outputPath,
	}

	if err := c.executor.Run(ctx, args...); err != nil {
		return fmt.Errorf("clip concatenation failed: %w", err)
	}

	return nil
}

// DiscoverClips finds per-word clips in dir following the "{index}_{word}.mp4"
// naming convention and returns them ordered by index. Legacy fallback for
// directories produced without a manifest.
func DiscoverClips(dir string) ([]manifest.Clip, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip directory: %w", err)
	}

	var clips []manifest.Clip
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp4") {
			continue
		}

		prefix, rest, found := strings.Cut(entry.Name(), "_")
		if !found {
			continue
		}

		index, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		clips = append(clips, manifest.Clip{
			Index: index,
			Word:  strings.TrimSuffix(rest, ".mp4"),
			Path:  filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(clips, func(i, j int) bool {
		return clips[i].Index < clips[j].Index
	})

	return clips, nil
}

// writeConcatFile generates a temporary file list for the ffmpeg concat demuxer
func writeConcatFile(inputs []string) (string, error) {
	tmpFile, err := os.CreateTemp("", "wordreel-concat-*.txt")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	for _, input := range inputs {
		absPath, err := filepath.Abs(input)
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintf(tmpFile, "file '%s'\n", absPath); err != nil {
			return "", err
		}
	}

	return tmpFile.Name(), nil
}
