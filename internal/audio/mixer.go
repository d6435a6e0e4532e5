package audio

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/snonux/wordreel/internal/ffmpeg"
)

// DefaultGap is the silence inserted between narration segments
const DefaultGap = 2 * time.Second

// Mixer concatenates narration segments into one audio track with a fixed
// silence gap between consecutive segments
type Mixer struct {
	executor *ffmpeg.Executor
	gap      time.Duration
}

// NewMixer creates a new audio mixer. A zero gap selects DefaultGap.
func NewMixer(executor *ffmpeg.Executor, gap time.Duration) *Mixer {
	if gap == 0 {
		gap = DefaultGap
	}
	return &Mixer{
		executor: executor,
		gap:      gap,
	}
}

// Mix concatenates the inputs in order, inserting the silence gap between
// consecutive segments, and encodes the result to outputPath. The source
// files are deleted after a successful mix.
func (m *Mixer) Mix(ctx context.Context, inputs []string, outputPath string) error {
	args, err := m.MixArgs(inputs, outputPath)
	if err != nil {
		return err
	}

	if err := m.executor.Run(ctx, args...); err != nil {
		return fmt.Errorf("audio mix failed: %w", err)
	}

	// Sources are consumed; remove them
	for _, input := range inputs {
		if err := os.Remove(input); err != nil {
			return fmt.Errorf("failed to remove consumed segment %s: %w", input, err)
		}
	}

	return nil
}

// MixArgs builds the ffmpeg argument list for mixing the inputs
func (m *Mixer) MixArgs(inputs []string, outputPath string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input segments provided")
	}
	if outputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	var args []string
	for _, input := range inputs {
		args = append(args, "-i", input)
	}

	args = append(args, "-filter_complex", m.filterGraph(len(inputs)), "-map", "[out]")
	args = append(args, "-codec:a", "libmp3lame", "-q:a", "2", outputPath)
	return args, nil
}

// filterGraph builds a concat filter interleaving n inputs with silence
// sources, e.g. [0:a][s0][1:a][s1][2:a]concat=n=5:v=0:a=1[out]
func (m *Mixer) filterGraph(n int) string {
	gapSeconds := m.gap.Seconds()

	var b strings.Builder
	for i := 0; i < n-1; i++ {
		fmt.Fprintf(&b, "aevalsrc=0:d=%g[s%d];", gapSeconds, i)
	}

	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:a]", i)
		if i < n-1 {
			fmt.Fprintf(&b, "[s%d]", i)
		}
	}

	fmt.Fprintf(&b, "concat=n=%d:v=0:a=1[out]", 2*n-1)
	return b.String()
}
