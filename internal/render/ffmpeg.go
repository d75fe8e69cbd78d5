package render

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

const (
	clipDuration   = 5
	clipResolution = "1280x720"
	clipBackground = "0x1e3a8a"
)

// Renderer synthesizes placeholder videos with FFmpeg.
type Renderer struct {
	cmdRunner CommandRunner
	fontFile  string
}

// NewRenderer creates a renderer. fontFile may be empty to use the FFmpeg
// default font resolution.
func NewRenderer(cmdRunner CommandRunner, fontFile string) *Renderer {
	if cmdRunner == nil {
		cmdRunner = ExecRunner{}
	}
	return &Renderer{cmdRunner: cmdRunner, fontFile: fontFile}
}

// Placeholder writes a 5 second solid-color clip with the given text centered
// over it to outputPath.
func (r *Renderer) Placeholder(ctx context.Context, text, outputPath string) error {
	drawtext := []string{
		fmt.Sprintf("text='%s'", escapeDrawtext(text)),
		"fontcolor=white",
		"fontsize=36",
		"x=(w-text_w)/2",
		"y=(h-text_h)/2",
	}
	if r.fontFile != "" {
		drawtext = append(drawtext, "fontfile="+r.fontFile)
	}

	output, err := r.cmdRunner.Run(ctx, "ffmpeg",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%s:d=%d", clipBackground, clipResolution, clipDuration),
		"-vf", "drawtext="+strings.Join(drawtext, ":"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y", outputPath)

	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// escapeDrawtext escapes characters that are special to the drawtext filter.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return replacer.Replace(text)
}
