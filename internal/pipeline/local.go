package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cryptoscope/internal/upload"
)

// PlaceholderRenderer synthesizes a short clip with the given text overlay.
type PlaceholderRenderer interface {
	Placeholder(ctx context.Context, text, outputPath string) error
}

// Uploader moves a rendered asset onto the hosted media platform.
type Uploader interface {
	RequestUpload(ctx context.Context, name string) (*upload.UploadSlot, error)
	Upload(ctx context.Context, uploadURL, name string, source io.Reader) error
	PlaybackURL(playbackID string) string
}

// LocalPipeline renders a placeholder video locally and uploads it for
// playback. It produces only a video, so it has no partial-success case.
type LocalPipeline struct {
	renderer   PlaceholderRenderer
	uploader   Uploader
	stagingDir string
	logger     zerolog.Logger
}

func NewLocalPipeline(renderer PlaceholderRenderer, uploader Uploader, stagingDir string, logger zerolog.Logger) *LocalPipeline {
	return &LocalPipeline{
		renderer:   renderer,
		uploader:   uploader,
		stagingDir: stagingDir,
		logger:     logger,
	}
}

func (p *LocalPipeline) Run(ctx context.Context, analysisText, projectLabel string) (*Result, error) {
	if strings.TrimSpace(analysisText) == "" || strings.TrimSpace(projectLabel) == "" {
		return nil, ErrInvalidInput
	}

	name := fmt.Sprintf("%s-%s.mp4", sanitizeLabel(projectLabel), uuid.NewString())
	stagingPath := filepath.Join(p.stagingDir, name)
	// The staging file must not outlive the run, whether or not the upload
	// succeeds.
	defer func() {
		if err := os.Remove(stagingPath); err != nil && !os.IsNotExist(err) {
			p.logger.Error().Err(err).Str("path", stagingPath).Msg("failed to remove staging file")
		}
	}()

	if err := p.renderer.Placeholder(ctx, analysisText, stagingPath); err != nil {
		p.logger.Error().Err(err).Str("project", projectLabel).Msg("placeholder render failed")
		return nil, &StageError{Stage: StageRender, Err: err}
	}

	slot, err := p.uploader.RequestUpload(ctx, name)
	if err != nil {
		p.logger.Error().Err(err).Str("project", projectLabel).Msg("upload slot negotiation failed")
		return nil, &StageError{Stage: StageUploadSlot, Err: err}
	}

	file, err := os.Open(stagingPath)
	if err != nil {
		return nil, &StageError{Stage: StageUploadTransfer, Err: err}
	}
	defer file.Close()

	if err := p.uploader.Upload(ctx, slot.URL, name, file); err != nil {
		p.logger.Error().Err(err).Str("project", projectLabel).Msg("upload transfer failed")
		return nil, &StageError{Stage: StageUploadTransfer, Err: err}
	}

	videoURL := p.uploader.PlaybackURL(slot.PlaybackID)
	p.logger.Debug().Str("project", projectLabel).Str("video_url", videoURL).Msg("placeholder video uploaded")

	return &Result{Status: StatusComplete, VideoURL: videoURL}, nil
}

// sanitizeLabel reduces a project label to a safe file name fragment.
func sanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}

var _ Runner = (*LocalPipeline)(nil)
