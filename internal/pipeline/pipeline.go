package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Status tags a successful pipeline outcome.
type Status string

const (
	// StatusComplete means every stage produced its artifact.
	StatusComplete Status = "complete"
	// StatusPartial means video generation failed after the image was already
	// produced; the image is returned instead of being discarded.
	StatusPartial Status = "partial"
)

// Result is the outcome of one pipeline run. A Result never carries a video
// reference without a valid image reference on the gateway backend.
type Result struct {
	Status   Status
	ImageURL string
	VideoURL string
}

// Runner turns analysis text into shareable media references. Failures before
// any artifact exists are returned as errors (ErrInvalidInput or *StageError);
// a failure after the image stage succeeded yields a partial Result instead.
type Runner interface {
	Run(ctx context.Context, analysisText, projectLabel string) (*Result, error)
}

// ImageGenerator produces an image URL for a prompt.
type ImageGenerator interface {
	TextToImage(ctx context.Context, prompt string) (string, error)
}

// VideoGenerator animates a source image into a video URL.
type VideoGenerator interface {
	ImageToVideo(ctx context.Context, sourceURL string) (string, error)
}

// GatewayPipeline sequences text-to-image and image-to-video generation
// against the hosted gateway.
type GatewayPipeline struct {
	images ImageGenerator
	videos VideoGenerator
	logger zerolog.Logger
}

func NewGatewayPipeline(images ImageGenerator, videos VideoGenerator, logger zerolog.Logger) *GatewayPipeline {
	return &GatewayPipeline{images: images, videos: videos, logger: logger}
}

func (p *GatewayPipeline) Run(ctx context.Context, analysisText, projectLabel string) (*Result, error) {
	if strings.TrimSpace(analysisText) == "" || strings.TrimSpace(projectLabel) == "" {
		return nil, ErrInvalidInput
	}

	imageURL, err := p.images.TextToImage(ctx, imagePrompt(analysisText))
	if err != nil {
		p.logger.Error().Err(err).Str("project", projectLabel).Msg("image generation failed")
		return nil, &StageError{Stage: StageImage, Err: err}
	}
	p.logger.Debug().Str("project", projectLabel).Str("image_url", imageURL).Msg("image generated")

	videoURL, err := p.videos.ImageToVideo(ctx, imageURL)
	if err != nil {
		// The image stage already succeeded; return it rather than discarding
		// earned progress.
		p.logger.Warn().Err(err).Str("project", projectLabel).Msg("video generation failed, returning image only")
		return &Result{Status: StatusPartial, ImageURL: imageURL}, nil
	}
	p.logger.Debug().Str("project", projectLabel).Str("video_url", videoURL).Msg("video generated")

	return &Result{Status: StatusComplete, ImageURL: imageURL, VideoURL: videoURL}, nil
}

var _ Runner = (*GatewayPipeline)(nil)
