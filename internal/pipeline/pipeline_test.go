package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubImageGen struct {
	url    string
	err    error
	calls  int
	prompt string
}

func (s *stubImageGen) TextToImage(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.url, s.err
}

type stubVideoGen struct {
	url    string
	err    error
	calls  int
	source string
}

func (s *stubVideoGen) ImageToVideo(ctx context.Context, sourceURL string) (string, error) {
	s.calls++
	s.source = sourceURL
	return s.url, s.err
}

func TestGatewayPipelineComplete(t *testing.T) {
	images := &stubImageGen{url: "https://cdn.example.com/img.png"}
	videos := &stubVideoGen{url: "https://cdn.example.com/vid.mp4"}
	p := NewGatewayPipeline(images, videos, zerolog.Nop())

	res, err := p.Run(context.Background(), "Bullish on ABC, recommend Buy", "ABC")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Status != StatusComplete {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.ImageURL != images.url || res.VideoURL != videos.url {
		t.Fatalf("unexpected result: %+v", res)
	}
	if videos.source != images.url {
		t.Fatalf("video stage did not receive image url: %s", videos.source)
	}
	if !strings.Contains(images.prompt, "Bullish on ABC, recommend Buy") {
		t.Fatalf("analysis text not templated into prompt: %s", images.prompt)
	}
}

func TestGatewayPipelinePartialOnVideoFailure(t *testing.T) {
	images := &stubImageGen{url: "https://cdn.example.com/img.png"}
	videos := &stubVideoGen{err: errors.New("http 502")}
	p := NewGatewayPipeline(images, videos, zerolog.Nop())

	res, err := p.Run(context.Background(), "analysis", "ABC")
	if err != nil {
		t.Fatalf("video failure must not surface as error, got: %v", err)
	}
	if res.Status != StatusPartial {
		t.Fatalf("unexpected status: %s", res.Status)
	}
	if res.ImageURL != images.url {
		t.Fatalf("image reference discarded: %+v", res)
	}
	if res.VideoURL != "" {
		t.Fatalf("partial result must not carry a video url: %+v", res)
	}
}

func TestGatewayPipelineImageFailureSkipsVideo(t *testing.T) {
	images := &stubImageGen{err: errors.New("http 500")}
	videos := &stubVideoGen{url: "https://cdn.example.com/vid.mp4"}
	p := NewGatewayPipeline(images, videos, zerolog.Nop())

	_, err := p.Run(context.Background(), "analysis", "ABC")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageImage {
		t.Fatalf("expected image stage error, got: %v", err)
	}
	if videos.calls != 0 {
		t.Fatalf("video generator invoked %d times after image failure", videos.calls)
	}
}

func TestGatewayPipelineValidation(t *testing.T) {
	images := &stubImageGen{url: "x"}
	videos := &stubVideoGen{url: "y"}
	p := NewGatewayPipeline(images, videos, zerolog.Nop())

	cases := []struct{ text, label string }{
		{"", "ABC"},
		{"analysis", ""},
		{"   ", "ABC"},
	}
	for _, tc := range cases {
		if _, err := p.Run(context.Background(), tc.text, tc.label); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q/%q, got: %v", tc.text, tc.label, err)
		}
	}
	if images.calls != 0 || videos.calls != 0 {
		t.Fatalf("generators invoked on invalid input: %d image, %d video", images.calls, videos.calls)
	}
}
