package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cryptoscope/internal/pipeline"
)

const partialMessage = "Video generation failed, but image was generated successfully"

type mediaRequest struct {
	SentimentText string `json:"sentimentText"`
	ProjectName   string `json:"projectName"`
}

type mediaResponse struct {
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	Message  string `json:"message,omitempty"`
}

// MediaGenerate runs the media pipeline for an analysis and maps its tagged
// outcome onto 200 (complete), 206 (image only), 400, and 500.
func (a *App) MediaGenerate(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	res, err := a.Pipeline.Run(r.Context(), req.SentimentText, req.ProjectName)
	if err != nil {
		a.writeMediaError(w, r, err)
		return
	}

	switch res.Status {
	case pipeline.StatusPartial:
		a.json(w, http.StatusPartialContent, mediaResponse{
			ImageURL: res.ImageURL,
			Message:  partialMessage,
		})
	default:
		a.json(w, http.StatusOK, mediaResponse{
			ImageURL: res.ImageURL,
			VideoURL: res.VideoURL,
		})
	}
}

func (a *App) writeMediaError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pipeline.ErrInvalidInput) {
		a.error(w, http.StatusBadRequest, "Missing sentiment text or project name")
		return
	}

	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		a.Logger.Error().Err(stageErr.Err).Str("stage", stageErr.Stage).Msg("media pipeline failed")
		switch stageErr.Stage {
		case pipeline.StageImage:
			a.error(w, http.StatusInternalServerError, "Failed to generate image")
		default:
			a.error(w, http.StatusInternalServerError, "Failed to generate video")
		}
		return
	}

	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected media pipeline error")
	a.error(w, http.StatusInternalServerError, "An unknown error occurred")
}
