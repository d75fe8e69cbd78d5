package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports missing required input. It is raised before any
// network call is made.
var ErrInvalidInput = errors.New("missing sentiment text or project name")

// Pipeline stages a run can fail in.
const (
	StageImage          = "image"
	StageVideo          = "video"
	StageRender         = "render"
	StageUploadSlot     = "upload-slot"
	StageUploadTransfer = "upload-transfer"
)

// StageError identifies which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
