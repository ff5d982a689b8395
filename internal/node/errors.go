package node

import (
	"errors"
	"fmt"

	"subburn/internal/command"
)

// ErrOutputMissing reports that ffmpeg exited cleanly without writing the
// burned video.
var ErrOutputMissing = errors.New("output file not generated")

// Pipeline stages, in execution order.
const (
	StageValidate       = "validate"
	StageWorkspace      = "workspace"
	StagePersistAudio   = "persist audio"
	StagePersistVideo   = "persist video"
	StageLoadModel      = "load model"
	StageTranscribe     = "transcribe"
	StageWriteCaptions  = "write captions"
	StageExportCaptions = "export captions"
	StageBurn           = "burn"
	StageDecode         = "decode"
)

// StageError records which pipeline stage failed. Command is set when the
// failure came from an external process.
type StageError struct {
	Stage   string
	Command *command.Log
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	se := &StageError{Stage: stage, Err: err}
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		log := cmdErr.Log
		se.Command = &log
	}
	return se
}
