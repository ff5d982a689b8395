package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"subburn/internal/command"
	"subburn/internal/logging"
)

// WhisperX invocation constants.
const (
	UVXCommand        = "uvx"
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	BatchSize         = "4"
	ChunkSize         = "15"
	VADOnset          = "0.08"
	VADOffset         = "0.07"
	BeamSize          = "10"
	BestOf            = "10"
	Temperature       = "0.0"
	Patience          = "1.0"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "float32"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

const whisperXInputName = "whisperx_input.wav"

type whisperXLoader struct {
	opts Options
}

// Load only resolves the model id; uvx fetches the weights on first run.
func (l *whisperXLoader) Load(_ context.Context, size string) (Model, error) {
	id, err := ModelForSize(size)
	if err != nil {
		return nil, err
	}
	return &whisperXModel{opts: l.opts, id: id}, nil
}

type whisperXModel struct {
	opts Options
	id   string
}

func (m *whisperXModel) Name() string { return "whisperx " + m.id }

func (m *whisperXModel) Transcribe(ctx context.Context, audioPath, workDir string) ([]Segment, error) {
	input := filepath.Join(workDir, whisperXInputName)
	if err := preprocess(ctx, m.opts.Runner, m.opts.FFmpeg, audioPath, input); err != nil {
		return nil, err
	}

	spec := command.Spec{Name: m.opts.Binary, Args: m.args(input, workDir), Dir: workDir}
	// Torch 2.6 changed torch.load to weights_only=true, which breaks the
	// pyannote checkpoints WhisperX loads.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		spec.Env = []string{"TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1"}
	}
	if _, err := m.opts.Runner.Run(ctx, spec); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	segments, err := loadWhisperXSegments(filepath.Join(workDir, "whisperx_input.json"))
	if err != nil {
		return nil, err
	}
	m.opts.Logger.Info("transcription complete",
		logging.String("model", m.id),
		logging.Int("segments", len(segments)),
	)
	return segments, nil
}

func (m *whisperXModel) args(source, outputDir string) []string {
	args := make([]string, 0, 40)
	if m.opts.CUDA {
		args = append(args, "--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", m.id,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--patience", Patience,
	)

	vadMethod := m.opts.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && m.opts.HFToken != "" {
		args = append(args, "--hf_token", m.opts.HFToken)
	}

	if m.opts.Language != "" {
		args = append(args, "--language", m.opts.Language)
	}

	if m.opts.CUDA {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

func loadWhisperXSegments(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisperx output: %w", err)
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}
