package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"subburn/internal/command"
	"subburn/internal/language"
	"subburn/internal/logging"
)

// WhisperCppCommand is the whisper.cpp CLI executable name.
const WhisperCppCommand = "whisper-cli"

const (
	whisperInputName  = "whisper_input.wav"
	whisperOutputBase = "whisper_output"
)

type whisperCppLoader struct {
	opts    Options
	fetcher *Fetcher
}

func (l *whisperCppLoader) Load(ctx context.Context, size string) (Model, error) {
	weights, err := LookupWeights(size)
	if err != nil {
		return nil, err
	}
	path, err := l.fetcher.Ensure(ctx, weights)
	if err != nil {
		return nil, err
	}
	return &whisperCppModel{opts: l.opts, id: weights.ID, weightsPath: path}, nil
}

type whisperCppModel struct {
	opts        Options
	id          string
	weightsPath string
}

func (m *whisperCppModel) Name() string { return "whisper.cpp " + m.id }

func (m *whisperCppModel) Transcribe(ctx context.Context, audioPath, workDir string) ([]Segment, error) {
	input := filepath.Join(workDir, whisperInputName)
	if err := preprocess(ctx, m.opts.Runner, m.opts.FFmpeg, audioPath, input); err != nil {
		return nil, err
	}

	outBase := filepath.Join(workDir, whisperOutputBase)
	args := m.args(input, outBase)
	log, err := m.opts.Runner.Run(ctx, command.Spec{Name: m.opts.Binary, Args: args, Dir: workDir})
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp: %w", err)
	}
	m.opts.Logger.Debug("whisper.cpp finished", logging.String("command", log.String()))

	segments, err := loadWhisperCppSegments(outBase + ".json")
	if err != nil {
		return nil, err
	}
	m.opts.Logger.Info("transcription complete",
		logging.String("model", m.id),
		logging.Int("segments", len(segments)),
		logging.String("language", language.DisplayName(m.opts.Language)),
	)
	return segments, nil
}

func (m *whisperCppModel) args(input, outBase string) []string {
	lang := m.opts.Language
	if lang == "" {
		lang = language.Auto
	}
	args := []string{
		"-m", m.weightsPath,
		"-f", input,
		"-of", outBase,
		"-oj",
		"-l", lang,
	}
	if m.opts.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(m.opts.Threads))
	}
	if !m.opts.CUDA {
		args = append(args, "-ng")
	}
	return args
}

type whisperCppPayload struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// loadWhisperCppSegments reads the -oj output. Offsets are milliseconds.
func loadWhisperCppSegments(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper.cpp output: %w", err)
	}
	return parseWhisperCppJSON(data)
}

func parseWhisperCppJSON(data []byte) ([]Segment, error) {
	var payload whisperCppPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper.cpp json: %w", err)
	}
	segments := make([]Segment, 0, len(payload.Transcription))
	for _, entry := range payload.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Start: float64(entry.Offsets.From) / 1000,
			End:   float64(entry.Offsets.To) / 1000,
			Text:  text,
		})
	}
	return segments, nil
}
