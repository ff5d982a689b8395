package node

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/command"
	"subburn/internal/encoder"
	"subburn/internal/logging"
	"subburn/internal/media"
	"subburn/internal/transcribe"
)

type fakeCodec struct {
	encoded   string
	decoded   string
	decodeOut media.Tensor
	encodeErr error
}

func (c *fakeCodec) EncodeFrames(_ context.Context, _ media.Tensor, _ float64, dest string) error {
	c.encoded = dest
	if c.encodeErr != nil {
		return c.encodeErr
	}
	return os.WriteFile(dest, []byte("video"), 0o644)
}

func (c *fakeCodec) DecodeFrames(_ context.Context, path string) (media.Tensor, error) {
	c.decoded = path
	return c.decodeOut, nil
}

type fakeModel struct {
	segments []transcribe.Segment
	audio    string
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) Transcribe(_ context.Context, audioPath, _ string) ([]transcribe.Segment, error) {
	m.audio = audioPath
	if _, err := os.Stat(audioPath); err != nil {
		return nil, err
	}
	return m.segments, nil
}

type fakeLoader struct {
	model *fakeModel
	loads int
}

func (l *fakeLoader) Load(context.Context, string) (transcribe.Model, error) {
	l.loads++
	return l.model, nil
}

type fakeBurner struct {
	job        encoder.Job
	workDir    string
	captions   string
	skipOutput bool
	err        error
}

func (b *fakeBurner) Burn(_ context.Context, workDir string, job encoder.Job) (command.Log, error) {
	b.job = job
	b.workDir = workDir
	data, _ := os.ReadFile(filepath.Join(workDir, job.Captions))
	b.captions = string(data)
	if b.err != nil {
		log := command.Log{Command: "ffmpeg", ExitCode: 1, Stderr: "Invalid argument"}
		return log, &command.Error{Log: log, Err: b.err}
	}
	if !b.skipOutput {
		if err := os.WriteFile(filepath.Join(workDir, job.Output), []byte("burned"), 0o644); err != nil {
			return command.Log{}, err
		}
	}
	return command.Log{Command: "ffmpeg"}, nil
}

type fixture struct {
	node   *SubtitleBurner
	codec  *fakeCodec
	loader *fakeLoader
	burner *fakeBurner
	root   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		codec:  &fakeCodec{decodeOut: media.Tensor{Shape: []int{1, 1, 1, 3}, Data: []float32{1, 1, 0}}},
		loader: &fakeLoader{model: &fakeModel{segments: []transcribe.Segment{{Start: 0, End: 1, Text: " hi "}}}},
		burner: &fakeBurner{},
		root:   t.TempDir(),
	}
	node, err := New(Deps{
		Codec:    f.codec,
		Models:   transcribe.NewCache(f.loader, logging.NewNop()),
		Burner:   f.burner,
		Logger:   logging.NewNop(),
		TempRoot: f.root,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.node = node
	return f
}

func stereoInputs() Inputs {
	in := DefaultInputs()
	in.Frames = media.Tensor{Shape: []int{2, 2, 2, 3}, Data: make([]float32, 24)}
	in.Audio = media.Audio{Waveform: media.Tensor{Shape: []int{2, 4}, Data: []float32{1, 1, 1, 1, 0, 0, 0, 0}}, SampleRate: 16000}
	return in
}

func assertWorkspaceRemoved(t *testing.T, root string) {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read temp root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace left behind: %v", entries)
	}
}

func TestProcessBurnsAndReturnsDecodedFrames(t *testing.T) {
	f := newFixture(t)
	in := stereoInputs()

	out, err := f.node.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.FPS != in.FPS || out.Audio.SampleRate != 16000 || out.Audio.Waveform.Shape[0] != 2 {
		t.Fatalf("expected original audio and fps passed through, got %#v", out)
	}
	if out.Frames.Shape[0] != 1 || out.Frames.Data[0] != 1 {
		t.Fatalf("expected decoded frames, got %#v", out.Frames)
	}

	if f.burner.captions != "1\n00:00:00,000 --> 00:00:01,000\nhi\n\n" {
		t.Fatalf("unexpected caption file %q", f.burner.captions)
	}
	want := encoder.Job{Video: VideoFile, Audio: AudioFile, Captions: CaptionFile, Style: in.Style.String(), Output: OutputFile}
	if f.burner.job != want {
		t.Fatalf("unexpected job %#v", f.burner.job)
	}
	if filepath.Dir(f.burner.workDir) != f.root || !strings.HasPrefix(filepath.Base(f.burner.workDir), "subburn-") {
		t.Fatalf("unexpected workspace %q", f.burner.workDir)
	}
	if f.codec.decoded != filepath.Join(f.burner.workDir, OutputFile) {
		t.Fatalf("decoded wrong file %q", f.codec.decoded)
	}
	if f.loader.model.audio != filepath.Join(f.burner.workDir, AudioFile) {
		t.Fatalf("transcribed wrong file %q", f.loader.model.audio)
	}
	assertWorkspaceRemoved(t, f.root)
}

func TestProcessReusesModelAcrossInvocations(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		if _, err := f.node.Process(context.Background(), stereoInputs()); err != nil {
			t.Fatalf("Process #%d: %v", i, err)
		}
	}
	if f.loader.loads != 1 {
		t.Fatalf("expected one model load, got %d", f.loader.loads)
	}

	in := stereoInputs()
	in.ModelSize = transcribe.SizeTiny
	if _, err := f.node.Process(context.Background(), in); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if f.loader.loads != 2 {
		t.Fatalf("expected reload on size change, got %d loads", f.loader.loads)
	}
}

func TestProcessMissingOutputFails(t *testing.T) {
	f := newFixture(t)
	f.burner.skipOutput = true

	_, err := f.node.Process(context.Background(), stereoInputs())
	if !errors.Is(err, ErrOutputMissing) {
		t.Fatalf("expected ErrOutputMissing, got %v", err)
	}
	if err.Error() != "subtitle burn failed: burn: output file not generated" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if f.codec.decoded != "" {
		t.Fatal("decode should not run without output")
	}
	assertWorkspaceRemoved(t, f.root)
}

func TestProcessEncoderFailure(t *testing.T) {
	f := newFixture(t)
	f.burner.err = errors.New("exit status 1")

	_, err := f.node.Process(context.Background(), stereoInputs())
	var stage *StageError
	if !errors.As(err, &stage) || stage.Stage != StageBurn {
		t.Fatalf("expected burn stage error, got %v", err)
	}
	if stage.Command == nil || stage.Command.ExitCode != 1 {
		t.Fatalf("expected command log on stage error, got %#v", stage.Command)
	}
	if !strings.Contains(err.Error(), "Invalid argument") {
		t.Fatalf("expected stderr in message, got %q", err.Error())
	}
	assertWorkspaceRemoved(t, f.root)
}

func TestProcessPersistFailureCleansUp(t *testing.T) {
	f := newFixture(t)
	f.codec.encodeErr = errors.New("pipe closed")

	_, err := f.node.Process(context.Background(), stereoInputs())
	if err == nil || !strings.HasPrefix(err.Error(), "subtitle burn failed: persist video: pipe closed") {
		t.Fatalf("unexpected error %v", err)
	}
	if f.loader.loads != 0 {
		t.Fatal("model should not load after a persist failure")
	}
	assertWorkspaceRemoved(t, f.root)
}

func TestProcessExportsCaptions(t *testing.T) {
	f := newFixture(t)
	in := stereoInputs()
	in.CaptionOut = filepath.Join(t.TempDir(), "out", "captions.srt")

	if _, err := f.node.Process(context.Background(), in); err != nil {
		t.Fatalf("Process: %v", err)
	}
	data, err := os.ReadFile(in.CaptionOut)
	if err != nil || !strings.Contains(string(data), "hi") {
		t.Fatalf("expected exported captions, got %q (%v)", data, err)
	}
}

func TestProcessValidatesInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Inputs)
		want   string
	}{
		{"fps low", func(in *Inputs) { in.FPS = 0.05 }, "fps"},
		{"fps high", func(in *Inputs) { in.FPS = 240 }, "fps"},
		{"model size", func(in *Inputs) { in.ModelSize = "huge" }, "model size"},
		{"font size", func(in *Inputs) { in.Style.FontSize = 101 }, "font size"},
		{"frames rank", func(in *Inputs) { in.Frames = media.Tensor{Shape: []int{2, 2, 3}, Data: make([]float32, 12)} }, "frames"},
		{"no frames", func(in *Inputs) { in.Frames = media.Tensor{Shape: []int{0, 2, 2, 3}} }, "frames"},
		{"sample rate", func(in *Inputs) { in.Audio.SampleRate = 0 }, "sample rate"},
		{"audio rank", func(in *Inputs) { in.Audio.Waveform = media.Tensor{Shape: []int{4}, Data: make([]float32, 4)} }, "audio waveform"},
		{"no samples", func(in *Inputs) { in.Audio.Waveform = media.Tensor{Shape: []int{1, 0}} }, "no samples"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := stereoInputs()
			tc.mutate(&in)
			_, err := f.node.Process(context.Background(), in)
			var stage *StageError
			if !errors.As(err, &stage) || stage.Stage != StageValidate {
				t.Fatalf("expected validate stage error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
			assertWorkspaceRemoved(t, f.root)
		})
	}
}

func TestProcessDownmixes3DAudio(t *testing.T) {
	f := newFixture(t)
	in := stereoInputs()
	in.Audio.Waveform = media.Tensor{Shape: []int{1, 2, 2}, Data: []float32{1, 1, 0, 0}}

	out, err := f.node.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Audio.Waveform.Dim() != 3 || out.Audio.Waveform.Data[0] != 1 {
		t.Fatalf("expected original 3D audio returned, got %#v", out.Audio.Waveform)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}
