package orchestrator

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/sampler"
)

// mockSampleStage is a mock for the sampling stage.
type mockSampleStage struct {
	result pipeline.SampleResult
	err    error
	inputs []pipeline.SampleInput
}

func (m *mockSampleStage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	m.inputs = append(m.inputs, input)
	return m.result, m.err
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.InputPath = "input.mp4"
	return cfg
}

func TestOrchestrator_Run(t *testing.T) {
	source := mocks.NewFrameSource(95)
	opener := &mocks.SourceOpener{
		Source: source,
		Info:   ports.SourceInfo{Backend: "ffmpeg", Codec: "h264", Width: 4, Height: 4},
	}
	sink := mocks.NewFrameSink()
	reporter := &mocks.ProgressReporter{}
	logger := mocks.NewLogger()

	orch := New(opener, sampler.NewStage(sink, reporter, logger), mocks.NewFileSystem(), logger)

	result, err := orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(opener.OpenedPaths) != 1 || opener.OpenedPaths[0] != "input.mp4" {
		t.Errorf("expected input.mp4 to be opened once, got %v", opener.OpenedPaths)
	}
	if source.Closed != 1 {
		t.Errorf("expected source to be closed once, got %d", source.Closed)
	}
	if result.FramesRead != 95 {
		t.Errorf("expected 95 frames read, got %d", result.FramesRead)
	}
	if result.FramesStored != 3 {
		t.Errorf("expected 3 frames stored, got %d", result.FramesStored)
	}
	if result.Source.Backend != "ffmpeg" {
		t.Errorf("expected source info to be kept, got %+v", result.Source)
	}
	if len(reporter.FinishedCalls) != 1 || reporter.FinishedCalls[0] != 3 {
		t.Errorf("expected Finished(3), got %v", reporter.FinishedCalls)
	}
}

func TestOrchestrator_Run_InvalidConfig(t *testing.T) {
	opener := &mocks.SourceOpener{Source: mocks.NewFrameSource(10)}
	stage := &mockSampleStage{}
	orch := New(opener, stage, mocks.NewFileSystem(), mocks.NewLogger())

	cfg := testConfig()
	cfg.Interval = 0

	_, err := orch.Run(context.Background(), cfg)
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if len(opener.OpenedPaths) != 0 {
		t.Error("expected source not to be opened")
	}
	if len(stage.inputs) != 0 {
		t.Error("expected stage not to run")
	}
}

func TestOrchestrator_Run_OpenError(t *testing.T) {
	openErr := errors.New("no such file")
	opener := &mocks.SourceOpener{
		OpenFunc: func(ctx context.Context, path string) (ports.FrameSource, ports.SourceInfo, error) {
			return nil, ports.SourceInfo{}, openErr
		},
	}
	stage := &mockSampleStage{}
	logger := mocks.NewLogger()
	orch := New(opener, stage, mocks.NewFileSystem(), logger)

	_, err := orch.Run(context.Background(), testConfig())
	if !errors.Is(err, ErrSourceOpen) {
		t.Errorf("expected ErrSourceOpen, got %v", err)
	}
	if !errors.Is(err, openErr) {
		t.Errorf("expected cause to be kept, got %v", err)
	}
	if len(stage.inputs) != 0 {
		t.Error("expected stage not to run")
	}
	if len(logger.AtLevel(ports.LevelError)) != 1 {
		t.Errorf("expected one error log, got %+v", logger.Entries())
	}
}

func TestOrchestrator_Run_WriteFailureClosesSource(t *testing.T) {
	source := mocks.NewFrameSource(100)
	opener := &mocks.SourceOpener{Source: source}
	sink := mocks.NewFrameSink()
	sinkErr := errors.New("permission denied")
	sink.SaveFrameFunc = func(index int, img image.Image) error {
		if index == 2 {
			return sinkErr
		}
		return nil
	}
	reporter := &mocks.ProgressReporter{}
	logger := mocks.NewLogger()

	orch := New(opener, sampler.NewStage(sink, reporter, logger), mocks.NewFileSystem(), logger)

	cfg := testConfig()
	cfg.Interval = 10
	result, err := orch.Run(context.Background(), cfg)
	if !errors.Is(err, sampler.ErrWriteFrame) {
		t.Fatalf("expected ErrWriteFrame, got %v", err)
	}
	if !errors.Is(err, sinkErr) {
		t.Errorf("expected sink error in chain, got %v", err)
	}
	if source.Closed != 1 {
		t.Errorf("expected source to be closed once, got %d", source.Closed)
	}
	if result.FramesRead != 20 {
		t.Errorf("expected 20 frames read, got %d", result.FramesRead)
	}
	if len(reporter.FinishedCalls) != 0 {
		t.Errorf("expected no final report, got %v", reporter.FinishedCalls)
	}
}

func TestOrchestrator_Run_CancelledClosesSource(t *testing.T) {
	source := mocks.NewFrameSource(100)
	opener := &mocks.SourceOpener{Source: source}
	logger := mocks.NewLogger()
	orch := New(opener, sampler.NewStage(mocks.NewFrameSink(), &mocks.ProgressReporter{}, logger), mocks.NewFileSystem(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Run(ctx, testConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if source.Closed != 1 {
		t.Errorf("expected source to be closed once, got %d", source.Closed)
	}
	if len(logger.AtLevel(ports.LevelWarn)) == 0 {
		t.Error("expected an interruption warning")
	}
	if len(logger.AtLevel(ports.LevelError)) != 0 {
		t.Errorf("expected no error logs, got %+v", logger.AtLevel(ports.LevelError))
	}
}

func TestOrchestrator_Run_ReadErrorIsNotFatal(t *testing.T) {
	readErr := errors.New("corrupt packet")
	stage := &mockSampleStage{
		result: pipeline.SampleResult{FramesRead: 45, FramesStored: 3, Saved: 3, ReadErr: readErr},
	}
	orch := New(&mocks.SourceOpener{Source: mocks.NewFrameSource(0)}, stage, mocks.NewFileSystem(), mocks.NewLogger())

	result, err := orch.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !errors.Is(result.ReadErr, readErr) {
		t.Errorf("expected read error in result, got %v", result.ReadErr)
	}
}

func TestOrchestrator_Run_PassesInterval(t *testing.T) {
	source := mocks.NewFrameSource(0)
	stage := &mockSampleStage{}
	orch := New(&mocks.SourceOpener{Source: source}, stage, mocks.NewFileSystem(), mocks.NewLogger())

	cfg := testConfig()
	cfg.Interval = 7
	if _, err := orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(stage.inputs) != 1 {
		t.Fatalf("expected one stage call, got %d", len(stage.inputs))
	}
	if stage.inputs[0].Interval != 7 {
		t.Errorf("expected interval 7, got %d", stage.inputs[0].Interval)
	}
	if stage.inputs[0].Source != source {
		t.Error("expected opened source to be passed to the stage")
	}
}

func TestOrchestrator_Run_WritesSummary(t *testing.T) {
	fs := mocks.NewFileSystem()
	stage := &mockSampleStage{
		result: pipeline.SampleResult{FramesRead: 300, FramesStored: 10, Saved: 10},
	}
	opener := &mocks.SourceOpener{
		Source: mocks.NewFrameSource(0),
		Info:   ports.SourceInfo{Backend: "mpeg", Codec: "mpeg1video", Width: 352, Height: 240},
	}
	orch := New(opener, stage, fs, mocks.NewLogger())
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	orch.now = func() time.Time { return clock }

	cfg := testConfig()
	cfg.SummaryPath = "summary.md"
	if _, err := orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, ok := fs.GetFile("summary.md")
	if !ok {
		t.Fatal("expected summary to be written")
	}
	content := string(data)
	for _, want := range []string{"`input.mp4`", "| Backend | mpeg |", "352x240", "| Frames Stored | 10 |", "every 30 frames", "2025-06-01 09:00:00 UTC"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected summary to contain %q", want)
		}
	}
}

func TestOrchestrator_Run_SummaryWriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("read-only") }
	source := mocks.NewFrameSource(0)
	orch := New(&mocks.SourceOpener{Source: source}, &mockSampleStage{}, fs, mocks.NewLogger())

	cfg := testConfig()
	cfg.SummaryPath = "summary.md"
	if _, err := orch.Run(context.Background(), cfg); err == nil {
		t.Fatal("expected summary write error")
	}
	if source.Closed != 1 {
		t.Errorf("expected source to be closed once, got %d", source.Closed)
	}
}
