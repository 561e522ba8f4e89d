// Command v2p streams a mono audio file through the pitch-analysis engine
// and prints the MIDI notes it extracts. Progress is shown in a Bubbletea
// TUI unless --quiet is given: a goroutine runs the decode-and-analyze work
// and delivers progress into the program via Program.Send.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/larkwave/v2p/internal/audio"
	appcli "github.com/larkwave/v2p/internal/cli"
	"github.com/larkwave/v2p/internal/config"
	"github.com/larkwave/v2p/internal/filter"
	"github.com/larkwave/v2p/internal/midi"
	"github.com/larkwave/v2p/internal/pitch"
	"github.com/larkwave/v2p/internal/ui"
)

const version = "0.1.0"

var CLI struct {
	Input string `arg:"" name:"input" help:"Input audio file (.wav, .mp3, .flac)" type:"existingfile" optional:""`

	MinFrequency     float64 `help:"Lower bound for voiced candidates, Hz" default:"0"`
	MaxFrequency     float64 `help:"Upper bound for voiced candidates, Hz" default:"0"`
	OctaveCost       float64 `help:"High-frequency bias" default:"0"`
	VoicedUnvoiced   float64 `help:"Voiced/unvoiced transition penalty" default:"0" name:"voiced-unvoiced-cost"`
	OctaveJump       float64 `help:"Voiced-to-voiced transition scale" default:"0" name:"octave-jump-cost"`
	MedianWindow     int     `help:"Median filter window (0 disables)" default:"3"`
	MeanWindow       int     `help:"Mean filter window applied after the median filter (0 disables)" default:"0"`
	MaxFreqEstimator bool    `help:"Also register the high-register max-frequency estimator" default:"true"`
	Quiet            bool    `help:"Disable the progress TUI; print a plain summary instead" short:"q"`
	Version          bool    `help:"Show version information" short:"v"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("v2p"),
		kong.Description("Streaming monophonic pitch tracker"),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Help(appcli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		appcli.PrintVersion(version)
		return
	}

	if CLI.Input == "" {
		appcli.PrintError("an <input> file is required")
		os.Exit(1)
	}

	if err := run(); err != nil {
		appcli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run() error {
	dec, err := audio.Open(CLI.Input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", CLI.Input, err)
	}
	defer dec.Close()

	cfg := pitch.DefaultConfig()
	cfg.SamplingRate = float64(dec.SampleRate())
	if CLI.MinFrequency > 0 {
		cfg.MinimalFrequency = CLI.MinFrequency
	}
	if CLI.MaxFrequency > 0 {
		cfg.MaximalFrequency = CLI.MaxFrequency
	}
	if CLI.OctaveCost > 0 {
		cfg.OctaveCost = CLI.OctaveCost
	}
	if CLI.VoicedUnvoiced > 0 {
		cfg.VoicedUnvoicedCost = CLI.VoicedUnvoiced
	}
	if CLI.OctaveJump > 0 {
		cfg.OctaveJumpCost = CLI.OctaveJump
	}

	if CLI.Quiet {
		appcli.PrintBanner()
		appcli.PrintInfo("Input", CLI.Input)
		appcli.PrintInfo("Sample rate", fmt.Sprintf("%d Hz", dec.SampleRate()))
		appcli.PrintInfo("Window", config.DefaultWindow)
	}

	analyzer := pitch.NewAnalyzer(cfg)

	// Registration order matters: BoersmaVoiced must be the most recently
	// registered generator so it executes first each step and populates
	// the shared FFT that MaxFrequency (registered earlier) reads.
	analyzer.Register(pitch.NewBoersmaUnvoiced(0))
	if CLI.MaxFreqEstimator {
		analyzer.Register(pitch.NewMaxFrequency(0))
	}
	analyzer.Register(pitch.NewBoersmaVoiced(0, 0))

	start := time.Now()

	var steps int
	if CLI.Quiet {
		steps, err = streamQuiet(dec, analyzer)
	} else {
		steps, err = streamWithProgress(dec, analyzer)
	}
	if err != nil {
		return err
	}

	duration := time.Since(start)

	path, err := analyzer.ComputePath()
	if err != nil {
		return fmt.Errorf("computing pitch path: %w", err)
	}

	if CLI.MedianWindow > 0 {
		path = filter.Median(path, CLI.MedianWindow)
	}
	if CLI.MeanWindow > 0 {
		path = filter.Mean(path, CLI.MeanWindow)
	}

	midiNumbers := midi.PitchToMidiNumbers(path)
	notes := midi.MidiNumbersToNotes(midiNumbers, os.Stderr)

	printReport(notes, cfg.FrameTimeStep)

	elapsedAudio := float64(steps) * cfg.FrameTimeStep
	speed := "n/a"
	if duration.Seconds() > 0 {
		speed = appcli.FormatSpeed(elapsedAudio / duration.Seconds())
	}
	appcli.PrintProgressSummary(
		appcli.FormatDuration(duration),
		speed,
		fmt.Sprintf("%d", steps),
		fmt.Sprintf("%d", len(notes)),
	)

	return nil
}

// streamQuiet feeds the decoder's samples to the analyzer without any UI,
// returning the number of steps processed.
func streamQuiet(dec audio.AudioDecoder, analyzer *pitch.Analyzer) (int, error) {
	for {
		chunk, err := dec.ReadChunk(config.ReadChunkSamples)
		if len(chunk) > 0 {
			analyzer.AddSamples(chunk)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return analyzer.PathLen(), fmt.Errorf("reading audio: %w", err)
		}
	}
	return analyzer.PathLen(), nil
}

// streamWithProgress runs the same streaming loop as streamQuiet, but
// inside a goroutine that feeds progress into a running Bubbletea program.
func streamWithProgress(dec audio.AudioDecoder, analyzer *pitch.Analyzer) (int, error) {
	model := ui.New()
	p := tea.NewProgram(model)

	var streamErr error
	totalSamples := dec.NumSamples()
	var samplesRead int64
	start := time.Now()

	go func() {
		chunkNum := 0
		for {
			chunk, err := dec.ReadChunk(config.ReadChunkSamples)
			if len(chunk) > 0 {
				samplesRead += int64(len(chunk))
				analyzer.AddSamples(chunk)

				chunkNum++
				if chunkNum%config.ProgressUpdateEvery == 0 {
					p.Send(progressUpdate(analyzer, samplesRead, totalSamples, start))
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				streamErr = fmt.Errorf("reading audio: %w", err)
				break
			}
		}

		p.Send(ui.AnalysisComplete{
			Steps:    analyzer.PathLen(),
			Duration: time.Since(start),
		})
	}()

	if _, err := p.Run(); err != nil {
		return analyzer.PathLen(), fmt.Errorf("running progress UI: %w", err)
	}

	return analyzer.PathLen(), streamErr
}

func progressUpdate(a *pitch.Analyzer, samplesRead, totalSamples int64, start time.Time) ui.AnalysisProgress {
	var lastPitch float64
	if path, err := a.ComputePath(); err == nil && len(path) > 0 {
		lastPitch = path[len(path)-1]
	}
	return ui.AnalysisProgress{
		SamplesRead:  samplesRead,
		TotalSamples: totalSamples,
		Steps:        a.PathLen(),
		LastPitch:    lastPitch,
		Elapsed:      time.Since(start),
	}
}

func printReport(notes []midi.Note, frameTimeStep float64) {
	appcli.PrintSection("Notes")
	if len(notes) == 0 {
		fmt.Println("  (none)")
		return
	}
	fmt.Printf("  %-8s %-10s %-10s %-10s %s\n", "Note", "Freq", "Position", "Duration", "Velocity")
	for _, n := range notes {
		positionSec := n.Position * frameTimeStep
		durationSec := n.Duration * frameTimeStep
		fmt.Printf("  %-8.*f %-10s %-10s %-10s %d\n",
			config.MidiPrecision, n.NoteNumber,
			fmt.Sprintf("%.*f Hz", config.FrequencyPrecision, midi.MidiNumberToFrequency(n.NoteNumber)),
			fmt.Sprintf("%.2fs", positionSec),
			fmt.Sprintf("%.2fs", durationSec),
			n.Velocity,
		)
	}
}
