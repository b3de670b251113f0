// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"mx-alias/console"
	"mx-alias/daw"
	"mx-alias/discovery"
	"mx-alias/display"
	"mx-alias/mixer"
	"mx-alias/model"
	"mx-alias/reaper"
	"mx-alias/shared"
)

type runMode int

const (
	modeScan runMode = iota
	modeDiscover
)

type engine struct {
	config    *model.Config
	output    io.Writer
	lifecycle *reaper.Reaper
	tui       *display.Tui
}

func newEngine(config *model.Config, output io.Writer) *engine {
	return &engine{
		config:    config,
		output:    output,
		lifecycle: reaper.New(),
	}
}

// run executes one pass of the pipeline. Everything opened along the way is
// released through the lifecycle reaper, also when SIGINT or the TUI quit
// keys cut the run short.
func (engine *engine) run(ctx context.Context, mode runMode) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	engine.lifecycle.Callback("cancel", cancel)

	stopSignals := shared.CatchSigint(func() {
		slog.Info("Caught sigint, calling reaper")
		engine.lifecycle.Reap()
	})
	defer stopSignals()

	ui := engine.startUI()

	err := engine.execute(ctx, mode, ui)
	if err != nil && engine.tui != nil && !engine.tui.IsShutdown() {
		slog.Error(err.Error())
		engine.tui.SetStatus(display.StatusFailed)
		engine.tui.WaitForShutdown()
	}

	engine.lifecycle.Reap()
	engine.lifecycle.Wait()

	return err
}

func (engine *engine) startUI() display.UI {
	if engine.config.OutputType != model.OutputTUI {
		return display.New(engine.config.OutputType, engine.output)
	}

	engine.tui = display.NewTui(engine.lifecycle)
	engine.tui.Initialize()
	engine.tui.Start()
	engine.lifecycle.Callback("tui", engine.tui.Shutdown)

	level := slog.Level(engine.config.LogLevel)
	slog.SetDefault(slog.New(shared.NewUiLogHandler(engine.tui, level, func(message string) {
		engine.tui.IncrementErrorCount()
	})))

	// runs before the TUI shuts down, nothing logs into a dead screen
	engine.lifecycle.Callback("logger", func() {
		shared.ConfigureLogger(level, engine.config.LogFormat)
	})

	return engine.tui
}

func (engine *engine) execute(ctx context.Context, mode runMode, ui display.UI) error {
	engine.setStatus(display.StatusSearching)

	found, err := engine.locate(ctx)
	if err != nil {
		return err
	}

	slog.Info("Using " + found.String())
	info := consoleInfo(found)

	if mode == modeDiscover {
		engine.setStatus(display.StatusDone)
		return ui.ShowConsole(info)
	}

	labels, err := engine.scan(ctx, found)
	if err != nil {
		return err
	}

	engine.setStatus(display.StatusApplying)
	if err := engine.apply(labels); err != nil {
		return err
	}

	return ui.ShowResult(model.ScanReport{
		Console: info,
		Slots:   labels,
	})
}

// locate decides which console to talk to: the simulation, a manually
// configured one, or whichever answers discovery first.
func (engine *engine) locate(ctx context.Context) (discovery.Mixer, error) {
	config := engine.config

	if config.SimulationOptions.EnableSimulation {
		return simulatedMixer(config.SimulationOptions), nil
	}

	family := mixer.FamilyMap[config.Family]

	if config.MixerAddress != "" {
		if family != mixer.FamilyUnknown {
			return discovery.Manual(config.MixerAddress, family)
		}

		host := config.MixerAddress
		if splitHost, _, err := net.SplitHostPort(host); err == nil {
			host = splitHost
		}

		return discovery.Probe(ctx, host, engine.discoveryOptions())
	}

	found, err := discovery.Find(ctx, engine.discoveryOptions())
	if err != nil {
		return discovery.Mixer{}, err
	}

	if family != mixer.FamilyUnknown && found.Family != family {
		return discovery.Mixer{}, fmt.Errorf("found %s but %s was configured", found, family)
	}

	return found, nil
}

// scan opens the console, fixes its clock and reads the card routing. The
// connection is closed before the labels are applied anywhere.
func (engine *engine) scan(ctx context.Context, found discovery.Mixer) ([]mixer.Label, error) {
	engine.setStatus(display.StatusConnecting)

	scanner, err := engine.open(ctx, found)
	if err != nil {
		return nil, err
	}

	engine.lifecycle.Callback("console", func() {
		if err := scanner.Terminate(); err != nil {
			slog.Warn("Closing console connection failed: " + err.Error())
		}
	})

	labels, err := engine.readRouting(ctx, scanner)

	if terminateErr := scanner.Terminate(); terminateErr != nil {
		slog.Warn("Closing console connection failed: " + terminateErr.Error())
	}

	return labels, err
}

func (engine *engine) open(ctx context.Context, found discovery.Mixer) (mixer.Scanner, error) {
	if engine.config.SimulationOptions.EnableSimulation {
		scanner, _, err := openSimulation(engine.config.SimulationOptions)
		return scanner, err
	}

	return discovery.Connect(ctx, found, engine.consoleOptions())
}

func (engine *engine) readRouting(ctx context.Context, scanner mixer.Scanner) ([]mixer.Label, error) {
	if engine.config.SkipSampleRate {
		slog.Debug("Leaving the console clock alone")
	} else {
		engine.setStatus(display.StatusClock)
		if err := scanner.EnsureSampleRate(ctx); err != nil {
			return nil, fmt.Errorf("sample rate: %w", err)
		}
	}

	engine.setStatus(display.StatusScanning)

	labels, err := scanner.ScanCardRouting(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan routing: %w", err)
	}

	slog.Info(fmt.Sprintf("Resolved %d routing slots", len(labels)))

	return labels, nil
}

func (engine *engine) apply(labels []mixer.Label) error {
	switch engine.config.Target {
	case model.TargetReaper:
		return daw.SetPortAliases(engine.config.ReaperConfig, labels, engine.config.ReaperBackupFormat)
	case model.TargetJack:
		return engine.applyJack(labels)
	}

	return nil
}

func (engine *engine) setStatus(status display.Status) {
	slog.Debug("Status: " + status.String())

	if engine.tui != nil {
		engine.tui.SetStatus(status)
	}
}

func (engine *engine) discoveryOptions() discovery.Options {
	return discovery.Options{
		Interval: time.Duration(engine.config.DiscoveryIntervalMs) * time.Millisecond,
		Timeout:  time.Duration(engine.config.DiscoveryTimeoutMs) * time.Millisecond,
	}
}

func (engine *engine) consoleOptions() console.Options {
	options := console.DefaultOptions()
	options.Timeout = time.Duration(engine.config.QueryTimeoutMs) * time.Millisecond
	options.Retries = engine.config.QueryRetries

	return options
}

func consoleInfo(found discovery.Mixer) model.ConsoleInfo {
	return model.ConsoleInfo{
		Address: found.Address,
		Name:    found.Name,
		Model:   found.Model,
		Version: found.Version,
		Family:  found.Family.String(),
	}
}
