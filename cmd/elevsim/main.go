package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	"github.com/szymonmasternak/elevator-dispatch/internal/config"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevutils"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
	"github.com/szymonmasternak/elevator-dispatch/internal/simulation"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

func main() {
	cmdArgs := elevutils.ProcessCmdArgs()

	cfg, err := loadConfig(cmdArgs)
	if err != nil {
		Logger.Fatal().Err(err).Msg("Loading config")
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		Logger.Fatal().Err(err).Msg("Parsing log level")
	}
	logger.SetLevel(level)

	// Starting Programme
	Logger.Info().Msg("Starting Elevator Simulation")

	sim, err := simulation.New(cfg)
	if err != nil {
		Logger.Fatal().Err(err).Msg("Creating simulation")
	}
	if err := sim.Start(); err != nil {
		Logger.Fatal().Err(err).Msg("Starting simulation")
	}

	metaData := sim.Metadata()
	Logger.Info().Msgf("Simulation: %v", metaData.String())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		Logger.Info().Msgf("Received %v", sig)
	case <-waitForStopKey():
		Logger.Info().Msg("Stop key pressed")
	}

	if err := sim.Stop(); err != nil {
		Logger.Error().Err(err).Msg("Stopping simulation")
	}
	Logger.Info().Msgf("Final stats: %s", sim.Stats().String())
}

func loadConfig(cmdArgs elevutils.CmdArgs) (config.Config, error) {
	cfg := config.Default()
	if cmdArgs.ConfigPath != "" {
		loaded, err := config.Load(cmdArgs.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(cmdArgs.EnvFile); err != nil {
		return cfg, err
	}
	if cmdArgs.LogLevel != "" {
		cfg.LogLevel = cmdArgs.LogLevel
	}
	return cfg, nil
}

// waitForStopKey closes the returned channel on q, Esc or Ctrl-C. Without a
// terminal it never closes and only signals stop the programme.
func waitForStopKey() <-chan struct{} {
	stop := make(chan struct{})
	go func() {
		for {
			char, key, err := keyboard.GetSingleKey()
			if err != nil {
				Logger.Warn().Err(err).Msg("Keyboard unavailable, stop with SIGINT or SIGTERM")
				return
			}
			if char == 'q' || char == 'Q' || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
				close(stop)
				return
			}
		}
	}()
	return stop
}
