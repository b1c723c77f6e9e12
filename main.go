package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"fourinarow/config"
	"fourinarow/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults to fourinarow/config.yaml in the XDG config directories")
	mode := flag.String("mode", "", "Experiment to run: symmetry or throughput")
	games := flag.Int("games", 0, "Games per side in symmetry mode, per goroutine count in throughput mode")
	a := flag.String("a", "", "Strategy of agent A")
	b := flag.String("b", "", "Strategy of agent B")
	workers := flag.Int("workers", 0, "Games played concurrently")
	out := flag.String("out", "", "Directory for experiment records")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	saveConfig := flag.Bool("save-config", false, "Store the effective config in the XDG config directory and exit")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "games":
			cfg.Games = *games
		case "a":
			cfg.A.Strategy = *a
		case "b":
			cfg.B.Strategy = *b
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.OutDir = *out
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid command line")
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	if *saveConfig {
		path, err := cfg.Save()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
		log.Info().Msgf("saved config to %s", path)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Mode {
	case "symmetry":
		runSymmetry(ctx, cfg)
	case "throughput":
		runThroughput(ctx, cfg)
	}
}

func runSymmetry(ctx context.Context, cfg *config.Config) {
	a, b := cfg.AgentConfigs()
	e := experiments.Symmetry(a, b, cfg.Games, cfg.Workers)
	e.MaxTurns = cfg.MaxTurns
	r, err := experiments.RunSymmetry(ctx, e)
	if err != nil {
		log.Fatal().Err(err).Msg("symmetry experiment failed")
	}
	store(e, r.Results, cfg.OutDir)

	if skew := r.Skew(); skew > experiments.SkewTolerance {
		log.Warn().Msgf("skew of %.1f percentage points exceeds %.0f", skew, experiments.SkewTolerance)
	}
}

func runThroughput(ctx context.Context, cfg *config.Config) {
	base, _ := cfg.AgentConfigs()
	e := experiments.ThroughputExperiment(base, cfg.Throughput, cfg.Games, cfg.Workers)
	e.MaxTurns = cfg.MaxTurns
	_, results, err := experiments.RunThroughput(ctx, e)
	if err != nil {
		log.Fatal().Err(err).Msg("throughput experiment failed")
	}
	store(e, results, cfg.OutDir)
}

func store(e experiments.Experiment, results experiments.Results, outDir string) {
	dir, err := e.Write(outDir, results)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store experiment records")
	}
	log.Info().Msgf("stored records in %s", dir)
}
