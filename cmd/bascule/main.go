package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"bascule/internal/audio"
	"bascule/internal/config"
	"bascule/internal/logging"
	"bascule/internal/render"
	"bascule/internal/scene"
	"bascule/internal/telemetry"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "config file (json, yaml or toml)")
	pflag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		// logging isn't set up yet
		fmt.Fprintf(os.Stderr, "bascule: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, settings.Log.Level, settings.Log.Pretty)
	log.Info().Str("config", *configPath).Str("loglevel", log.GetLevel().String()).Msg("starting")

	metrics, err := telemetry.NewProvider(settings.Telemetry.Enabled, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()
	otel.SetMeterProvider(metrics.MeterProvider())

	s := scene.New(
		scene.WithLogger(log),
		scene.WithTuning(settings.Tuning()),
	)

	rec, err := telemetry.New(metrics.MeterProvider())
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry instruments")
	}
	rec.Attach(s.Events())

	var mix audio.Mixer = audio.Silent{}
	if settings.Audio.Enabled {
		m, err := audio.NewOtoMixer(settings.Audio.Volume, log)
		if err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			defer m.Close()
			mix = m
		}
	}
	audio.NewDirector(mix, log).Attach(s.Events())

	render.RunDesktop(s, render.WindowConfig{
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Title:  settings.Window.Title,
		VSync:  settings.Window.VSync,
	}, settings.Scene.Seed, log)
}
