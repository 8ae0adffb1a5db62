package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/topi314/church-tools/internal/xslog"
	"github.com/topi314/church-tools/server"
	"github.com/topi314/church-tools/server/web"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "config.toml", "path to the config file")
	pflag.Parse()

	cfg, err := server.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("Error while loading config", slog.Any("err", err))
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	slog.Info("Starting church-tools...", slog.String("config", *cfgPath))
	slog.Info("Config", slog.String("config", cfg.String()))

	srv, err := server.New(cfg)
	if err != nil {
		slog.Error("Error while creating server", slog.Any("err", err))
		os.Exit(1)
	}

	srv.Start(web.Routes(srv))
	defer srv.Stop()

	slog.Info("Server started", slog.String("addr", cfg.Server.Addr))

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGTERM, syscall.SIGINT)
	<-s
}

func setupLogger(cfg server.LogConfig) {
	opts := &slog.HandlerOptions{
		AddSource: cfg.AddSource,
		Level:     cfg.Level,
	}

	var handler slog.Handler
	if cfg.Format == server.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	if len(cfg.Mute) > 0 {
		handler = xslog.NewFilterHandler(handler, xslog.MuteMessages(cfg.Mute))
	}
	slog.SetDefault(slog.New(xslog.NewContextHandler(handler)))
}
