package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskcal/internal/alarm"
	"github.com/sandeepkv93/taskcal/internal/config"
	"github.com/sandeepkv93/taskcal/internal/export"
	"github.com/sandeepkv93/taskcal/internal/logging"
	"github.com/sandeepkv93/taskcal/internal/smartadd"
	"github.com/sandeepkv93/taskcal/internal/storage"
	"github.com/sandeepkv93/taskcal/internal/store"
	"github.com/sandeepkv93/taskcal/internal/update"
)

type flagConfig struct {
	configPath string
	watch      bool
	exportPath string
}

func main() {
	flags := parseFlags()
	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "taskcal failed: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", config.DefaultPath(), "Path to config file")
	flag.BoolVar(&cfg.watch, "watch", false, "Run the alarm poller without the terminal UI")
	flag.StringVar(&cfg.exportPath, "export", "", "Write all tasks to this .ics file and exit")

	flag.Parse()

	return cfg
}

func run(flags flagConfig) error {
	conf, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	conf = config.FromEnv(conf)

	logger, logCloser, err := logging.New(logging.Options{
		File:   conf.Log.File,
		Level:  conf.Log.Level,
		Stderr: flags.watch,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	logger.WithFields(log.Fields{
		"config_path": flags.configPath,
		"storage":     conf.Storage.Backend,
		"data_dir":    conf.Storage.DataDir,
		"interval":    conf.AlarmInterval().String(),
		"dedup":       conf.Alarm.Dedup,
		"watch":       flags.watch,
	}).Info("taskcal starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kv, err := storage.Open(ctx, storage.Options{
		Backend:       conf.Storage.Backend,
		DataDir:       conf.Storage.DataDir,
		RedisAddr:     conf.Storage.RedisAddr,
		RedisPassword: conf.Storage.RedisPassword,
		RedisDB:       conf.Storage.RedisDB,
		RedisPrefix:   conf.Storage.RedisPrefix,
	})
	if err != nil {
		return err
	}
	defer kv.Close()

	tasks := store.Open(ctx, kv, store.WithLogger(logger.WithField("component", "store")))

	if flags.exportPath != "" {
		if err := export.WriteFile(flags.exportPath, tasks.List(), time.Local, time.Now()); err != nil {
			return err
		}
		logger.WithField("path", flags.exportPath).Info("tasks exported")
		return nil
	}

	notifications := alarm.NewNotifications(alarm.NewExecNotifier(), conf.Alarm.DesktopNotifications)
	sound := alarm.NewSound(alarm.DetectPlayer(conf.Alarm.SoundFile, exec.LookPath, os.Stderr))
	poller := alarm.NewPoller(tasks,
		alarm.WithDedup(conf.Alarm.Dedup),
		alarm.WithNotifications(notifications),
		alarm.WithSound(sound),
		alarm.WithLogger(logger.WithField("component", "alarm")),
	)

	if flags.watch {
		notifications.RequestPermission()
		sound.Unlock()
		return alarm.Watch{
			Poller:   poller,
			Reload:   tasks.Reload,
			Interval: conf.AlarmInterval(),
			Logger:   logger.WithField("component", "watch"),
		}.Run(ctx)
	}

	parser := smartadd.NewLLMParser(smartadd.LLMConfig{
		BaseURL: conf.LLM.BaseURL,
		Model:   conf.LLM.Model,
		APIKey:  conf.LLM.APIKey,
		Timeout: conf.LLMTimeout(),
	})
	program := tea.NewProgram(update.NewModel(update.Deps{
		Store:         tasks,
		Config:        conf,
		SmartAdd:      smartadd.NewAdapter(parser, logger.WithField("component", "smartadd")),
		Poller:        poller,
		Notifications: notifications,
		Sound:         sound,
		Logger:        logger.WithField("component", "tui"),
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	logger.Info("taskcal exiting")
	return nil
}
