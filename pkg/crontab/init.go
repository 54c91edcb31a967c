package crontab

import (
	"context"
	"fmt"

	model "github.com/docfold/docfold/models"
	"github.com/docfold/docfold/pkg/util"
	"github.com/robfig/cron/v3"
)

// Cron is the running scheduler.
var Cron *cron.Cron

// tasks maps the setting holding a schedule to its job.
var tasks = map[string]TaskFunc{
	"cron_garbage_collect": garbageCollect,
	"cron_orphan_collect":  orphanCollect,
}

// Reload restarts the scheduler with the current settings.
func Reload() {
	if Cron != nil {
		Cron.Stop()
	}
	Init()
}

// Init schedules every job from its cron setting.
func Init() {
	l := util.Log()
	l.Info("Initialize crontab jobs...")

	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	options := model.GetSettingByNames(names...)

	Cron = cron.New()
	for k, v := range options {
		task, ok := tasks[k]
		if !ok {
			l.Warning("Unknown crontab job %q, skipped.", k)
			continue
		}

		if _, err := Cron.AddFunc(v, taskWrapper(k, v, task)); err != nil {
			l.Warning("Failed to start crontab job %q: %s", k, err)
		}
	}

	Cron.Start()
}

// Run executes the named job once, outside the schedule.
func Run(name string) error {
	task, ok := tasks[name]
	if !ok {
		return fmt.Errorf("unknown crontab job %q", name)
	}

	taskWrapper(name, "manual", task)()
	return nil
}

// Stop halts the scheduler. The returned context is done once running jobs finish.
func Stop() context.Context {
	if Cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return Cron.Stop()
}
