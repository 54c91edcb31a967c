package crontab

import (
	"context"
	"fmt"

	"github.com/docfold/docfold/pkg/logging"
	"github.com/docfold/docfold/pkg/util"
	"github.com/gofrs/uuid"
)

// TaskFunc is a scheduled job.
type TaskFunc func(ctx context.Context)

func taskWrapper(name, config string, task TaskFunc) func() {
	util.Log().Info("Cron task %s started with config %q", name, config)
	return func() {
		cid := uuid.Must(uuid.NewV4())
		l := util.Log().CopyWithPrefix(fmt.Sprintf("[Cid: %s Cron: %s]", cid, name))
		l.Info("Executing cron task %q", name)

		ctx := context.WithValue(context.Background(), logging.CorrelationIDCtx{}, cid)
		ctx = logging.WithLogger(ctx, l)
		task(ctx)
	}
}
