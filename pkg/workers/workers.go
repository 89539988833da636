package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/1F47E/go-termreel/pkg/job"
	"github.com/1F47E/go-termreel/pkg/logger"
)

var log = logger.Log

// MapFunc converts one frame file into its text block.
type MapFunc func(file string) (string, error)

type Worker struct {
	ctx    context.Context
	mapper MapFunc
}

func NewWorker(ctx context.Context, mapper MapFunc) *Worker {
	return &Worker{
		ctx:    ctx,
		mapper: mapper,
	}
}

// WorkerMap maps frames from jobs and sends each result to the channel
// matching the frame index, so the reader can collect them in order.
func (w *Worker) WorkerMap(id int, jobs <-chan job.JobMap, resChs []chan job.JobMapRes) {
	name := fmt.Sprintf("WorkerMap #%d", id)
	log.Debugf("%s started", name)
	defer log.Debugf("%s finished", name)

	for {
		select {
		case <-w.ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			log.Debugf("%s got %s", name, j.Print())

			now := time.Now()
			frame, err := w.mapper(j.File)
			log.Debugf("%s mapped %d. Took time: %s", name, j.Idx, time.Since(now))

			// result channels are buffered by one, never blocks
			resChs[j.Idx] <- job.JobMapRes{Frame: frame, Err: err}
		}
	}
}

// MapAll maps files with n workers and returns the frames in input order.
// The first error stops the remaining work. progress is called once per
// collected frame, may be nil.
func MapAll(ctx context.Context, files []string, n int, mapper MapFunc, progress func()) ([]string, error) {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// list of channels to receive results from workers in order
	resChs := make([]chan job.JobMapRes, len(files))
	for i := range resChs {
		resChs[i] = make(chan job.JobMapRes, 1)
	}

	framesCh := make(chan job.JobMap, n)
	w := NewWorker(ctx, mapper)
	log.Debugf("Starting %d workers", n)
	for i := 0; i < n; i++ {
		go w.WorkerMap(i+1, framesCh, resChs)
	}

	// send all the jobs
	go func() {
		defer close(framesCh)
		for i, file := range files {
			select {
			case <-ctx.Done():
				return
			case framesCh <- job.New(file, i):
			}
		}
	}()

	frames := make([]string, len(files))
	for i, ch := range resChs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			frames[i] = res.Frame
			if progress != nil {
				progress()
			}
		}
	}
	return frames, nil
}
