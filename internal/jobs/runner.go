package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pushresume/internal/logger"
)

// Body - тело джобы: ограниченный батч с изоляцией ошибок по элементам.
type Body func(ctx context.Context) (Result, error)

type job struct {
	name     string
	interval time.Duration
	body     Body
}

// Runner запускает именованные джобы по собственным таймерам. Джоба
// никогда не накладывается сама на себя: следующий тик ждет завершения
// тела; разные джобы работают конкурентно. Бизнес-логики в раннере
// нет - он только вызывает тела и фиксирует результат прогона.
type Runner struct {
	jobs []job
	wg   sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register добавляет джобу; вызывается до Start.
func (r *Runner) Register(name string, interval time.Duration, body Body) {
	r.jobs = append(r.jobs, job{name: name, interval: interval, body: body})
}

// Start запускает по горутине на джобу и возвращается. Каждая джоба
// выполняется сразу при старте, затем по своему интервалу до отмены
// контекста.
func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, j)
	}
}

// Wait блокируется до остановки всех джоб.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, j job) {
	defer r.wg.Done()

	logger.Info("job scheduled", "job", j.name, "interval", j.interval.String())

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	r.runOnce(ctx, j)

	for {
		select {
		case <-ctx.Done():
			logger.Info("job stopped", "job", j.name)
			return
		case <-ticker.C:
			r.runOnce(ctx, j)
		}
	}
}

// runOnce выполняет одно тело джобы. Паника тела не убивает раннер:
// она логируется, и следующий тик все равно случится.
func (r *Runner) runOnce(ctx context.Context, j job) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			logger.Error("job panicked", "job", j.name, "error", err.Error())
			observe(j.name, Result{}, err)
		}
	}()

	result, err := j.body(ctx)
	observe(j.name, result, err)
	logger.JobLog(j.name, result.Total, result.Success, result.Failed, err)
}
