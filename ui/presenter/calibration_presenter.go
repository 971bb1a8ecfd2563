package presenter

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/pixel-reel/domain/capture"
	"github.com/soocke/pixel-reel/domain/vision"
	"github.com/soocke/pixel-reel/ui/images"
)

// CalibrationView describes the UI surface updated by the presenter.
type CalibrationView interface {
	UpdatePreview(img image.Image)
	UpdateMask(img image.Image)
	SetCalibration(green, red float64)
	SetStatus(string)
}

type calibrationTask struct {
	region capture.Region
	save   bool
	dir    string
}

type calibrationResult struct {
	img    *image.RGBA
	mask   *image.RGBA
	sample vision.Sample
	path   string
	err    error
	took   time.Duration
}

// CalibrationPresenter grabs the current region on request, classifies it
// and shows the frame next to its band mask, so the region and thresholds
// can be checked by eye. Work runs on a single worker goroutine that owns
// its own sampler; requests are latest-wins and results are applied on Tick.
type CalibrationPresenter struct {
	samplers capture.SamplerFactory
	region   RegionResolver
	dir      func() string
	view     CalibrationView
	logger   *slog.Logger

	lockThread func() (unlock func())
	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan calibrationTask
	resultCh   chan calibrationResult
	done       chan struct{}
	started    bool
	closed     bool
}

// NewCalibrationPresenter constructs a calibration presenter. dir returns the
// snapshot directory at the time of the request.
func NewCalibrationPresenter(samplers capture.SamplerFactory, region RegionResolver, dir func() string, view CalibrationView, logger *slog.Logger) *CalibrationPresenter {
	return &CalibrationPresenter{
		samplers: samplers,
		region:   region,
		dir:      dir,
		view:     view,
		logger:   logger,
		workCh:   make(chan calibrationTask, 1),
		resultCh: make(chan calibrationResult, 1),
		done:     make(chan struct{}),

		lockThread: capture.LockThread,
	}
}

// Capture requests a fresh preview of the region.
func (p *CalibrationPresenter) Capture() { p.request(false) }

// Snapshot requests a preview and saves the frame as a PNG.
func (p *CalibrationPresenter) Snapshot() { p.request(true) }

func (p *CalibrationPresenter) request(save bool) {
	if p == nil || p.closed || p.samplers == nil || p.region == nil || p.view == nil {
		return
	}
	r, err := p.region()
	if err != nil {
		p.view.SetStatus("Error: " + err.Error())
		return
	}
	task := calibrationTask{region: r, save: save}
	if save && p.dir != nil {
		task.dir = p.dir()
	}
	p.ensureWorker()
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *CalibrationPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		p.started = true
		go p.runWorker()
	})
}

func (p *CalibrationPresenter) runWorker() {
	defer close(p.done)
	defer recoverLog(p.logger, "calibration worker panic")
	defer p.lockThread()()
	var sampler capture.Sampler
	defer func() {
		if sampler != nil {
			_ = sampler.Close()
		}
	}()
	for task := range p.workCh {
		if sampler == nil {
			s, err := p.samplers()
			if err != nil {
				p.publish(calibrationResult{err: err})
				continue
			}
			sampler = s
		}
		p.publish(p.execute(sampler, task))
	}
}

func (p *CalibrationPresenter) execute(sampler capture.Sampler, task calibrationTask) calibrationResult {
	start := time.Now()
	img, err := sampler.Capture(task.region)
	if err != nil {
		var ce *capture.CaptureError
		if errors.As(err, &ce) {
			err = ce.Err
		}
		return calibrationResult{err: err}
	}
	res := calibrationResult{img: img, sample: vision.Classify(img), mask: images.ClassMask(img)}
	if task.save {
		res.path, res.err = capture.SaveSnapshot(img, task.dir, start)
	}
	res.took = time.Since(start)
	return res
}

func (p *CalibrationPresenter) publish(res calibrationResult) {
	select {
	case p.resultCh <- res:
	default:
		select {
		case <-p.resultCh:
		default:
		}
		select {
		case p.resultCh <- res:
		default:
		}
	}
}

// Tick applies a finished calibration to the view.
func (p *CalibrationPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	var res calibrationResult
	select {
	case res = <-p.resultCh:
	default:
		return
	}
	if res.img != nil {
		p.view.UpdatePreview(res.img)
		p.view.UpdateMask(res.mask)
		p.view.SetCalibration(res.sample.Green, res.sample.Red)
	}
	switch {
	case res.err != nil:
		if p.logger != nil {
			p.logger.Error("calibration", "error", res.err)
		}
		p.view.SetStatus("Error: " + res.err.Error())
	case res.path != "":
		if p.logger != nil {
			p.logger.Info("snapshot saved", "path", res.path)
		}
		p.view.SetStatus("Saved " + res.path)
	default:
		if p.logger != nil {
			p.logger.Debug("calibration", "green", res.sample.Green, "red", res.sample.Red, "took", res.took)
		}
	}
}

// Close stops the worker and releases its sampler.
func (p *CalibrationPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed = true
		p.workerOnce.Do(func() {}) // no worker may start after Close
		close(p.workCh)
		if p.started {
			<-p.done
		}
	})
}
