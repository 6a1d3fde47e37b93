package shp2ch

import (
	"math"

	"go.uber.org/zap"
)

// progress logs percentage of processed rows of single file, only when rounded value changes
type progress struct {
	logger  *zap.SugaredLogger
	stage   string
	fileIdx int
	files   int
	total   int
	current int
	latest  float64
}

func newProgress(logger *zap.SugaredLogger, stage string, fileIdx, files, total int) *progress {
	return &progress{
		logger:  logger,
		stage:   stage,
		fileIdx: fileIdx,
		files:   files,
		total:   total,
		latest:  -1,
	}
}

// step marks one more row as processed. Returns true when something has been reported
func (p *progress) step() bool {
	p.current++
	if p.total <= 0 {
		return false
	}
	value := math.Round(float64(p.current) / float64(p.total) * 100)
	if value == p.latest {
		return false
	}
	p.latest = value
	p.logger.Infof("%s from file %d/%d... %.0f%%", p.stage, p.fileIdx+1, p.files, value)
	return true
}
