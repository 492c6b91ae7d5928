package media

import (
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/pkg/executor"
)

type implNormalizer struct {
	uploadsDir string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Normalizer that stages files under uploadsDir.
func New(uploadsDir string, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		uploadsDir: uploadsDir,
		executor:   exec,
		logger:     log,
	}
}
