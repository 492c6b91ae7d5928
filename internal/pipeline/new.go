package pipeline

import (
	"github.com/nguyentantai21042004/meeting-flow/internal/artifact"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/media"
	"github.com/nguyentantai21042004/meeting-flow/internal/notes"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/transcriber"
)

type implPipeline struct {
	media       media.Normalizer
	transcriber transcriber.Transcriber
	notes       notes.Generator
	store       store.Store
	artifacts   artifact.Writer
	logger      logger.Logger
}

// New wires the pipeline from explicitly constructed dependencies. There are
// no ambient singletons; everything the pipeline touches is injected here.
func New(
	med media.Normalizer,
	trans transcriber.Transcriber,
	gen notes.Generator,
	st store.Store,
	art artifact.Writer,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		media:       med,
		transcriber: trans,
		notes:       gen,
		store:       st,
		artifacts:   art,
		logger:      log,
	}
}
