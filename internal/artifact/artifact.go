package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type snapshot struct {
	Transcription     string `json:"transcription"`
	SummaryAndActions string `json:"summary_and_actions"`
}

type implWriter struct {
	resultsDir string
	exportDocx bool
	logger     logger.Logger
}

// New creates a Writer that drops snapshots into resultsDir. When exportDocx
// is set, the notes are additionally rendered as a styled docx document.
func New(resultsDir string, exportDocx bool, log logger.Logger) Writer {
	return &implWriter{
		resultsDir: resultsDir,
		exportDocx: exportDocx,
		logger:     log,
	}
}

// WriteSnapshot writes result_<filename>.json and, optionally, a docx
// rendering of the notes named after the source file.
func (w *implWriter) WriteSnapshot(ctx context.Context, filename, transcription, summaryAndActions string) error {
	if err := os.MkdirAll(w.resultsDir, 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	data, err := json.Marshal(snapshot{
		Transcription:     transcription,
		SummaryAndActions: summaryAndActions,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	jsonPath := filepath.Join(w.resultsDir, "result_"+filename+".json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	w.logger.Debug(ctx, "Snapshot written: %s", jsonPath)

	if !w.exportDocx {
		return nil
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	docxPath := filepath.Join(w.resultsDir, base+".docx")
	if err := renderNotesDocx("Meeting Notes: "+base, summaryAndActions, docxPath); err != nil {
		return fmt.Errorf("render docx: %w", err)
	}
	w.logger.Debug(ctx, "Docx written: %s", docxPath)

	return nil
}
