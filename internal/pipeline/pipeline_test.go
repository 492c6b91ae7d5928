package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/media"
	"github.com/nguyentantai21042004/meeting-flow/internal/notes"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/transcriber"
)

const fiveSections = `**Summary of Meeting:** The team aligned on the release.
**Key Decisions:** Ship Friday.
**Open Questions:** None.
**Action Items:** Tag the release (owner: dev).
**Next Steps:** Announce after shipping.`

type fakeNormalizer struct {
	saveCalls      int
	normalizeCalls int
	removed        []string
	saveErr        error
	normalizeErr   error
}

func (f *fakeNormalizer) SaveUpload(ctx context.Context, filename string, data []byte) (string, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return "/tmp/work/upload.mp3", nil
}

func (f *fakeNormalizer) Normalize(ctx context.Context, inputPath string) (string, error) {
	f.normalizeCalls++
	if f.normalizeErr != nil {
		return "", f.normalizeErr
	}
	return "/tmp/work/upload_16k.wav", nil
}

func (f *fakeNormalizer) Remove(ctx context.Context, path string) {
	f.removed = append(f.removed, path)
}

type fakeTranscriber struct {
	calls int
	text  string
	err   error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeGenerator struct {
	calls int
	got   string
	text  string
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	f.calls++
	f.got = transcript
	return f.text, f.err
}

type fakeStore struct {
	inserts int
	id      string
	err     error
	records map[string]store.Result
}

func (f *fakeStore) Insert(ctx context.Context, filename, transcription, summaryAndActions string) (string, error) {
	f.inserts++
	if f.err != nil {
		return "", f.err
	}
	if f.records == nil {
		f.records = map[string]store.Result{}
	}
	f.records[f.id] = store.Result{
		Filename:          filename,
		Transcription:     transcription,
		SummaryAndActions: summaryAndActions,
	}
	return f.id, nil
}

func (f *fakeStore) ListRecent(ctx context.Context) ([]store.Result, error) {
	out := make([]store.Result, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (store.Result, error) {
	r, ok := f.records[id]
	if !ok {
		return store.Result{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return r, nil
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

type fakeArtifacts struct {
	calls int
	err   error
}

func (f *fakeArtifacts) WriteSnapshot(ctx context.Context, filename, transcription, summaryAndActions string) error {
	f.calls++
	return f.err
}

func TestRunSuccess(t *testing.T) {
	ctx := context.Background()
	med := &fakeNormalizer{}
	trans := &fakeTranscriber{text: "We agreed to ship Friday."}
	gen := &fakeGenerator{text: fiveSections}
	st := &fakeStore{id: "abc123"}
	art := &fakeArtifacts{}

	pipe := New(med, trans, gen, st, art, logger.Nop())

	out, err := pipe.Run(ctx, Upload{Filename: "standup.wav", Data: []byte("riff-wav-bytes")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out.ID != "abc123" {
		t.Errorf("ID = %v, want abc123", out.ID)
	}
	if out.Transcription != "[00:00 - END] Transcription: We agreed to ship Friday.\n" {
		t.Errorf("Transcription = %q", out.Transcription)
	}
	if out.SummaryAndActions != fiveSections {
		t.Errorf("SummaryAndActions = %q", out.SummaryAndActions)
	}

	// The generator receives the raw transcript, not the wrapped span.
	if gen.got != "We agreed to ship Friday." {
		t.Errorf("generator input = %q", gen.got)
	}

	// A following lookup resolves the same content.
	rec, err := st.GetByID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if rec.Transcription != out.Transcription || rec.SummaryAndActions != out.SummaryAndActions {
		t.Error("persisted record does not match the response")
	}

	if st.inserts != 1 {
		t.Errorf("inserts = %d, want 1", st.inserts)
	}
	if art.calls != 1 {
		t.Errorf("snapshot calls = %d, want 1", art.calls)
	}
	if len(med.removed) != 2 {
		t.Errorf("removed %d transient files, want 2 (upload + wav)", len(med.removed))
	}
}

func TestRunMissingInput(t *testing.T) {
	med := &fakeNormalizer{}
	trans := &fakeTranscriber{}
	gen := &fakeGenerator{}
	st := &fakeStore{}
	art := &fakeArtifacts{}

	pipe := New(med, trans, gen, st, art, logger.Nop())

	tests := []struct {
		name string
		up   Upload
	}{
		{"no filename", Upload{Data: []byte("x")}},
		{"no data", Upload{Filename: "a.wav"}},
		{"empty", Upload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipe.Run(context.Background(), tt.up)
			if !errors.Is(err, ErrMissingInput) {
				t.Fatalf("Run() error = %v, want ErrMissingInput", err)
			}
		})
	}

	// Zero external-service calls and zero store writes.
	if med.saveCalls != 0 || med.normalizeCalls != 0 || trans.calls != 0 || gen.calls != 0 || st.inserts != 0 {
		t.Error("missing input must not engage any stage")
	}
}

func TestRunStageFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeNormalizer, *fakeTranscriber, *fakeGenerator, *fakeStore)
		wantErr error
	}{
		{
			name: "conversion failure",
			mutate: func(m *fakeNormalizer, _ *fakeTranscriber, _ *fakeGenerator, _ *fakeStore) {
				m.normalizeErr = fmt.Errorf("%w: ffmpeg missing", media.ErrConversion)
			},
			wantErr: media.ErrConversion,
		},
		{
			name: "transcription failure",
			mutate: func(_ *fakeNormalizer, tr *fakeTranscriber, _ *fakeGenerator, _ *fakeStore) {
				tr.err = fmt.Errorf("%w: 401 unauthorized", transcriber.ErrTranscription)
			},
			wantErr: transcriber.ErrTranscription,
		},
		{
			name: "summarization failure",
			mutate: func(_ *fakeNormalizer, _ *fakeTranscriber, g *fakeGenerator, _ *fakeStore) {
				g.err = fmt.Errorf("%w: 429 quota", notes.ErrSummarization)
			},
			wantErr: notes.ErrSummarization,
		},
		{
			name: "store failure",
			mutate: func(_ *fakeNormalizer, _ *fakeTranscriber, _ *fakeGenerator, s *fakeStore) {
				s.err = fmt.Errorf("%w: connection refused", store.ErrUnavailable)
			},
			wantErr: store.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			med := &fakeNormalizer{}
			trans := &fakeTranscriber{text: "hello"}
			gen := &fakeGenerator{text: "notes"}
			st := &fakeStore{id: "abc123"}
			art := &fakeArtifacts{}
			tt.mutate(med, trans, gen, st)

			pipe := New(med, trans, gen, st, art, logger.Nop())

			_, err := pipe.Run(context.Background(), Upload{Filename: "a.wav", Data: []byte("x")})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			// No partial commit, no snapshot after an abort.
			if len(st.records) != 0 {
				t.Error("no Result may be persisted on an aborted run")
			}
			if art.calls != 0 {
				t.Error("no snapshot may be written on an aborted run")
			}
			// Staged upload is released even on failure.
			if med.saveCalls > 0 && len(med.removed) == 0 {
				t.Error("transient files must be removed on every exit path")
			}
		})
	}
}

func TestRunTranscriptionFailureNoInsert(t *testing.T) {
	med := &fakeNormalizer{}
	trans := &fakeTranscriber{err: fmt.Errorf("%w: boom", transcriber.ErrTranscription)}
	st := &fakeStore{id: "abc123"}

	pipe := New(med, trans, &fakeGenerator{}, st, &fakeArtifacts{}, logger.Nop())

	_, err := pipe.Run(context.Background(), Upload{Filename: "a.wav", Data: []byte("x")})
	if err == nil {
		t.Fatal("Run() should fail when transcription fails")
	}
	if st.inserts != 0 {
		t.Errorf("inserts = %d, want 0", st.inserts)
	}
	if list, _ := st.ListRecent(context.Background()); len(list) != 0 {
		t.Error("a following listing must see no Result")
	}
}

func TestRunSnapshotFailureIsBestEffort(t *testing.T) {
	st := &fakeStore{id: "abc123"}
	art := &fakeArtifacts{err: errors.New("disk full")}

	pipe := New(&fakeNormalizer{}, &fakeTranscriber{text: "t"}, &fakeGenerator{text: "n"}, st, art, logger.Nop())

	out, err := pipe.Run(context.Background(), Upload{Filename: "a.wav", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Run() error = %v; snapshot failures must not abort", err)
	}
	if out.ID != "abc123" {
		t.Errorf("ID = %v, want abc123", out.ID)
	}
}

func TestRunEmptyTranscriptPropagates(t *testing.T) {
	gen := &fakeGenerator{text: "notes for silence"}
	pipe := New(&fakeNormalizer{}, &fakeTranscriber{text: ""}, gen, &fakeStore{id: "abc123"}, &fakeArtifacts{}, logger.Nop())

	out, err := pipe.Run(context.Background(), Upload{Filename: "silence.wav", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Run() error = %v; empty transcripts are not special", err)
	}
	if gen.got != "" {
		t.Errorf("generator input = %q, want empty", gen.got)
	}
	if out.Transcription != "[00:00 - END] Transcription: \n" {
		t.Errorf("Transcription = %q", out.Transcription)
	}
}
