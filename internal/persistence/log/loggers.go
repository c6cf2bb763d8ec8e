package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"townsim.ai/internal/sim/world"
)

const DefaultSegmentDays = 30

// JSONLZstdWriter appends JSON lines to zstd files, one file per segment of
// simulated days: <prefix>-<first day of segment>.jsonl.zst.
type JSONLZstdWriter struct {
	baseDir     string
	prefix      string
	segmentDays int

	mu     sync.Mutex
	curSeg int
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string, segmentDays int) *JSONLZstdWriter {
	if segmentDays <= 0 {
		segmentDays = DefaultSegmentDays
	}
	return &JSONLZstdWriter{
		baseDir:     baseDir,
		prefix:      prefix,
		segmentDays: segmentDays,
		curSeg:      -1,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(day int, v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if day < 0 {
		day = 0
	}
	seg := day / w.segmentDays
	if seg != w.curSeg || w.w == nil {
		if err := w.rotateLocked(seg); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush pushes buffered lines through the encoder without closing the segment.
func (w *JSONLZstdWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(seg int) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.pathForSegment(seg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// Reopening a segment appends a new zstd frame; readers decode concatenated frames.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curSeg = seg
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		err1 = w.w.Flush()
	}
	if w.enc != nil {
		if err := w.enc.Close(); err1 == nil {
			err1 = err
		}
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	w.w = nil
	w.curSeg = -1
	return err1
}

func (w *JSONLZstdWriter) pathForSegment(seg int) string {
	return filepath.Join(w.baseDir, SegmentFile(w.prefix, seg*w.segmentDays))
}

func SegmentFile(prefix string, firstDay int) string {
	return fmt.Sprintf("%s-%06d.jsonl.zst", prefix, firstDay)
}

// DayLogger writes one JSONL entry per simulated day.
type DayLogger struct{ w *JSONLZstdWriter }

func NewDayLogger(runDir string, segmentDays int) *DayLogger {
	return &DayLogger{w: NewJSONLZstdWriter(filepath.Join(runDir, "days"), "days", segmentDays)}
}

func (l *DayLogger) WriteDay(v world.DayLogEntry) error { return l.w.Write(v.Day, v) }
func (l *DayLogger) Close() error                       { return l.w.Close() }

// AuditLogger writes one JSONL entry per world mutation or refusal.
type AuditLogger struct{ w *JSONLZstdWriter }

func NewAuditLogger(runDir string, segmentDays int) *AuditLogger {
	return &AuditLogger{w: NewJSONLZstdWriter(filepath.Join(runDir, "audit"), "audit", segmentDays)}
}

func (l *AuditLogger) WriteAudit(v world.AuditEntry) error { return l.w.Write(v.Day, v) }
func (l *AuditLogger) Close() error                        { return l.w.Close() }
