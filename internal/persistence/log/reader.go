package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"townsim.ai/internal/sim/world"
)

// ReadDayLog returns every day entry under runDir in day order.
func ReadDayLog(runDir string) ([]world.DayLogEntry, error) {
	out, err := readAll[world.DayLogEntry](filepath.Join(runDir, "days"), "days")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// ReadAuditLog returns every audit entry under runDir in the order written.
func ReadAuditLog(runDir string) ([]world.AuditEntry, error) {
	return readAll[world.AuditEntry](filepath.Join(runDir, "audit"), "audit")
}

func readAll[T any](dir, prefix string) ([]T, error) {
	paths, err := filepath.Glob(filepath.Join(dir, prefix+"-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	// Zero-padded day numbers sort lexically.
	sort.Strings(paths)
	var out []T
	for _, p := range paths {
		if err := readFile(p, func(v T) { out = append(out, v) }); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readFile[T any](path string, fn func(T)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), line, err)
		}
		fn(v)
	}
	return sc.Err()
}
