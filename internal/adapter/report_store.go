package adapter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "conform.dev/pkg/conform/internal/model"
)

// reportFileName is the file written inside the reports directory. The
// format is JSON lines: one FileReport per line, log-friendly and stable
// enough for the idempotence guarantee (same input, byte-identical file).
const reportFileName = "report.jsonl"

// ReportStore persists run reports so `conform view` can browse the last
// run without re-checking.
type ReportStore interface {
	Save(dir m.Path, report m.RunReport) error
	Load(dir m.Path) (m.RunReport, error)
}

// LocalReportStore is the disk-backed ReportStore.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// Save writes the report as JSON lines under dir, creating the directory
// when needed.
func (s *LocalReportStore) Save(dir m.Path, report m.RunReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory %s: %w", dir, err)
	}

	target := filepath.Join(string(dir), reportFileName)

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", target, err)
	}

	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	encoder := json.NewEncoder(w)

	for _, file := range report.Files {
		if err := encoder.Encode(file); err != nil {
			return fmt.Errorf("failed to encode report for %s: %w", file.File, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", target, err)
	}

	return f.Close()
}

// Load reads a previously saved report.
func (s *LocalReportStore) Load(dir m.Path) (m.RunReport, error) {
	target := filepath.Join(string(dir), reportFileName)

	f, err := os.Open(target)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("failed to open report file %s: %w", target, err)
	}

	defer func() {
		_ = f.Close()
	}()

	var report m.RunReport

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var file m.FileReport
		if err := json.Unmarshal(line, &file); err != nil {
			return m.RunReport{}, fmt.Errorf("failed to decode report line: %w", err)
		}

		report.Files = append(report.Files, file)
	}

	if err := scanner.Err(); err != nil {
		return m.RunReport{}, fmt.Errorf("failed to read report file %s: %w", target, err)
	}

	return report, nil
}
