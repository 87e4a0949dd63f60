// Package workload loads job traces for simulation replay.
//
// A trace is an ordered CSV sequence of job records, one row per job:
//
//	job_id,submit_time,slots,duration
//
// The 3-column layout job_id,submit_time,duration (the format distilled
// from SGE accounting logs) is also accepted, with slots defaulting to 1.
package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	sim "github.com/elastic-grid/gridsim/sim"
)

// Record is one parsed trace row.
type Record struct {
	JobID      string
	SubmitTime int64
	Slots      int
	Duration   int64
}

// LoadTrace reads and parses a trace CSV file.
func LoadTrace(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()
	records, err := ParseTrace(f)
	if err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	return records, nil
}

// ParseTrace parses trace rows from r. Rows must have 3 or 4 fields.
func ParseTrace(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row: 3 or 4 fields
	reader.TrimLeadingSpace = true

	var records []Record
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) != 3 && len(row) != 4 {
		return Record{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(row))
	}
	rec := Record{JobID: row[0], Slots: 1}
	if rec.JobID == "" {
		return Record{}, fmt.Errorf("empty job id")
	}
	submit, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad submit_time %q: %w", row[1], err)
	}
	rec.SubmitTime = int64(submit)

	durField := row[2]
	if len(row) == 4 {
		slots, err := strconv.Atoi(row[2])
		if err != nil {
			return Record{}, fmt.Errorf("bad slots %q: %w", row[2], err)
		}
		if slots < 1 {
			return Record{}, fmt.Errorf("slots must be at least 1, got %d", slots)
		}
		rec.Slots = slots
		durField = row[3]
	}
	duration, err := strconv.ParseFloat(durField, 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad duration %q: %w", durField, err)
	}
	if duration < 0 {
		return Record{}, fmt.Errorf("duration must be non-negative, got %v", duration)
	}
	rec.Duration = int64(duration)
	return rec, nil
}

// Rebase shifts submit times so the earliest becomes 0. Distilled
// accounting traces carry epoch-second timestamps; the engine replays
// relative time.
func Rebase(records []Record) {
	if len(records) == 0 {
		return
	}
	earliest := records[0].SubmitTime
	for _, rec := range records[1:] {
		if rec.SubmitTime < earliest {
			earliest = rec.SubmitTime
		}
	}
	for i := range records {
		records[i].SubmitTime -= earliest
	}
}

// Jobs converts trace records into sim.Job values ordered by
// (submit time, job id) for deterministic replay.
func Jobs(records []Record) []*sim.Job {
	jobs := make([]*sim.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, &sim.Job{
			ID:         sim.JobID(rec.JobID),
			SubmitTime: rec.SubmitTime,
			Slots:      rec.Slots,
			Duration:   rec.Duration,
		})
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].SubmitTime != jobs[j].SubmitTime {
			return jobs[i].SubmitTime < jobs[j].SubmitTime
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs
}
