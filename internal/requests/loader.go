package requests

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadText reads exactly n whitespace separated records of the form
// "pid arrival burst priority". Anything after the n-th record is ignored.
func LoadText(r io.Reader, n int) ([]Job, error) {
	if n < 1 {
		return nil, ErrNoJobs
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var fields [4]int
	jobs := make([]Job, 0, n)
	for len(jobs) < n {
		for i := range fields {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
				}
				return nil, fmt.Errorf("%w: expected %d processes, read %d", ErrProcessCountMismatch, n, len(jobs))
			}
			v, err := strconv.Atoi(scanner.Text())
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %q is not an integer", ErrInvalidInput, len(jobs)+1, scanner.Text())
			}
			fields[i] = v
		}
		jobs = append(jobs, Job{
			ProcessId:   fields[0],
			ArrivalTime: fields[1],
			BurstTime:   fields[2],
			Priority:    fields[3],
		})
	}
	return jobs, nil
}

// LoadCSV reads "pid,arrival,burst[,priority]" rows. A first row whose first
// cell is not an integer is a header and is skipped.
func LoadCSV(r io.Reader) ([]Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV: %v", ErrInvalidInput, err)
	}

	jobs := make([]Job, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		job, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInput, i+1, err)
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	return jobs, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}

func parseRow(row []string) (Job, error) {
	if len(row) < 3 || len(row) > 4 {
		return Job{}, fmt.Errorf("expected 3 or 4 columns, got %d", len(row))
	}

	values := make([]int, 4)
	for i, cell := range row {
		v, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return Job{}, err
		}
		values[i] = v
	}
	return Job{
		ProcessId:   values[0],
		ArrivalTime: values[1],
		BurstTime:   values[2],
		Priority:    values[3],
	}, nil
}
