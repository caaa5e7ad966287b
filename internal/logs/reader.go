package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"comicsdb/internal/logging"
)

const pollInterval = 250 * time.Millisecond

// Filter narrows which entries a read returns. Zero fields match everything.
type Filter struct {
	MinLevel  string
	Component string
	RunID     string
}

// Match reports whether entry passes the filter.
func (f Filter) Match(entry Entry) bool {
	if f.MinLevel != "" && entry.severity() < ParseLevel(f.MinLevel) {
		return false
	}
	if f.Component != "" && !strings.EqualFold(entry.Component, f.Component) {
		return false
	}
	if f.RunID != "" && entry.Fields[logging.FieldRunID] != f.RunID {
		return false
	}
	return true
}

// Options controls a read. A negative Offset returns the last Limit matching
// entries; otherwise reading resumes at Offset.
type Options struct {
	Offset int64
	Limit  int
	Follow bool
	Wait   time.Duration
	Filter Filter
}

// Result carries decoded entries and the offset to resume from.
type Result struct {
	Entries []Entry
	Offset  int64
}

// Read returns log entries from path. A missing file yields no entries.
// With Follow set and nothing new to report, Read polls for up to Wait.
func Read(ctx context.Context, path string, opts Options) (Result, error) {
	result := Result{Offset: opts.Offset}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Offset = 0
			return result, nil
		}
		return result, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("log path %q is a directory", path)
	}
	if opts.Wait < 0 {
		opts.Wait = 0
	}

	if opts.Offset < 0 {
		entries, offset, err := readLast(path, opts.Limit, opts.Filter)
		if err != nil {
			return result, err
		}
		result.Entries = entries
		result.Offset = offset
		if opts.Follow && opts.Wait > 0 && len(entries) == 0 {
			return waitForEntries(ctx, path, offset, opts.Wait, opts.Filter)
		}
		return result, nil
	}

	offset := opts.Offset
	if offset > info.Size() {
		// Truncated or rotated underneath us.
		offset = 0
	}
	entries, next, err := readForward(path, offset, opts.Filter)
	if err != nil {
		return result, err
	}
	result.Entries = entries
	result.Offset = next
	if opts.Follow && opts.Wait > 0 && len(entries) == 0 {
		return waitForEntries(ctx, path, next, opts.Wait, opts.Filter)
	}
	return result, nil
}

func readLast(path string, limit int, filter Filter) ([]Entry, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, offset, nil
	}

	ring := make([]Entry, limit)
	count, idx := 0, 0
	offset, err := scanEntries(file, 0, filter, func(entry Entry) {
		ring[idx] = entry
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return nil, 0, err
	}

	entries := make([]Entry, count)
	if count == limit {
		for i := 0; i < count; i++ {
			entries[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(entries, ring[:count])
	}
	return entries, offset, nil
}

func readForward(path string, offset int64, filter Filter) ([]Entry, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}
	var entries []Entry
	next, err := scanEntries(file, offset, filter, func(entry Entry) {
		entries = append(entries, entry)
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, next, nil
}

// scanEntries feeds each complete line after start to emit and returns the
// offset just past the last complete line. A trailing partial line is left
// for the next read.
func scanEntries(r io.Reader, start int64, filter Filter, emit func(Entry)) (int64, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	offset := start
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return offset, nil
			}
			return offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		text := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		entry := ParseEntry(text)
		if filter.Match(entry) {
			emit(entry)
		}
	}
}

func waitForEntries(ctx context.Context, path string, offset int64, wait time.Duration, filter Filter) (Result, error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	result := Result{Offset: offset}
	for {
		entries, next, err := readForward(path, offset, filter)
		if err != nil {
			return result, err
		}
		result.Offset = next
		if len(entries) > 0 {
			result.Entries = entries
			return result, nil
		}
		offset = next
		if time.Now().After(deadline) {
			return result, nil
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
		}
	}
}
