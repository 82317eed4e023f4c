package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/storage"
)

// tableSchema describes how one entity kind maps onto a CSV file
type tableSchema[T entities.Record[T]] struct {
	header   []string
	required []string
	decode   func(r *row) T
	encode   func(T) []string
	// validate replaces T.Validate on load when set
	validate func(T) error
	// positionalIDs numbers records 1..n when the file has no id column
	positionalIDs bool
}

// csvTable is the record store for one CSV file. Every save rewrites the
// whole file atomically; Update holds the file's lock across load and save.
type csvTable[T entities.Record[T]] struct {
	dir    *storage.DataDir
	file   string
	schema tableSchema[T]
	logger *logger.Logger
}

func newCSVTable[T entities.Record[T]](dir *storage.DataDir, file string, schema tableSchema[T], log *logger.Logger) *csvTable[T] {
	return &csvTable[T]{
		dir:    dir,
		file:   file,
		schema: schema,
		logger: log.WithComponent("store").WithFields("file", file),
	}
}

// LoadAll reads every record. A missing file is an empty table. Any
// malformed row fails the whole load.
func (t *csvTable[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.load()
}

// SaveAll rewrites the file with the given records
func (t *csvTable[T]) SaveAll(ctx context.Context, records []T) error {
	return t.dir.WithLock(ctx, t.file, func() error {
		return t.save(records)
	})
}

// Update runs a locked load -> fn -> save cycle
func (t *csvTable[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	return t.dir.WithLock(ctx, t.file, func() error {
		records, err := t.load()
		if err != nil {
			return err
		}

		updated, err := fn(records)
		if err != nil {
			return err
		}

		return t.save(updated)
	})
}

func (t *csvTable[T]) load() (records []T, err error) {
	started := time.Now()
	defer func() {
		t.dir.Observe(t.file, "load", len(records), started, err)
		t.logger.LogStoreOperation(t.file, "load", len(records), msSince(started), err)
	}()

	f, err := t.dir.Open(t.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}
	defer f.Close()

	return t.decodeAll(f)
}

func (t *csvTable[T]) decodeAll(src io.Reader) ([]T, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []T{}, nil
	}
	if err != nil {
		return nil, t.readError(err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range t.schema.required {
		if _, ok := cols[name]; !ok {
			return nil, &entities.MalformedRecordError{File: t.file, Line: 1, Column: name, Err: errors.New("missing column")}
		}
	}
	_, hasID := cols["id"]

	records := []T{}
	seen := make(map[int]int)
	for {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, t.readError(err)
		}

		line, _ := reader.FieldPos(0)
		r := &row{file: t.file, line: line, cols: cols, values: values}
		rec := t.schema.decode(r)
		if r.err != nil {
			return nil, r.err
		}

		if !hasID && t.schema.positionalIDs {
			rec = rec.WithRecordID(len(records) + 1)
		}
		if err := t.validateLoaded(rec); err != nil {
			return nil, &entities.MalformedRecordError{File: t.file, Line: line, Err: err}
		}
		if hasID {
			if first, dup := seen[rec.RecordID()]; dup {
				return nil, &entities.MalformedRecordError{
					File:   t.file,
					Line:   line,
					Column: "id",
					Value:  strconv.Itoa(rec.RecordID()),
					Err:    fmt.Errorf("duplicate id, first seen at line %d", first),
				}
			}
			seen[rec.RecordID()] = line
		}

		records = append(records, rec)
	}

	return records, nil
}

func (t *csvTable[T]) validateLoaded(rec T) error {
	if t.schema.validate != nil {
		return t.schema.validate(rec)
	}
	return rec.Validate()
}

func (t *csvTable[T]) readError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &entities.MalformedRecordError{File: t.file, Line: perr.Line, Err: perr.Err}
	}
	return fmt.Errorf("reading %s: %v: %w", t.file, err, entities.ErrStoreUnavailable)
}

func (t *csvTable[T]) save(records []T) (err error) {
	started := time.Now()
	defer func() {
		t.dir.Observe(t.file, "save", len(records), started, err)
		t.logger.LogStoreOperation(t.file, "save", len(records), msSince(started), err)
	}()

	return t.dir.WriteAtomic(t.file, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.schema.header); err != nil {
			return fmt.Errorf("writing header: %v: %w", err, entities.ErrStoreUnavailable)
		}
		for _, rec := range records {
			if err := cw.Write(t.schema.encode(rec)); err != nil {
				return fmt.Errorf("writing record %d: %v: %w", rec.RecordID(), err, entities.ErrStoreUnavailable)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing csv: %v: %w", err, entities.ErrStoreUnavailable)
		}
		return nil
	})
}

// row gives typed access to one CSV record by column name. The first
// conversion failure is kept in err and later calls become no-ops.
type row struct {
	file   string
	line   int
	cols   map[string]int
	values []string
	err    error
}

func (r *row) Has(col string) bool {
	i, ok := r.cols[col]
	return ok && i < len(r.values)
}

func (r *row) Text(col string) string {
	if r.err != nil {
		return ""
	}
	i, ok := r.cols[col]
	if !ok {
		return ""
	}
	if i >= len(r.values) {
		r.fail(col, "", errors.New("missing value"))
		return ""
	}
	return r.values[i]
}

func (r *row) Int(col string) int {
	v := r.Text(col)
	if r.err != nil || !r.Has(col) {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(col, v, err)
		return 0
	}
	return n
}

func (r *row) Float(col string) float64 {
	v := r.Text(col)
	if r.err != nil || !r.Has(col) {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, v, err)
		return 0
	}
	return f
}

func (r *row) Bool(col string) bool {
	return entities.ParseBool(r.Text(col))
}

func (r *row) fail(col, value string, err error) {
	r.err = &entities.MalformedRecordError{File: r.file, Line: r.line, Column: col, Value: value, Err: err}
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Nanoseconds()) / 1000000
}
