// Package datastore materializes and reloads a dataset bundle as flat
// delimited text with header rows, the exchange format consumed by the
// external presentation layer. Dates are ISO-8601.
package datastore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/shoplytics/shoplytics/internal/models"
)

// ErrMissingDataset reports that a requested persisted dataset is absent.
// Callers degrade to an empty dataset instead of crashing.
var ErrMissingDataset = errors.New("datastore: dataset file missing")

// File names of the persisted bundle.
const (
	UsersFile    = "users.csv"
	ProductsFile = "products.csv"
	EventsFile   = "events.csv"
)

var usersHeader = []string{"user_id", "registration_date", "age", "gender", "location", "segment"}
var productsHeader = []string{"product_id", "product_name", "category", "price"}
var eventsHeader = []string{"event_id", "user_id", "session_id", "event_type", "timestamp", "product_id", "category", "price", "quantity"}

// WriteBundle materializes the three record streams into dir, creating it if
// needed. Files are fully rewritten; a partial bundle is never left behind
// on a clean filesystem.
func WriteBundle(dir string, ds *models.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("datastore: create dir: %w", err)
	}
	if err := writeCSV(filepath.Join(dir, UsersFile), usersHeader, len(ds.Users), func(i int) []string {
		u := ds.Users[i]
		return []string{
			u.UserID,
			u.RegistrationDate.UTC().Format("2006-01-02"),
			strconv.Itoa(u.Age),
			u.Gender,
			u.Location,
			string(u.Segment),
		}
	}); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, ProductsFile), productsHeader, len(ds.Products), func(i int) []string {
		p := ds.Products[i]
		return []string{
			p.ProductID,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
		}
	}); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, EventsFile), eventsHeader, len(ds.Events), func(i int) []string {
		ev := ds.Events[i]
		row := []string{
			ev.EventID,
			ev.UserID,
			ev.SessionID,
			string(ev.Type),
			ev.Timestamp.UTC().Format(time.RFC3339),
			"", "", "", "",
		}
		if ev.HasProduct() {
			row[5] = ev.ProductID
			row[6] = ev.Category
			row[7] = strconv.FormatFloat(ev.Price, 'f', 2, 64)
			if ev.Type != models.EventProductView {
				row[8] = strconv.Itoa(ev.Quantity)
			}
		}
		return row
	})
}

// ReadBundle loads a previously materialized bundle from dir. A missing file
// yields ErrMissingDataset. The reloaded bundle gets a fresh run ID; the
// original seed is not recoverable from the flat files.
func ReadBundle(dir string) (*models.Dataset, error) {
	ds := &models.Dataset{RunID: uuid.New().String()}

	if err := readCSV(filepath.Join(dir, UsersFile), len(usersHeader), func(row []string) error {
		reg, err := time.Parse("2006-01-02", row[1])
		if err != nil {
			return fmt.Errorf("registration_date: %w", err)
		}
		age, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("age: %w", err)
		}
		ds.Users = append(ds.Users, models.User{
			UserID:           row[0],
			RegistrationDate: reg,
			Age:              age,
			Gender:           row[3],
			Location:         row[4],
			Segment:          models.UserSegment(row[5]),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readCSV(filepath.Join(dir, ProductsFile), len(productsHeader), func(row []string) error {
		price, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		ds.Products = append(ds.Products, models.Product{
			ProductID: row[0],
			Name:      row[1],
			Category:  row[2],
			Price:     price,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readCSV(filepath.Join(dir, EventsFile), len(eventsHeader), func(row []string) error {
		ts, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		ev := models.Event{
			EventID:   row[0],
			UserID:    row[1],
			SessionID: row[2],
			Type:      models.EventType(row[3]),
			Timestamp: ts,
			ProductID: row[5],
			Category:  row[6],
		}
		if row[7] != "" {
			if ev.Price, err = strconv.ParseFloat(row[7], 64); err != nil {
				return fmt.Errorf("price: %w", err)
			}
		}
		if row[8] != "" {
			if ev.Quantity, err = strconv.Atoi(row[8]); err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
		}
		ds.Events = append(ds.Events, ev)
		return nil
	}); err != nil {
		return nil, err
	}

	return ds, nil
}

// writeCSV writes a header row plus n records produced by row.
func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("datastore: create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("datastore: write %s: %w", filepath.Base(path), err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("datastore: write %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("datastore: flush %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// readCSV streams records of a header-prefixed CSV file into parse.
func readCSV(path string, fields int, parse func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingDataset, filepath.Base(path))
		}
		return fmt.Errorf("datastore: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("datastore: read %s header: %w", filepath.Base(path), err)
	}
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("datastore: read %s: %w", filepath.Base(path), err)
		}
		line++
		if err := parse(row); err != nil {
			return fmt.Errorf("datastore: %s line %d: %w", filepath.Base(path), line, err)
		}
	}
}
