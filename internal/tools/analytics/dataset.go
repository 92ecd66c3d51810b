// Package analytics exposes dataframe-style analysis tools over a CSV
// dataset held in an in-memory SQLite table.
package analytics

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const tableName = "dataset"

// Dataset is a CSV file loaded into one SQLite table. Numeric columns are
// typed REAL, everything else TEXT; an empty CSV cell becomes NULL.
type Dataset struct {
	db      *sql.DB
	columns []string
	numeric map[string]bool
}

// LoadCSV reads path and builds the backing table. Column types are inferred
// from the data: a column whose every non-empty value parses as a number is
// numeric.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse dataset")
	}
	if len(records) == 0 {
		return nil, errors.New("dataset has no header row")
	}
	return newDataset(records[0], records[1:])
}

func newDataset(header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, errors.New("dataset has no columns")
	}

	// The in-memory database lives on a single connection; a second
	// connection would see a different empty database.
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1)

	d := &Dataset{db: db, columns: header, numeric: inferNumeric(header, rows)}

	defs := make([]string, len(header))
	for i, col := range header {
		typ := "TEXT"
		if d.numeric[col] {
			typ = "REAL"
		}
		defs[i] = quoteIdent(col) + " " + typ
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", tableName, strings.Join(defs, ", "))); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create table")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, placeholders)
	for _, row := range rows {
		args := make([]any, len(header))
		for i := range header {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			switch {
			case cell == "":
				args[i] = nil
			case d.numeric[header[i]]:
				v, _ := strconv.ParseFloat(cell, 64)
				args[i] = v
			default:
				args[i] = cell
			}
		}
		if _, err := db.Exec(insert, args...); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "insert row")
		}
	}
	return d, nil
}

func inferNumeric(header []string, rows [][]string) map[string]bool {
	numeric := make(map[string]bool, len(header))
	for i, col := range header {
		isNum := false
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isNum = false
				break
			}
			isNum = true
		}
		numeric[col] = isNum
	}
	return numeric
}

// Close releases the backing database.
func (d *Dataset) Close() error {
	return d.db.Close()
}

// Columns returns the column names in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

func (d *Dataset) hasColumn(col string) bool {
	for _, c := range d.columns {
		if c == col {
			return true
		}
	}
	return false
}

func (d *Dataset) requireColumn(col string) error {
	if !d.hasColumn(col) {
		return errors.Errorf("column %q not found in dataset", col)
	}
	return nil
}

// Rows returns every row as a column-keyed map, in insertion order.
func (d *Dataset) Rows() ([]map[string]any, error) {
	return d.queryRows(fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", d.selectList(), tableName))
}

// Shape returns (row count, column count).
func (d *Dataset) Shape() (int, int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&n); err != nil {
		return 0, 0, errors.Wrap(err, "count rows")
	}
	return n, len(d.columns), nil
}

// Dtypes reports float64 for numeric columns and object for the rest,
// matching dataframe conventions.
func (d *Dataset) Dtypes() map[string]string {
	out := make(map[string]string, len(d.columns))
	for _, col := range d.columns {
		if d.numeric[col] {
			out[col] = "float64"
		} else {
			out[col] = "object"
		}
	}
	return out
}

// Missing counts NULL cells per column.
func (d *Dataset) Missing() (map[string]int, error) {
	out := make(map[string]int, len(d.columns))
	for _, col := range d.columns {
		var n int
		q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s IS NULL", tableName, quoteIdent(col))
		if err := d.db.QueryRow(q).Scan(&n); err != nil {
			return nil, errors.Wrapf(err, "missing count for %s", col)
		}
		out[col] = n
	}
	return out, nil
}

// ColumnStats is the describe() row for one numeric column.
type ColumnStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Describe computes summary statistics for every numeric column. Std is the
// sample standard deviation; a single-value column reports 0.
func (d *Dataset) Describe() (map[string]ColumnStats, error) {
	out := make(map[string]ColumnStats)
	for _, col := range d.columns {
		if !d.numeric[col] {
			continue
		}
		id := quoteIdent(col)
		q := fmt.Sprintf(
			"SELECT COUNT(%s), COALESCE(AVG(%s), 0), COALESCE(MIN(%s), 0), COALESCE(MAX(%s), 0), COALESCE(SUM(%s*%s), 0) FROM %s",
			id, id, id, id, id, id, tableName)
		var (
			count          int
			mean, min, max float64
			sumsq          float64
		)
		if err := d.db.QueryRow(q).Scan(&count, &mean, &min, &max, &sumsq); err != nil {
			return nil, errors.Wrapf(err, "describe %s", col)
		}
		std := 0.0
		if count > 1 {
			variance := (sumsq - float64(count)*mean*mean) / float64(count-1)
			if variance > 0 {
				std = math.Sqrt(variance)
			}
		}
		out[col] = ColumnStats{Count: count, Mean: mean, Std: std, Min: min, Max: max}
	}
	return out, nil
}

// Unique returns the distinct non-NULL values of col in first-appearance
// order.
func (d *Dataset) Unique(col string) ([]any, error) {
	if err := d.requireColumn(col); err != nil {
		return nil, err
	}
	id := quoteIdent(col)
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY MIN(rowid)",
		id, tableName, id, id)
	rows, err := d.db.Query(q)
	if err != nil {
		return nil, errors.Wrapf(err, "unique %s", col)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ValueCount pairs a value with its occurrence count.
type ValueCount struct {
	Value any `json:"value"`
	Count int `json:"count"`
}

// ValueCounts returns per-value counts for col, most frequent first.
func (d *Dataset) ValueCounts(col string) ([]ValueCount, error) {
	if err := d.requireColumn(col); err != nil {
		return nil, err
	}
	id := quoteIdent(col)
	q := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY COUNT(*) DESC, MIN(rowid)",
		id, tableName, id, id)
	rows, err := d.db.Query(q)
	if err != nil {
		return nil, errors.Wrapf(err, "value_counts %s", col)
	}
	defer rows.Close()

	var out []ValueCount
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, err
		}
		out = append(out, vc)
	}
	return out, rows.Err()
}

// DropNA deletes every row holding at least one NULL cell and returns the
// surviving rows.
func (d *Dataset) DropNA() ([]map[string]any, error) {
	conds := make([]string, len(d.columns))
	for i, col := range d.columns {
		conds[i] = quoteIdent(col) + " IS NULL"
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s", tableName, strings.Join(conds, " OR "))
	if _, err := d.db.Exec(q); err != nil {
		return nil, errors.Wrap(err, "dropna")
	}
	return d.Rows()
}

// DropDuplicates keeps the first occurrence of each fully identical row and
// returns the surviving rows.
func (d *Dataset) DropDuplicates() ([]map[string]any, error) {
	cols := make([]string, len(d.columns))
	for i, col := range d.columns {
		cols[i] = quoteIdent(col)
	}
	group := strings.Join(cols, ", ")
	q := fmt.Sprintf("DELETE FROM %s WHERE rowid NOT IN (SELECT MIN(rowid) FROM %s GROUP BY %s)",
		tableName, tableName, group)
	if _, err := d.db.Exec(q); err != nil {
		return nil, errors.Wrap(err, "drop_duplicates")
	}
	return d.Rows()
}

// Filter returns the rows where col compares true against value. op is one
// of filter_gt, filter_eq, filter_lt.
func (d *Dataset) Filter(op, col string, value float64) ([]map[string]any, error) {
	if err := d.requireColumn(col); err != nil {
		return nil, err
	}
	cmp, ok := map[string]string{
		"filter_gt": ">",
		"filter_eq": "=",
		"filter_lt": "<",
	}[op]
	if !ok {
		return nil, errors.Errorf("unsupported operation: %s", op)
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s %s ? ORDER BY rowid",
		d.selectList(), tableName, quoteIdent(col), cmp)
	return d.queryRows(q, value)
}

// GroupResult pairs a group key with its aggregate value.
type GroupResult struct {
	Group any `json:"group"`
	Value any `json:"value"`
}

// GroupAgg aggregates target per distinct value of group. op is one of
// mean, max, sum, count.
func (d *Dataset) GroupAgg(op, group, target string) ([]GroupResult, error) {
	if err := d.requireColumn(group); err != nil {
		return nil, err
	}
	if err := d.requireColumn(target); err != nil {
		return nil, err
	}
	agg, ok := map[string]string{
		"mean":  "AVG",
		"max":   "MAX",
		"sum":   "SUM",
		"count": "COUNT",
	}[op]
	if !ok {
		return nil, errors.Errorf("unsupported operation: %s", op)
	}
	gid, tid := quoteIdent(group), quoteIdent(target)
	q := fmt.Sprintf("SELECT %s, %s(%s) FROM %s GROUP BY %s ORDER BY MIN(rowid)",
		gid, agg, tid, tableName, gid)
	rows, err := d.db.Query(q)
	if err != nil {
		return nil, errors.Wrapf(err, "group %s by %s", target, group)
	}
	defer rows.Close()

	var out []GroupResult
	for rows.Next() {
		var gr GroupResult
		if err := rows.Scan(&gr.Group, &gr.Value); err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, rows.Err()
}

func (d *Dataset) selectList() string {
	cols := make([]string, len(d.columns))
	for i, col := range d.columns {
		cols[i] = quoteIdent(col)
	}
	return strings.Join(cols, ", ")
}

func (d *Dataset) queryRows(q string, args ...any) ([]map[string]any, error) {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query rows")
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		vals := make([]any, len(d.columns))
		ptrs := make([]any, len(d.columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		m := make(map[string]any, len(d.columns))
		for i, col := range d.columns {
			m[col] = vals[i]
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
