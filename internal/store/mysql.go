package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// mysqlClient maps the record-store contract onto a MySQL schema where each
// entity is a table and field names are columns. It exists so the platform
// can run against its own database instead of the hosted store.
type mysqlClient struct {
	db *sql.DB
}

// NewMySQLClient creates a record-store client backed by a MySQL database.
func NewMySQLClient(db *sql.DB) *mysqlClient {
	return &mysqlClient{
		db: db,
	}
}

// columnName maps a wire field name to its column. The store-managed fields
// use Go-style capitalized names on the wire but plain columns in SQL.
func columnName(field string) string {
	switch field {
	case FieldID:
		return "id"
	case FieldName:
		return "name"
	case FieldTags:
		return "tags"
	default:
		return field
	}
}

func fieldName(column string) string {
	switch column {
	case "id":
		return FieldID
	case "name":
		return FieldName
	case "tags":
		return FieldTags
	default:
		return column
	}
}

func quote(identifier string) string {
	return "`" + identifier + "`"
}

// selectColumns builds the projected column list, always leading with id.
func selectColumns(fields []string) []string {
	columns := []string{"id"}
	for _, field := range fields {
		if field == FieldID {
			continue
		}
		columns = append(columns, columnName(field))
	}
	return columns
}

func (c *mysqlClient) List(ctx context.Context, entity string, q Query) ([]Fields, error) {
	columns := selectColumns(q.Fields)
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quote(column)
	}

	var whereClauses []string
	var args []any
	for _, f := range q.Where {
		if f.Operator != OperatorEqualTo {
			return nil, fmt.Errorf("unsupported filter operator: %s", f.Operator)
		}
		if len(f.Values) == 1 {
			whereClauses = append(whereClauses, quote(columnName(f.Field))+" = ?")
			args = append(args, f.Values[0])
			continue
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(f.Values)), ", ")
		whereClauses = append(whereClauses, quote(columnName(f.Field))+" IN ("+placeholders+")")
		args = append(args, f.Values...)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Default to id order so repeated listings are deterministic.
	orderClause := "ORDER BY " + quote("id")
	if len(q.OrderBy) > 0 {
		var parts []string
		for _, s := range q.OrderBy {
			direction := "ASC"
			if s.Desc {
				direction = "DESC"
			}
			parts = append(parts, quote(columnName(s.Field))+" "+direction)
		}
		orderClause = "ORDER BY " + strings.Join(parts, ", ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s",
		strings.Join(quoted, ", "), quote(entity), whereClause, orderClause)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	var records []Fields
	for rows.Next() {
		record, err := scanRecord(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", entity, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func (c *mysqlClient) GetByID(ctx context.Context, entity string, id int, fields []string) (Fields, error) {
	columns := selectColumns(fields)
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quote(column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1",
		strings.Join(quoted, ", "), quote(entity), quote("id"))

	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", entity, err)
		}
		return nil, fmt.Errorf("%w: %s with Id %d does not exist", ErrNotFound, entity, id)
	}

	record, err := scanRecord(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s row: %w", entity, err)
	}
	return record, nil
}

func (c *mysqlClient) Create(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	results := make([]Result, len(records))
	for i, record := range records {
		keys := sortedKeys(record, true)
		columns := make([]string, len(keys))
		args := make([]any, len(keys))
		for j, key := range keys {
			columns[j] = quote(columnName(key))
			args[j] = record[key]
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quote(entity), strings.Join(columns, ", "), placeholders)

		result, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}
		id, err := result.LastInsertId()
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}

		created := cloneFields(record)
		created[FieldID] = int(id)
		results[i] = Result{Success: true, Data: created}
	}
	return results, nil
}

func (c *mysqlClient) Update(ctx context.Context, entity string, records []Fields) ([]Result, error) {
	results := make([]Result, len(records))
	for i, record := range records {
		id, ok := intValue(record[FieldID])
		if !ok {
			results[i] = Result{Success: false, Message: "record is missing an Id"}
			continue
		}

		keys := sortedKeys(record, true)
		if len(keys) == 0 {
			// Nothing to change; the hosted store still returns the full record.
			updated, err := c.fetchRow(ctx, entity, id)
			if err != nil {
				results[i] = Result{Success: false, Message: err.Error()}
				continue
			}
			results[i] = Result{Success: true, Data: updated}
			continue
		}

		setParts := make([]string, len(keys))
		args := make([]any, 0, len(keys)+1)
		for j, key := range keys {
			setParts[j] = quote(columnName(key)) + " = ?"
			args = append(args, record[key])
		}
		args = append(args, id)

		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			quote(entity), strings.Join(setParts, ", "), quote("id"))

		result, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}
		if _, err := result.RowsAffected(); err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}

		// Callers get the full record back, not just the patch.
		updated, err := c.fetchRow(ctx, entity, id)
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}
		results[i] = Result{Success: true, Data: updated}
	}
	return results, nil
}

// fetchRow reads one full record by id, with columns discovered from the
// result set.
func (c *mysqlClient) fetchRow(ctx context.Context, entity string, id int) (Fields, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? LIMIT 1", quote(entity), quote("id"))

	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", entity, err)
		}
		return nil, fmt.Errorf("record with Id %d does not exist", id)
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	record, err := scanRecord(rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s row: %w", entity, err)
	}
	return record, nil
}

func (c *mysqlClient) Delete(ctx context.Context, entity string, ids []int) ([]Result, error) {
	results := make([]Result, len(ids))
	for i, id := range ids {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(entity), quote("id"))

		result, err := c.db.ExecContext(ctx, query, id)
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}
		affected, err := result.RowsAffected()
		if err != nil {
			results[i] = Result{Success: false, Message: err.Error()}
			continue
		}
		if affected == 0 {
			results[i] = Result{Success: false, Message: fmt.Sprintf("record with Id %d does not exist", id)}
			continue
		}

		results[i] = Result{Success: true}
	}
	return results, nil
}

// scanRecord reads the current row into a Fields map keyed by wire names.
func scanRecord(rows *sql.Rows, columns []string) (Fields, error) {
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	record := make(Fields, len(columns))
	for i, column := range columns {
		value := values[i]
		if b, ok := value.([]byte); ok {
			value = string(b)
		}
		record[fieldName(column)] = value
	}
	return record, nil
}

// sortedKeys returns the record's field names in a stable order so generated
// SQL is deterministic. Id is skipped when excludeID is set.
func sortedKeys(record Fields, excludeID bool) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		if excludeID && key == FieldID {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
