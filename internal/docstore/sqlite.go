package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	body       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, seq);
`

// SQLite stores documents as JSON rows in a single table keyed by
// collection name. Filtering happens in process with Matches, so it keeps
// the same array-membership semantics as MongoDB.
type SQLite struct {
	db   *sql.DB
	name string
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path, name string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1) // Single writer

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &SQLite{db: db, name: name}, nil
}

func (s *SQLite) Name() string { return s.name }

func (s *SQLite) Collection(name string) Collection {
	return &sqliteCollection{db: s.db, name: name}
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close(ctx context.Context) error { return s.db.Close() }

type sqliteCollection struct {
	db   *sql.DB
	name string
}

type sqliteRow struct {
	seq int64
	doc Document
}

func (c *sqliteCollection) Name() string { return c.name }

func (c *sqliteCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	rows, err := c.scan(ctx, c.db)
	if err != nil {
		return nil, err
	}
	var out []Document
	for _, r := range rows {
		if Matches(r.doc, filter) {
			out = append(out, StripID(r.doc))
		}
	}
	return out, nil
}

func (c *sqliteCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	if len(filter) == 0 {
		var n int64
		err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE collection = ?", c.name).Scan(&n)
		return n, err
	}
	docs, err := c.Find(ctx, filter)
	return int64(len(docs)), err
}

func (c *sqliteCollection) InsertMany(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO documents (collection, body) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range docs {
		body, err := json.Marshal(StripID(d))
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, c.name, string(body)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *sqliteCollection) UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	rows, err := c.scan(ctx, tx)
	if err != nil {
		return false, err
	}

	for _, r := range rows {
		if !Matches(r.doc, filter) {
			continue
		}
		for k, v := range Clone(set) {
			r.doc[k] = v
		}
		body, err := json.Marshal(r.doc)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE documents SET body = ? WHERE seq = ?", string(body), r.seq); err != nil {
			return false, err
		}
		return true, tx.Commit()
	}

	if !upsert {
		return false, nil
	}
	doc := Clone(Document(filter))
	for k, v := range Clone(set) {
		doc[k] = v
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO documents (collection, body) VALUES (?, ?)", c.name, string(body)); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (c *sqliteCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if len(filter) == 0 {
		res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE collection = ?", c.name)
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		return n, tx.Commit()
	}

	rows, err := c.scan(ctx, tx)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, r := range rows {
		if !Matches(r.doc, filter) {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE seq = ?", r.seq); err != nil {
			return 0, err
		}
		removed++
	}
	return removed, tx.Commit()
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (c *sqliteCollection) scan(ctx context.Context, q queryer) ([]sqliteRow, error) {
	rows, err := q.QueryContext(ctx, "SELECT seq, body FROM documents WHERE collection = ? ORDER BY seq", c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sqliteRow
	for rows.Next() {
		var (
			seq  int64
			body string
		)
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(body)))
		dec.UseNumber()
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("corrupt document %d in %s: %w", seq, c.name, err)
		}
		out = append(out, sqliteRow{seq: seq, doc: normalizeDoc(doc)})
	}
	return out, rows.Err()
}
