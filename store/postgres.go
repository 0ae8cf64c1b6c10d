package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/amonks/mindcache/item"
	"github.com/amonks/mindcache/markup"
)

const notifyChannel = "items_changed"

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         uuid PRIMARY KEY,
	owner      text NOT NULL,
	text       text NOT NULL,
	type       text NOT NULL,
	status     text NOT NULL,
	tags       text[] NOT NULL DEFAULT '{}',
	due_date   text,
	created_at timestamptz NOT NULL,
	subtasks   jsonb,
	notes      jsonb
);
CREATE INDEX IF NOT EXISTS items_owner_created_at ON items (owner, created_at DESC);
CREATE TABLE IF NOT EXISTS tag_colors (
	owner  text PRIMARY KEY,
	colors jsonb NOT NULL
);`

// Postgres stores items in a PostgreSQL database and announces writes with
// NOTIFY so other processes can refetch.
type Postgres struct {
	db  *sql.DB
	dsn string
	now func() time.Time
}

// PostgresOptions configures a Postgres store.
type PostgresOptions struct {
	// Now stamps new items. Defaults to time.Now.
	Now func() time.Time
}

// OpenPostgres connects to dsn and creates the schema if needed.
func OpenPostgres(ctx context.Context, dsn string, opts PostgresOptions) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Postgres{db: db, dsn: dsn, now: now}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the tables if they do not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Postgres) Close() error {
	return s.db.Close()
}

// ListItems returns the owner's items, newest first.
func (s *Postgres) ListItems(ctx context.Context, owner string) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, type, status, tags, due_date, created_at, subtasks, notes
		FROM items WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (item.Item, error) {
	var (
		it       item.Item
		tags     pq.StringArray
		dueDate  sql.NullString
		subtasks []byte
		notes    []byte
	)
	if err := row.Scan(&it.ID, &it.Text, &it.Type, &it.Status, &tags, &dueDate, &it.Timestamp, &subtasks, &notes); err != nil {
		return item.Item{}, fmt.Errorf("scan item: %w", err)
	}
	it.Tags = []string(tags)
	if it.Tags == nil {
		it.Tags = []string{}
	}
	it.DueDate = dueDate.String
	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &it.Subtasks); err != nil {
			return item.Item{}, fmt.Errorf("decode subtasks of %s: %w", it.ID, err)
		}
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &it.Notes); err != nil {
			return item.Item{}, fmt.Errorf("decode notes of %s: %w", it.ID, err)
		}
	}
	return it, nil
}

// jsonbOrNull encodes v for a jsonb column, storing empty slices as NULL.
func jsonbOrNull[T any](v []T) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// InsertItem stores a new item under a random UUID.
func (s *Postgres) InsertItem(ctx context.Context, owner string, parsed item.Parsed) (string, error) {
	subtasks, err := jsonbOrNull(parsed.Subtasks)
	if err != nil {
		return "", fmt.Errorf("encode subtasks: %w", err)
	}
	notes, err := jsonbOrNull(parsed.Notes)
	if err != nil {
		return "", fmt.Errorf("encode notes: %w", err)
	}

	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (id, owner, text, type, status, tags, due_date, created_at, subtasks, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, owner, parsed.Text, string(parsed.Type), string(parsed.Status), pq.StringArray(parsed.Tags),
		nullIfEmpty(parsed.DueDate), s.now(), subtasks, notes)
	if err != nil {
		return "", fmt.Errorf("insert item: %w", err)
	}
	if err := notify(ctx, tx, owner); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// UpdateItem applies a partial update inside a transaction.
func (s *Postgres) UpdateItem(ctx context.Context, id string, update item.Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	row := tx.QueryRowContext(ctx, `
		SELECT owner, id, text, type, status, tags, due_date, created_at, subtasks, notes
		FROM items WHERE id = $1 FOR UPDATE`, id)
	it, err := scanItem(ownerScanner{row: row, owner: &owner})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
		}
		return err
	}

	it = update.Apply(it)
	subtasks, err := jsonbOrNull(it.Subtasks)
	if err != nil {
		return fmt.Errorf("encode subtasks: %w", err)
	}
	notes, err := jsonbOrNull(it.Notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items SET text = $2, type = $3, status = $4, tags = $5, due_date = $6, subtasks = $7, notes = $8
		WHERE id = $1`,
		id, it.Text, string(it.Type), string(it.Status), pq.StringArray(it.Tags), nullIfEmpty(it.DueDate), subtasks, notes)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if err := notify(ctx, tx, owner); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ownerScanner reads a leading owner column before the item columns.
type ownerScanner struct {
	row   *sql.Row
	owner *string
}

func (o ownerScanner) Scan(dest ...any) error {
	return o.row.Scan(append([]any{o.owner}, dest...)...)
}

// DeleteItem removes an item.
func (s *Postgres) DeleteItem(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRowContext(ctx, `DELETE FROM items WHERE id = $1 RETURNING owner`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", item.ErrItemNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := notify(ctx, tx, owner); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CustomTagColors returns the owner's tag colors.
func (s *Postgres) CustomTagColors(ctx context.Context, owner string) (markup.TagColors, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT colors FROM tag_colors WHERE owner = $1`, owner).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return markup.TagColors{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tag colors: %w", err)
	}
	colors := markup.TagColors{}
	if err := json.Unmarshal(raw, &colors); err != nil {
		return nil, fmt.Errorf("decode tag colors: %w", err)
	}
	return colors, nil
}

// SetCustomTagColors replaces the owner's tag colors.
func (s *Postgres) SetCustomTagColors(ctx context.Context, owner string, colors markup.TagColors) error {
	data, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("encode tag colors: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tag_colors (owner, colors) VALUES ($1, $2)
		ON CONFLICT (owner) DO UPDATE SET colors = EXCLUDED.colors`, owner, string(data))
	if err != nil {
		return fmt.Errorf("write tag colors: %w", err)
	}
	if err := notify(ctx, tx, owner); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func notify(ctx context.Context, tx *sql.Tx, owner string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, owner); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Watch listens for change notifications about the owner's items.
func (s *Postgres) Watch(ctx context.Context, owner string) (<-chan item.Event, error) {
	listener := pq.NewListener(s.dsn, time.Second, time.Minute, nil)
	if err := listener.Listen(notifyChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen: %w", err)
	}

	events := make(chan item.Event, 1)
	go func() {
		defer close(events)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}
				// A nil notification follows a reconnect; changes may have been missed.
				if n != nil && n.Extra != owner {
					continue
				}
				select {
				case events <- item.Event{Owner: owner}:
				default:
				}
			}
		}
	}()
	return events, nil
}
