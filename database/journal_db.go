package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация пула соединений журнала
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JournalDB база журнала запусков обработки
// Хранит только метаданные запусков, строки файлов не сохраняются
type JournalDB struct {
	conn *sql.DB
}

// RunRow строка таблицы runs
type RunRow struct {
	ID            string
	Kind          string
	RequestID     string
	PrimaryFile   string
	SecondaryFile string
	InputRows     int
	OutputRows    int
	Summary       string // JSON
	Status        string
	ErrorMessage  string
	StartedAt     time.Time
	DurationMs    int64
}

var journalMigrations = []migration{
	{
		name: "001_create_runs",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					kind TEXT NOT NULL,
					request_id TEXT,
					primary_file TEXT,
					secondary_file TEXT,
					input_rows INTEGER NOT NULL DEFAULT 0,
					output_rows INTEGER NOT NULL DEFAULT 0,
					summary TEXT,
					status TEXT NOT NULL,
					error_message TEXT,
					started_at TIMESTAMP NOT NULL,
					duration_ms INTEGER NOT NULL DEFAULT 0
				)
			`)
			return err
		},
	},
	{
		name: "002_runs_started_at_index",
		up: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_runs_kind_started ON runs(kind, started_at DESC)`)
			return err
		},
	},
}

// NewJournalDB открывает журнал с настройками пула по умолчанию
func NewJournalDB(dbPath string) (*JournalDB, error) {
	return NewJournalDBWithConfig(dbPath, DBConfig{})
}

// isInMemory определяет, что путь относится к in-memory SQLite
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	// Формат file:memdb?mode=memory&cache=shared также хранит БД в памяти
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewJournalDBWithConfig открывает журнал и применяет миграции
func NewJournalDBWithConfig(dbPath string, config DBConfig) (*JournalDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// Для in-memory SQLite нужно ровно одно соединение,
	// иначе каждое новое соединение получит пустую БД без таблиц
	if isInMemory(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	// WAL позволяет читать журнал параллельно с записью
	if !isInMemory(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			log.Printf("[JournalDB] Warning: Failed to enable WAL mode: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := applyMigrations(ctx, conn, journalMigrations); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &JournalDB{conn: conn}, nil
}

// Close закрывает подключение
func (db *JournalDB) Close() error {
	return db.conn.Close()
}

// Ping проверяет подключение к базе данных
func (db *JournalDB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// GetDB возвращает указатель на sql.DB для прямого доступа
func (db *JournalDB) GetDB() *sql.DB {
	return db.conn
}

// InsertRun добавляет запись о запуске
func (db *JournalDB) InsertRun(ctx context.Context, row RunRow) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO runs (id, kind, request_id, primary_file, secondary_file, input_rows, output_rows,
			summary, status, error_message, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.Kind, row.RequestID, row.PrimaryFile, row.SecondaryFile, row.InputRows, row.OutputRows,
		row.Summary, row.Status, row.ErrorMessage, row.StartedAt.UTC(), row.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", row.ID, err)
	}
	return nil
}

// ListRuns возвращает последние запуски, новые первыми
// Пустой kind означает все виды обработки
func (db *JournalDB) ListRuns(ctx context.Context, kind string, limit int) ([]RunRow, error) {
	query := `
		SELECT id, kind, request_id, primary_file, secondary_file, input_rows, output_rows,
			summary, status, error_message, started_at, duration_ms
		FROM runs`
	var args []interface{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var row RunRow
		var requestID, primary, secondary, summary, errorMessage sql.NullString
		if err := rows.Scan(&row.ID, &row.Kind, &requestID, &primary, &secondary, &row.InputRows,
			&row.OutputRows, &summary, &row.Status, &errorMessage, &row.StartedAt, &row.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		row.RequestID = nullString(requestID)
		row.PrimaryFile = nullString(primary)
		row.SecondaryFile = nullString(secondary)
		row.Summary = nullString(summary)
		row.ErrorMessage = nullString(errorMessage)
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountRuns возвращает количество запусков по виду обработки
func (db *JournalDB) CountRuns(ctx context.Context) (map[string]int64, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT kind, COUNT(*) FROM runs GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			kind  string
			count int64
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan run count: %w", err)
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
