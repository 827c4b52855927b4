package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS bills (
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	position INTEGER NOT NULL,
	source_file TEXT NOT NULL,
	bill_no TEXT NOT NULL DEFAULT '',
	proposal_no TEXT NOT NULL DEFAULT '',
	bill_name TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	proposers TEXT NOT NULL DEFAULT '[]',
	cosigners TEXT NOT NULL DEFAULT '[]',
	progress TEXT NOT NULL DEFAULT '',
	categories TEXT NOT NULL DEFAULT '[]',
	ai_analysis TEXT NOT NULL DEFAULT '',
	batch_id TEXT NOT NULL,
	PRIMARY KEY (year, month, position)
);

CREATE TABLE IF NOT EXISTS bill_articles (
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	position INTEGER NOT NULL,
	idx INTEGER NOT NULL,
	modified_text TEXT NOT NULL DEFAULT '',
	current_text TEXT NOT NULL DEFAULT '',
	explanation TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (year, month, position, idx)
);

CREATE TABLE IF NOT EXISTS legislators (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	party TEXT NOT NULL
);`

// SQLArchive stores monthly snapshots in SQLite or Postgres.
type SQLArchive struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.BillArchive = (*SQLArchive)(nil)

// OpenSQLArchive opens dsn, picking the pgx driver for postgres URLs and
// SQLite otherwise, and creates the schema when missing.
func OpenSQLArchive(ctx context.Context, dsn string) (*SQLArchive, error) {
	driver := "sqlite"
	var placeholder sq.PlaceholderFormat = sq.Question
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver, placeholder = "pgx", sq.Dollar
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == "sqlite" {
		// a single connection keeps ":memory:" databases shared across calls
		db.SetMaxOpenConns(1)
	} else {
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetMaxOpenConns(20)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return NewSQLArchive(db, placeholder), nil
}

// NewSQLArchive wraps an open database with an initialised schema.
func NewSQLArchive(db *sql.DB, placeholder sq.PlaceholderFormat) *SQLArchive {
	return &SQLArchive{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Close releases the database.
func (a *SQLArchive) Close() error {
	return a.db.Close()
}

// Months lists archived months, newest first.
func (a *SQLArchive) Months(ctx context.Context) ([]domain.MonthRef, error) {
	query, args, err := a.builder.Select("year", "month").
		Distinct().
		From("bills").
		OrderBy("year DESC", "month DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build months query: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query months: %w", err)
	}
	defer rows.Close()

	var months []domain.MonthRef
	for rows.Next() {
		var m domain.MonthRef
		if err := rows.Scan(&m.Year, &m.Month); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return months, nil
}

// LoadMonth reads one archived month in its original order.
func (a *SQLArchive) LoadMonth(ctx context.Context, month domain.MonthRef) ([]domain.Bill, error) {
	bills, err := a.loadBills(ctx, month)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, fmt.Errorf("month %s: %w", month.Label(), domain.ErrNotFound)
	}
	if err := a.loadArticles(ctx, month, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (a *SQLArchive) loadBills(ctx context.Context, month domain.MonthRef) ([]domain.Bill, error) {
	query, args, err := a.builder.
		Select("source_file", "bill_no", "proposal_no", "bill_name", "reason",
			"proposers", "cosigners", "progress", "categories", "ai_analysis").
		From("bills").
		Where(sq.Eq{"year": month.Year, "month": month.Month}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bills query: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var (
			b                                domain.Bill
			proposers, cosigners, categories string
		)
		if err := rows.Scan(&b.SourceFile, &b.BillNo, &b.ProposalNo, &b.BillName, &b.Reason,
			&proposers, &cosigners, &b.Progress, &categories, &b.AIAnalysis); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if err := errors.Join(
			json.Unmarshal([]byte(proposers), &b.Proposers),
			json.Unmarshal([]byte(cosigners), &b.Cosigners),
			json.Unmarshal([]byte(categories), &b.Categories),
		); err != nil {
			return nil, fmt.Errorf("decode bill %s: %w", b.SourceFile, err)
		}
		b.Normalize()
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return bills, nil
}

func (a *SQLArchive) loadArticles(ctx context.Context, month domain.MonthRef, bills []domain.Bill) error {
	query, args, err := a.builder.
		Select("position", "modified_text", "current_text", "explanation").
		From("bill_articles").
		Where(sq.Eq{"year": month.Year, "month": month.Month}).
		OrderBy("position", "idx").
		ToSql()
	if err != nil {
		return fmt.Errorf("build articles query: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos   int
			entry domain.ArticleEntry
		)
		if err := rows.Scan(&pos, &entry.ModifiedText, &entry.CurrentText, &entry.Explanation); err != nil {
			return fmt.Errorf("scan article: %w", err)
		}
		if pos < 0 || pos >= len(bills) {
			return fmt.Errorf("article references missing bill position %d", pos)
		}
		bills[pos].ComparisonTable = append(bills[pos].ComparisonTable, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	return nil
}

// Legislators reads the archived roster. An empty roster is ErrNotFound.
func (a *SQLArchive) Legislators(ctx context.Context) ([]domain.Legislator, error) {
	query, args, err := a.builder.Select("name", "party").From("legislators").OrderBy("position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build legislators query: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query legislators: %w", err)
	}
	defer rows.Close()

	var legislators []domain.Legislator
	for rows.Next() {
		var l domain.Legislator
		if err := rows.Scan(&l.Name, &l.Party); err != nil {
			return nil, fmt.Errorf("scan legislator: %w", err)
		}
		legislators = append(legislators, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	if len(legislators) == 0 {
		return nil, fmt.Errorf("legislators: %w", domain.ErrNotFound)
	}
	return legislators, nil
}

// SaveMonth replaces one archived month inside a transaction.
func (a *SQLArchive) SaveMonth(ctx context.Context, month domain.MonthRef, bills []domain.Bill, batchID string) error {
	return a.inTx(ctx, func(tx *sql.Tx) error {
		monthFilter := sq.Eq{"year": month.Year, "month": month.Month}
		for _, table := range []string{"bill_articles", "bills"} {
			if err := a.exec(ctx, tx, a.builder.Delete(table).Where(monthFilter)); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for pos, b := range bills {
			b.Normalize()
			proposers, _ := json.Marshal(b.Proposers)
			cosigners, _ := json.Marshal(b.Cosigners)
			categories, _ := json.Marshal(b.Categories)

			insert := a.builder.Insert("bills").
				Columns("year", "month", "position", "source_file", "bill_no", "proposal_no", "bill_name",
					"reason", "proposers", "cosigners", "progress", "categories", "ai_analysis", "batch_id").
				Values(month.Year, month.Month, pos, b.SourceFile, b.BillNo, b.ProposalNo, b.BillName,
					b.Reason, string(proposers), string(cosigners), b.Progress, string(categories), b.AIAnalysis, batchID)
			if err := a.exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert bill %s: %w", b.SourceFile, err)
			}

			if len(b.ComparisonTable) == 0 {
				continue
			}
			articles := a.builder.Insert("bill_articles").
				Columns("year", "month", "position", "idx", "modified_text", "current_text", "explanation")
			for idx, entry := range b.ComparisonTable {
				articles = articles.Values(month.Year, month.Month, pos, idx, entry.ModifiedText, entry.CurrentText, entry.Explanation)
			}
			if err := a.exec(ctx, tx, articles); err != nil {
				return fmt.Errorf("insert articles of %s: %w", b.SourceFile, err)
			}
		}
		return nil
	})
}

// SaveLegislators replaces the archived roster.
func (a *SQLArchive) SaveLegislators(ctx context.Context, legislators []domain.Legislator) error {
	return a.inTx(ctx, func(tx *sql.Tx) error {
		if err := a.exec(ctx, tx, a.builder.Delete("legislators")); err != nil {
			return fmt.Errorf("clear legislators: %w", err)
		}
		if len(legislators) == 0 {
			return nil
		}
		insert := a.builder.Insert("legislators").Columns("position", "name", "party")
		for pos, l := range legislators {
			insert = insert.Values(pos, l.Name, l.Party)
		}
		if err := a.exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert legislators: %w", err)
		}
		return nil
	})
}

func (a *SQLArchive) exec(ctx context.Context, tx *sql.Tx, stmt sq.Sqlizer) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func (a *SQLArchive) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
