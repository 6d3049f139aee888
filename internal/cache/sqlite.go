// Package cache is the persistent time-series store backing the analysis
// pipeline: daily price bars and institutional flows keyed by
// (symbol, date), TTL'd news text blobs, and an append-only query audit
// log. Persistence is best-effort: a failed read degrades to a cache miss
// and a failed write is logged and swallowed, so the pipeline always
// proceeds with the in-memory values it already holds.
package cache

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/twquant/daytrade-core/pkg/types"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// Store is the SQLite-backed cache. A single mutex serializes writes, which
// keeps (symbol, date) upserts last-writer-wins without partial rows.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// Open opens (or creates) the database file and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads do not block pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] cache opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_prices (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			date       TEXT NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     REAL,
			created_at TEXT NOT NULL,
			UNIQUE(symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_prices_symbol_date ON stock_prices(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS institutional_trades (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol           TEXT NOT NULL,
			date             TEXT NOT NULL,
			foreign_investor REAL DEFAULT 0,
			investment_trust REAL DEFAULT 0,
			dealer_self      REAL DEFAULT 0,
			dealer_hedging   REAL DEFAULT 0,
			dealer_total     REAL DEFAULT 0,
			total            REAL DEFAULT 0,
			created_at       TEXT NOT NULL,
			UNIQUE(symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_institutional_symbol_date ON institutional_trades(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS news_cache (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			content    TEXT,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_symbol ON news_cache(symbol, created_at)`,

		`CREATE TABLE IF NOT EXISTS query_logs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			query_type TEXT,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// GetPriceRange returns the stored bars for symbol within [start, end],
// ascending by date. Whether the coverage is sufficient is the caller's
// call; a storage fault reads as an empty result.
func (s *Store) GetPriceRange(symbol string, start, end time.Time) []types.PriceBar {
	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM stock_prices
		WHERE symbol = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		log.Printf("[WARN] cache: read prices for %s: %v", symbol, err)
		return nil
	}
	defer rows.Close()

	var bars []types.PriceBar
	for rows.Next() {
		var dateStr string
		var b types.PriceBar
		if err := rows.Scan(&dateStr, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			log.Printf("[WARN] cache: scan price row for %s: %v", symbol, err)
			return nil
		}
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			log.Printf("[WARN] cache: bad date %q for %s: %v", dateStr, symbol, err)
			return nil
		}
		b.Date = d
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[WARN] cache: iterate prices for %s: %v", symbol, err)
		return nil
	}
	return bars
}

// PutPrices upserts the bars keyed by (symbol, date), overwriting any
// stored row for the same key. Storage faults are logged and swallowed.
func (s *Store) PutPrices(symbol string, bars []types.PriceBar) {
	if len(bars) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("[WARN] cache: begin price write for %s: %v", symbol, err)
		return
	}
	now := s.now().UTC().Format(timeLayout)
	for _, b := range bars {
		_, err := tx.Exec(`INSERT OR REPLACE INTO stock_prices
			(symbol, date, open, high, low, close, volume, created_at)
			VALUES (?,?,?,?,?,?,?,?)`,
			symbol, b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume, now)
		if err != nil {
			tx.Rollback()
			log.Printf("[WARN] cache: write price %s/%s: %v", symbol, b.Date.Format(dateLayout), err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("[WARN] cache: commit prices for %s: %v", symbol, err)
	}
}

// GetInstitutionalRange returns stored institutional rows for symbol within
// [start, end], ascending by date. Faults read as empty.
func (s *Store) GetInstitutionalRange(symbol string, start, end time.Time) []types.InstitutionalFlow {
	rows, err := s.db.Query(`SELECT date, foreign_investor, investment_trust,
			dealer_self, dealer_hedging, dealer_total, total
		FROM institutional_trades
		WHERE symbol = ? AND date BETWEEN ? AND ?
		ORDER BY date`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		log.Printf("[WARN] cache: read institutional for %s: %v", symbol, err)
		return nil
	}
	defer rows.Close()

	var flows []types.InstitutionalFlow
	for rows.Next() {
		var dateStr string
		var f types.InstitutionalFlow
		if err := rows.Scan(&dateStr, &f.ForeignInvestor, &f.InvestmentTrust,
			&f.DealerSelf, &f.DealerHedging, &f.DealerTotal, &f.Total); err != nil {
			log.Printf("[WARN] cache: scan institutional row for %s: %v", symbol, err)
			return nil
		}
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			log.Printf("[WARN] cache: bad date %q for %s: %v", dateStr, symbol, err)
			return nil
		}
		f.Date = d
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[WARN] cache: iterate institutional for %s: %v", symbol, err)
		return nil
	}
	return flows
}

// PutInstitutional upserts institutional rows keyed by (symbol, date) with
// the same last-writer-wins semantics as PutPrices.
func (s *Store) PutInstitutional(symbol string, flows []types.InstitutionalFlow) {
	if len(flows) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("[WARN] cache: begin institutional write for %s: %v", symbol, err)
		return
	}
	now := s.now().UTC().Format(timeLayout)
	for _, f := range flows {
		_, err := tx.Exec(`INSERT OR REPLACE INTO institutional_trades
			(symbol, date, foreign_investor, investment_trust,
			 dealer_self, dealer_hedging, dealer_total, total, created_at)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			symbol, f.Date.Format(dateLayout), f.ForeignInvestor, f.InvestmentTrust,
			f.DealerSelf, f.DealerHedging, f.DealerTotal, f.Total, now)
		if err != nil {
			tx.Rollback()
			log.Printf("[WARN] cache: write institutional %s/%s: %v", symbol, f.Date.Format(dateLayout), err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("[WARN] cache: commit institutional for %s: %v", symbol, err)
	}
}

// GetNews returns the most recent non-expired news blob for symbol.
func (s *Store) GetNews(symbol string) (string, bool) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM news_cache
		WHERE symbol = ? AND expires_at > ?
		ORDER BY created_at DESC
		LIMIT 1`,
		symbol, s.now().UTC().Format(timeLayout)).Scan(&content)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Printf("[WARN] cache: read news for %s: %v", symbol, err)
		return "", false
	}
	return content, true
}

// PutNews inserts a news blob valid for ttl from now. Older rows are left
// in place; Cleanup removes them once expired.
func (s *Store) PutNews(symbol, content string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	_, err := s.db.Exec(`INSERT INTO news_cache (symbol, content, created_at, expires_at)
		VALUES (?,?,?,?)`,
		symbol, content, now.Format(timeLayout), now.Add(ttl).Format(timeLayout))
	if err != nil {
		log.Printf("[WARN] cache: write news for %s: %v", symbol, err)
	}
}

// LogQuery appends one audit row. Queries are best-effort telemetry, not
// business data, so failures never reach the caller.
func (s *Store) LogQuery(symbol, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO query_logs (symbol, query_type, created_at)
		VALUES (?,?,?)`,
		symbol, kind, s.now().UTC().Format(timeLayout))
	if err != nil {
		log.Printf("[WARN] cache: log query %s/%s: %v", symbol, kind, err)
	}
}

// QueryStat is one (symbol, kind) bucket of the audit log.
type QueryStat struct {
	Symbol string
	Kind   string
	Count  int
}

// QueryStats aggregates the audit log over the trailing day window.
func (s *Store) QueryStats(days int) []QueryStat {
	cutoff := s.now().UTC().AddDate(0, 0, -days).Format(timeLayout)
	rows, err := s.db.Query(`SELECT symbol, query_type, COUNT(*)
		FROM query_logs
		WHERE created_at > ?
		GROUP BY symbol, query_type
		ORDER BY COUNT(*) DESC`, cutoff)
	if err != nil {
		log.Printf("[WARN] cache: query stats: %v", err)
		return nil
	}
	defer rows.Close()

	var stats []QueryStat
	for rows.Next() {
		var st QueryStat
		if err := rows.Scan(&st.Symbol, &st.Kind, &st.Count); err != nil {
			log.Printf("[WARN] cache: scan query stat: %v", err)
			return nil
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[WARN] cache: iterate query stats: %v", err)
		return nil
	}
	return stats
}

// Cleanup deletes price, institutional and audit rows older than the
// retention window, plus any already-expired news row.
func (s *Store) Cleanup(retentionDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	dateCutoff := now.AddDate(0, 0, -retentionDays).Format(dateLayout)
	timeCutoff := now.AddDate(0, 0, -retentionDays).Format(timeLayout)

	counts := make(map[string]int64)
	for table, stmt := range map[string]struct {
		query string
		arg   string
	}{
		"stock_prices":         {"DELETE FROM stock_prices WHERE date < ?", dateCutoff},
		"institutional_trades": {"DELETE FROM institutional_trades WHERE date < ?", dateCutoff},
		"news_cache":           {"DELETE FROM news_cache WHERE expires_at < ?", now.Format(timeLayout)},
		"query_logs":           {"DELETE FROM query_logs WHERE created_at < ?", timeCutoff},
	} {
		res, err := s.db.Exec(stmt.query, stmt.arg)
		if err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		counts[table] = n
	}

	log.Printf("[INFO] cache cleanup: prices=%d institutional=%d news=%d logs=%d",
		counts["stock_prices"], counts["institutional_trades"],
		counts["news_cache"], counts["query_logs"])
	return nil
}

// Stats holds per-table row counts.
type Stats struct {
	PriceRows         int
	InstitutionalRows int
	ActiveNewsRows    int
	QueryLogRows      int
}

// DatabaseStats counts the rows in each table; expired news is excluded.
func (s *Store) DatabaseStats() (Stats, error) {
	var st Stats
	now := s.now().UTC().Format(timeLayout)
	queries := []struct {
		query string
		args  []any
		dst   *int
	}{
		{"SELECT COUNT(*) FROM stock_prices", nil, &st.PriceRows},
		{"SELECT COUNT(*) FROM institutional_trades", nil, &st.InstitutionalRows},
		{"SELECT COUNT(*) FROM news_cache WHERE expires_at > ?", []any{now}, &st.ActiveNewsRows},
		{"SELECT COUNT(*) FROM query_logs", nil, &st.QueryLogRows},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query, q.args...).Scan(q.dst); err != nil {
			return Stats{}, fmt.Errorf("count: %w", err)
		}
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing cache")
	return s.db.Close()
}
