package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

var llmEventColumns = []string{
	"id", "created_at", "provider", "model", "purpose", "trace",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo using ent's SQL builders.
type eventRepo struct {
	drv *entsql.Driver
	db  *sql.DB
}

func builder() *entsql.DialectBuilder { return entsql.Dialect(dialect.SQLite) }

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().Insert(llmEventsTable).
		Columns(
			"created_at", "provider", "model", "purpose", "trace",
			"input_tokens", "output_tokens", "latency_ms", "success",
			"error_message", "request_body", "response_body",
		).
		Values(
			time.Now().UTC().UnixMilli(), data.Provider, data.Model, data.Purpose, data.Trace,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	b := builder()
	sel := b.Select(llmEventColumns...).
		From(b.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Trace != "" {
		preds = append(preds, entsql.EQ("trace", opts.Trace))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	b := builder()
	query, args := b.Select(llmEventColumns...).
		From(b.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "purpose", func(u *LLMUsage, key string) { u.Purpose = key })
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usageBy(ctx, "model", func(u *LLMUsage, key string) { u.Model = key })
}

// usageBy aggregates all calls grouped by column. setKey stores the group
// value on each row.
func (r *eventRepo) usageBy(ctx context.Context, column string, setKey func(*LLMUsage, string)) ([]LLMUsage, error) {
	b := builder()
	query, args := b.Select(
		column,
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(input_tokens), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(output_tokens), 0)", "output_tokens"),
		entsql.As("CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)", "avg_latency_ms"),
	).
		From(b.Table(llmEventsTable)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u   LLMUsage
			key string
		)
		if err := rows.Scan(&key, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		setKey(&u, key)
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var (
		e         LLMEvent
		createdAt int64
	)
	err := row.Scan(
		&e.ID, &createdAt, &e.Provider, &e.Model, &e.Purpose, &e.Trace,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(createdAt).UTC()
	return &e, nil
}
