package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "module-gen", Trace: "m1", InputTokens: 100, OutputTokens: 900, LatencyMs: 4000, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "code-eval", Trace: "m1", InputTokens: 50, OutputTokens: 40, LatencyMs: 800, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "code-eval", Trace: "m2", LatencyMs: 200, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Newest first.
	if all[0].ErrorMessage != "boom" || all[2].Purpose != "module-gen" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[2].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event, got %d", len(limited))
	}

	evals, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "code-eval", Trace: "m1"})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(evals) != 1 || evals[0].OutputTokens != 40 {
		t.Fatalf("unexpected filtered result: %+v", evals)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "module-gen", Success: true,
		RequestBody: "[user]\nprint(1)", ResponseBody: `{"language":"Python"}`,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(all) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(all))
	}

	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.ResponseBody != `{"language":"Python"}` {
		t.Fatalf("unexpected response body %q", e.ResponseBody)
	}
	if !e.Success {
		t.Fatal("expected success")
	}

	missing, err := repo.GetLLMEvent(ctx, all[0].ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o", Purpose: "module-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "code-eval", InputTokens: 5, OutputTokens: 5, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "code-eval", InputTokens: 1, OutputTokens: 1, LatencyMs: 100, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	// Ordered by purpose name.
	eval := byPurpose[0]
	if eval.Purpose != "code-eval" || eval.Calls != 2 || eval.InputTokens != 6 || eval.AvgLatencyMs != 200 {
		t.Fatalf("unexpected code-eval usage: %+v", eval)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4o" || byModel[0].OutputTokens != 25 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
