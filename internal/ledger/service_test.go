package ledger

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/smallkid/line-ledger-bot/internal/models"
	"github.com/smallkid/line-ledger-bot/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.RecordStore) {
	t.Helper()
	store := memory.NewRecordStore()
	svc := NewService(store, nil, time.UTC)
	svc.now = func() time.Time {
		return time.Date(2025, 11, 26, 14, 23, 0, 0, time.UTC)
	}
	svc.writer.now = svc.now
	return svc, store
}

func privateEvent(text string) models.InboundEvent {
	return models.InboundEvent{Text: text, SenderID: "U1", Kind: models.ConversationUser}
}

func groupEvent(text, group string) models.InboundEvent {
	return models.InboundEvent{Text: text, SenderID: "U1", Kind: models.ConversationGroup, ConversationID: group}
}

func TestHandleMessageIgnoresChat(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"hello", "100午餐", "早安", ""} {
		out := svc.HandleMessage(ctx, privateEvent(text))
		if out.Kind != models.OutcomeIgnored {
			t.Errorf("HandleMessage(%q).Kind = %v, want OutcomeIgnored", text, out.Kind)
		}
	}

	rows, _ := store.ScanAll(ctx)
	if len(rows) != 0 {
		t.Errorf("ordinary chat wrote %d records, want 0", len(rows))
	}
}

func TestHandleMessageAppliesTransaction(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	out := svc.HandleMessage(ctx, privateEvent("+200午餐"))
	if out.Kind != models.OutcomeApplied {
		t.Fatalf("Kind = %v, want OutcomeApplied", out.Kind)
	}
	if out.Applied.Delta != 200 || out.Applied.Memo != "午餐" {
		t.Errorf("applied = %+v, want delta 200 memo 午餐", out.Applied)
	}
	if out.Applied.Previous != 0 || out.Applied.Balance != 200 {
		t.Errorf("previous/new = %v/%v, want 0/200", out.Applied.Previous, out.Applied.Balance)
	}

	out = svc.HandleMessage(ctx, privateEvent("-50*2交通"))
	if out.Kind != models.OutcomeApplied {
		t.Fatalf("Kind = %v, want OutcomeApplied", out.Kind)
	}
	if out.Applied.Delta != -100 {
		t.Errorf("delta = %v, want -100", out.Applied.Delta)
	}
	if out.Applied.Previous != 200 || out.Applied.Balance != 100 {
		t.Errorf("previous/new = %v/%v, want 200/100", out.Applied.Previous, out.Applied.Balance)
	}

	rows, _ := store.ScanAll(ctx)
	if len(rows) != 2 {
		t.Fatalf("store has %d records, want 2", len(rows))
	}
	if rows[0].Timestamp != "2025-11-26 14:23:00" {
		t.Errorf("timestamp = %q, want server-assigned fixed-zone value", rows[0].Timestamp)
	}
	if rows[0].ContextID != models.PrivateContext {
		t.Errorf("context id = %q, want private sentinel", rows[0].ContextID)
	}
	if rows[0].RawText != "+200午餐" {
		t.Errorf("raw text = %q, want original command", rows[0].RawText)
	}
}

func TestHandleMessageReportsMalformedExpression(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	out := svc.HandleMessage(ctx, privateEvent("+1+"))
	if out.Kind != models.OutcomeError || out.Err != models.ErrorInvalidExpression {
		t.Errorf("outcome = %+v, want invalid-expression error", out)
	}

	out = svc.HandleMessage(ctx, privateEvent("+1/0"))
	if out.Kind != models.OutcomeError || out.Err != models.ErrorInvalidExpression {
		t.Errorf("division by zero outcome = %+v, want invalid-expression error", out)
	}

	rows, _ := store.ScanAll(ctx)
	if len(rows) != 0 {
		t.Errorf("malformed commands wrote %d records, want 0", len(rows))
	}
}

func TestHandleMessageBalanceKeyword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleMessage(ctx, privateEvent("+200午餐"))
	svc.HandleMessage(ctx, privateEvent("-50交通"))
	svc.HandleMessage(ctx, groupEvent("+30晚餐", "G"))

	out := svc.HandleMessage(ctx, privateEvent("餘額"))
	if out.Kind != models.OutcomeBalance {
		t.Fatalf("Kind = %v, want OutcomeBalance", out.Kind)
	}
	if out.Balance != 150 {
		t.Errorf("private balance = %v, want 150", out.Balance)
	}

	out = svc.HandleMessage(ctx, groupEvent("balance", "G"))
	if out.Kind != models.OutcomeBalance {
		t.Fatalf("Kind = %v, want OutcomeBalance", out.Kind)
	}
	if out.Balance != 30 {
		t.Errorf("group balance = %v, want 30", out.Balance)
	}
}

func TestHandleMessageReport(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// A record outside the current month must not show up.
	old := models.Record{
		Timestamp: "2025-10-01 12:00:00",
		UserID:    "U1",
		ContextID: models.PrivateContext,
		Amount:    "999",
		Memo:      "october",
	}
	if err := store.Append(ctx, &old); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc.HandleMessage(ctx, privateEvent("+200午餐"))
	svc.HandleMessage(ctx, privateEvent("-50交通"))

	out := svc.HandleMessage(ctx, privateEvent("report"))
	if out.Kind != models.OutcomeReport {
		t.Fatalf("Kind = %v, want OutcomeReport", out.Kind)
	}
	r := out.Report
	if r.Window != "2025-11" {
		t.Errorf("window = %q, want 2025-11", r.Window)
	}
	if r.Count != 2 {
		t.Errorf("count = %d, want 2", r.Count)
	}
	if math.Abs(r.Total-150) > 1e-9 {
		t.Errorf("total = %v, want 150", r.Total)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(r.Rows))
	}
	if r.Rows[0].Memo != "交通" || r.Rows[1].Memo != "午餐" {
		t.Errorf("rows not newest first: %q then %q", r.Rows[0].Memo, r.Rows[1].Memo)
	}
	if r.Rows[0].Time != "11/26 14:23" {
		t.Errorf("row time = %q, want display format 11/26 14:23", r.Rows[0].Time)
	}
}

func TestHandleMessageReportCapsRows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		out := svc.HandleMessage(ctx, privateEvent("+1零食"))
		if out.Kind != models.OutcomeApplied {
			t.Fatalf("seed command %d: %+v", i, out)
		}
	}

	out := svc.HandleMessage(ctx, privateEvent("報表"))
	if out.Kind != models.OutcomeReport {
		t.Fatalf("Kind = %v, want OutcomeReport", out.Kind)
	}
	if len(out.Report.Rows) != reportRows {
		t.Errorf("rows = %d, want cap %d", len(out.Report.Rows), reportRows)
	}
	if out.Report.Count != 15 {
		t.Errorf("count = %d, want 15", out.Report.Count)
	}
	if out.Report.Total != 15 {
		t.Errorf("total = %v, want 15", out.Report.Total)
	}
}

func TestHandleMessageStoreFailure(t *testing.T) {
	svc := NewService(&failingStore{}, nil, time.UTC)

	out := svc.HandleMessage(context.Background(), privateEvent("+100午餐"))
	if out.Kind != models.OutcomeError || out.Err != models.ErrorStoreUnavailable {
		t.Errorf("outcome = %+v, want store-unavailable error", out)
	}

	out = svc.HandleMessage(context.Background(), privateEvent("餘額"))
	if out.Kind != models.OutcomeError || out.Err != models.ErrorStoreUnavailable {
		t.Errorf("balance outcome = %+v, want store-unavailable error", out)
	}
}

type failingStore struct{}

func (f *failingStore) Append(ctx context.Context, rec *models.Record) error {
	return context.DeadlineExceeded
}

func (f *failingStore) ScanAll(ctx context.Context) ([]models.Record, error) {
	return nil, context.DeadlineExceeded
}
