package http

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

type fakeTicketService struct {
	tickets    []domain.Ticket
	listErr    error
	seedErr    error
	resolveErr error
	response   string

	resolvedID    string
	resolvedReply string
}

func (f *fakeTicketService) ListRanked(ctx context.Context) ([]domain.Ticket, error) {
	return f.tickets, f.listErr
}

func (f *fakeTicketService) GenerateResponse(ctx context.Context, emailBody string) string {
	return f.response
}

func (f *fakeTicketService) Resolve(ctx context.Context, ticketID, finalResponse string) error {
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolvedID = ticketID
	f.resolvedReply = finalResponse
	return nil
}

func (f *fakeTicketService) ProcessInbound(ctx context.Context, msg domain.InboundEmail) (*domain.Ticket, error) {
	return &domain.Ticket{}, nil
}

func (f *fakeTicketService) SeedDemoData(ctx context.Context) error {
	return f.seedErr
}

func newTestApp(svc *fakeTicketService) *fiber.App {
	app := fiber.New()
	NewTicketHandler(svc, zerolog.Nop()).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*nethttp.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp, parsed
}

func TestFetchEmailsReturnsBareArray(t *testing.T) {
	svc := &fakeTicketService{tickets: []domain.Ticket{
		{ID: "tkt-1", Sender: "alice@example.com", Timestamp: time.Now(), Status: domain.StatusPending},
	}}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/fetch_emails", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		t.Fatalf("expected bare array, got %q: %v", raw, err)
	}
	if len(tickets) != 1 || tickets[0].ID != "tkt-1" {
		t.Errorf("unexpected payload: %v", tickets)
	}
}

func TestFetchEmailsEmptyStoreReturnsEmptyArray(t *testing.T) {
	app := newTestApp(&fakeTicketService{})

	req := httptest.NewRequest("GET", "/fetch_emails", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("expected [], got %q", raw)
	}
	_ = resp.Body.Close()
}

func TestGenerateResponseSuccess(t *testing.T) {
	app := newTestApp(&fakeTicketService{response: "Thanks for reaching out."})

	resp, body := doJSON(t, app, "POST", "/generate_response", `{"email_body":"I need help."}`)

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "success" {
		t.Errorf("expected success status, got %v", body["status"])
	}
	if body["ai_response"] != "Thanks for reaching out." {
		t.Errorf("unexpected ai_response: %v", body["ai_response"])
	}
}

func TestGenerateResponseEmptyBody(t *testing.T) {
	app := newTestApp(&fakeTicketService{response: "should not appear"})

	resp, body := doJSON(t, app, "POST", "/generate_response", `{"email_body":"  "}`)

	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body["status"] != "error" {
		t.Errorf("expected error envelope, got %v", body)
	}
}

func TestUpdateEmailStatusSuccess(t *testing.T) {
	svc := &fakeTicketService{}
	app := newTestApp(svc)

	resp, body := doJSON(t, app, "POST", "/update_email_status", `{"email_id":"tkt-1","final_response":"Fixed."}`)

	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "success" {
		t.Errorf("expected success, got %v", body)
	}
	if svc.resolvedID != "tkt-1" || svc.resolvedReply != "Fixed." {
		t.Errorf("resolve not forwarded: id=%q reply=%q", svc.resolvedID, svc.resolvedReply)
	}
}

func TestUpdateEmailStatusNotFound(t *testing.T) {
	app := newTestApp(&fakeTicketService{resolveErr: apperr.NotFound("ticket")})

	resp, body := doJSON(t, app, "POST", "/update_email_status", `{"email_id":"missing","final_response":"x"}`)

	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["message"] != "Email not found." {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestSeedEmailsConflict(t *testing.T) {
	app := newTestApp(&fakeTicketService{seedErr: apperr.Conflict("already seeded")})

	resp, body := doJSON(t, app, "POST", "/seed_emails", "")

	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if body["message"] != "Database already seeded." {
		t.Errorf("unexpected message: %v", body["message"])
	}
}
