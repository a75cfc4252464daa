package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/in"
	"helpdesk_server/pkg/apperr"
)

// TicketHandler handles dashboard ticket requests.
type TicketHandler struct {
	ticketService in.TicketService
	log           zerolog.Logger
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService in.TicketService, log zerolog.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		log:           log.With().Str("component", "ticket_handler").Logger(),
	}
}

// Register registers ticket routes.
func (h *TicketHandler) Register(app fiber.Router) {
	app.Get("/fetch_emails", h.FetchEmails)
	app.Post("/seed_emails", h.SeedEmails)
	app.Post("/generate_response", h.GenerateResponse)
	app.Post("/update_email_status", h.UpdateEmailStatus)
}

// FetchEmails returns every ticket in priority order as a bare JSON array.
func (h *TicketHandler) FetchEmails(c *fiber.Ctx) error {
	tickets, err := h.ticketService.ListRanked(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list tickets")
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to fetch emails.")
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return c.JSON(tickets)
}

// SeedEmails populates the demo inbox and knowledge base.
func (h *TicketHandler) SeedEmails(c *fiber.Ctx) error {
	err := h.ticketService.SeedDemoData(c.Context())
	if err != nil {
		if apperr.IsConflict(err) {
			return errorResponse(c, fiber.StatusConflict, "Database already seeded.")
		}
		h.log.Error().Err(err).Msg("failed to seed database")
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to seed database.")
	}

	return successResponse(c, "Database seeded with mock emails and knowledge base.")
}

type generateResponseRequest struct {
	EmailBody string `json:"email_body"`
}

// GenerateResponse regenerates a draft reply for an arbitrary email body.
func (h *TicketHandler) GenerateResponse(c *fiber.Ctx) error {
	var req generateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if strings.TrimSpace(req.EmailBody) == "" {
		return errorResponse(c, fiber.StatusBadRequest, "Missing email body.")
	}

	response := h.ticketService.GenerateResponse(c.Context(), req.EmailBody)

	return c.JSON(fiber.Map{
		"status":      "success",
		"ai_response": response,
	})
}

type updateEmailStatusRequest struct {
	EmailID       string `json:"email_id"`
	FinalResponse string `json:"final_response"`
}

// UpdateEmailStatus sends the final reply and marks the ticket resolved.
func (h *TicketHandler) UpdateEmailStatus(c *fiber.Ctx) error {
	var req updateEmailStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.EmailID == "" {
		return errorResponse(c, fiber.StatusBadRequest, "Missing email id.")
	}

	err := h.ticketService.Resolve(c.Context(), req.EmailID, req.FinalResponse)
	if err != nil {
		switch {
		case apperr.IsNotFound(err):
			return errorResponse(c, fiber.StatusNotFound, "Email not found.")
		case apperr.IsConflict(err):
			return errorResponse(c, fiber.StatusConflict, "Email already resolved.")
		default:
			h.log.Error().Err(err).Str("ticket_id", req.EmailID).Msg("failed to resolve ticket")
			return errorResponse(c, fiber.StatusInternalServerError, "Failed to send email.")
		}
	}

	return successResponse(c, "Email status updated and response sent.")
}
