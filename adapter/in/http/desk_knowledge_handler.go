package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"helpdesk_server/core/port/in"
)

// KnowledgeHandler handles knowledge-base maintenance requests.
type KnowledgeHandler struct {
	knowledgeService in.KnowledgeService
	log              zerolog.Logger
}

// NewKnowledgeHandler creates a new knowledge handler.
func NewKnowledgeHandler(knowledgeService in.KnowledgeService, log zerolog.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
		log:              log.With().Str("component", "knowledge_handler").Logger(),
	}
}

// Register registers knowledge routes.
func (h *KnowledgeHandler) Register(app fiber.Router) {
	app.Post("/update_knowledge_base", h.UpdateKnowledgeBase)
}

type updateKnowledgeRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// UpdateKnowledgeBase upserts one entry and rebuilds the vector index before
// answering, so the next generated response already uses the new content.
func (h *KnowledgeHandler) UpdateKnowledgeBase(c *fiber.Ctx) error {
	var req updateKnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.ID == "" || req.Content == "" {
		return errorResponse(c, fiber.StatusBadRequest, "Missing document ID or content.")
	}

	if err := h.knowledgeService.Upsert(c.Context(), req.ID, req.Content); err != nil {
		h.log.Error().Err(err).Str("entry_id", req.ID).Msg("failed to update knowledge base")
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update knowledge base.")
	}

	return successResponse(c, "Knowledge base updated successfully.")
}
