package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
)

// ResponderFallback is returned whenever response synthesis fails for any
// reason. It is a defined business value, not an error.
const ResponderFallback = "AI is unable to generate a response at this time. Please try again later."

// ContextRetriever supplies the single best knowledge-base passage for a
// query. Satisfied by rag.Retriever.
type ContextRetriever interface {
	TopMatch(ctx context.Context, query string) string
}

// Responder drafts a reply to a customer email, grounded on one retrieved
// knowledge-base passage.
type Responder struct {
	llm       Completer
	retriever ContextRetriever
	log       zerolog.Logger
}

func NewResponder(llm Completer, retriever ContextRetriever, log zerolog.Logger) *Responder {
	return &Responder{
		llm:       llm,
		retriever: retriever,
		log:       log.With().Str("component", "responder").Logger(),
	}
}

const responderSystemPrompt = `You are an AI-powered customer support assistant. Draft a professional, polite, and helpful response to the customer email.
**Instructions:**
- Maintain a professional and friendly tone.
- Start with an empathetic acknowledgement if the sentiment is negative.
- Use the provided knowledge base context to generate a relevant answer.
- If the context doesn't contain the answer, state that you will investigate. Do not fabricate information.`

// DraftResponse generates a reply draft. It never returns an error: any
// failure yields ResponderFallback.
func (r *Responder) DraftResponse(ctx context.Context, emailBody string, sentiment domain.Sentiment) string {
	retrievedContext := r.retriever.TopMatch(ctx, emailBody)

	userPrompt := fmt.Sprintf(`**Customer Email Sentiment:** %s

**Customer Email:**
%s

**Knowledge Base Context:**
%s

**Draft Response:**`, sentiment, emailBody, retrievedContext)

	draft, err := r.llm.CompleteWithSystem(ctx, responderSystemPrompt, userPrompt)
	if err != nil {
		r.log.Warn().Err(err).Msg("response synthesis failed, using fallback")
		return ResponderFallback
	}
	if draft == "" {
		r.log.Warn().Msg("response synthesis returned empty output, using fallback")
		return ResponderFallback
	}

	return draft
}
