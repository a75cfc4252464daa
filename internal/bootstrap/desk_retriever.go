package bootstrap

import (
	"helpdesk_server/adapter/in/retriever"
	"helpdesk_server/config"
)

// NewRetrieverWorker builds the mailbox poll worker around an existing
// dependency graph. The caller owns Start/Stop.
func NewRetrieverWorker(cfg *config.Config, deps *Dependencies) *retriever.Worker {
	return retriever.NewWorker(deps.Fetcher, deps.TicketService, cfg.PollInterval, deps.Log)
}
