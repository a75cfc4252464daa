// Package retriever polls the support mailbox and feeds new messages
// into the ticket pipeline.
package retriever

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
)

// supportKeywords gate which subjects become tickets. Anything else in
// the mailbox (newsletters, meeting invites) is consumed but ignored.
var supportKeywords = []string{"support", "query", "request", "help", "critical", "urgent"}

// InboundProcessor is the slice of the ticket service the worker needs.
type InboundProcessor interface {
	ProcessInbound(ctx context.Context, msg domain.InboundEmail) (*domain.Ticket, error)
}

// Worker polls the mailbox on a fixed interval and runs every matching
// message through the pipeline.
type Worker struct {
	fetcher   out.MailFetcher
	processor InboundProcessor
	interval  time.Duration
	log       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
}

func NewWorker(fetcher out.MailFetcher, processor InboundProcessor, interval time.Duration, log zerolog.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		fetcher:   fetcher,
		processor: processor,
		interval:  interval,
		log:       log.With().Str("component", "mail_retriever").Logger(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the poll loop. Safe to call once.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	w.started = true

	w.wg.Add(1)
	go w.run()

	w.log.Info().Dur("interval", w.interval).Msg("mail retriever started")
}

// Stop cancels the poll loop and waits for the in-flight cycle to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
	w.log.Info().Msg("mail retriever stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.RunCycle(w.ctx)
		}
	}
}

// RunCycle executes one fetch-filter-process pass. A failure on one
// message never blocks the rest of the batch.
func (w *Worker) RunCycle(ctx context.Context) {
	emails, err := w.fetcher.FetchUnseen(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to fetch mail")
		return
	}

	processed := 0
	for _, msg := range emails {
		if !subjectMatchesKeywords(msg.Subject) {
			w.log.Debug().Str("subject", msg.Subject).Msg("skipping non-support email")
			continue
		}

		if _, err := w.processor.ProcessInbound(ctx, msg); err != nil {
			w.log.Error().Err(err).Str("sender", msg.Sender).Msg("failed to process inbound email")
			continue
		}
		processed++
	}

	if processed > 0 {
		w.log.Info().Int("processed", processed).Int("fetched", len(emails)).Msg("poll cycle complete")
	}
}

// subjectMatchesKeywords reports whether the subject marks a support email.
// Matching is case-insensitive substring, so "URGENT: down" and
// "Re: my request" both qualify.
func subjectMatchesKeywords(subject string) bool {
	lowered := strings.ToLower(subject)
	for _, keyword := range supportKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
