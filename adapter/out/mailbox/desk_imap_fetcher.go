// Package mailbox pulls unseen messages from an IMAP mailbox.
package mailbox

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"

	"helpdesk_server/config"
	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
)

// IMAPFetcher implements out.MailFetcher against an IMAP server over TLS.
// Each fetch opens a fresh connection; the retriever polls infrequently
// enough that holding a session open buys nothing.
type IMAPFetcher struct {
	addr     string
	user     string
	password string
	mailbox  string
	log      zerolog.Logger
}

var _ out.MailFetcher = (*IMAPFetcher)(nil)

func NewIMAPFetcher(cfg *config.Config, log zerolog.Logger) *IMAPFetcher {
	return &IMAPFetcher{
		addr:     fmt.Sprintf("%s:%d", cfg.IMAPHost, cfg.IMAPPort),
		user:     cfg.IMAPUser,
		password: cfg.IMAPPassword,
		mailbox:  cfg.IMAPMailbox,
		log:      log.With().Str("component", "imap_fetcher").Logger(),
	}
}

// FetchUnseen returns all unseen messages in the configured mailbox and
// marks them seen, so the next poll only sees genuinely new mail.
func (f *IMAPFetcher) FetchUnseen(ctx context.Context) ([]domain.InboundEmail, error) {
	c, err := imapclient.DialTLS(f.addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial IMAP server: %w", err)
	}
	defer c.Logout()

	if err := c.Login(f.user, f.password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	if _, err := c.Select(f.mailbox, false); err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", f.mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("IMAP search failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{}
	messages := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var emails []domain.InboundEmail
	for msg := range messages {
		inbound, err := f.parseMessage(msg, section)
		if err != nil {
			f.log.Warn().Err(err).Msg("skipping unparseable message")
			continue
		}
		emails = append(emails, inbound)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("IMAP fetch failed: %w", err)
	}

	// Mark everything we fetched as seen. A message that fails parsing is
	// consumed too, otherwise it would wedge the poll loop forever.
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := c.Store(seqset, item, []interface{}{imap.SeenFlag}, nil); err != nil {
		return nil, fmt.Errorf("failed to mark messages seen: %w", err)
	}

	f.log.Info().Int("messages", len(emails)).Msg("fetched unseen mail")
	return emails, nil
}

func (f *IMAPFetcher) parseMessage(msg *imap.Message, section *imap.BodySectionName) (domain.InboundEmail, error) {
	body := msg.GetBody(section)
	if body == nil {
		return domain.InboundEmail{}, fmt.Errorf("message has no body section")
	}

	reader, err := mail.CreateReader(body)
	if err != nil {
		return domain.InboundEmail{}, fmt.Errorf("failed to parse message: %w", err)
	}

	sender := reader.Header.Get("From")
	subject, err := reader.Header.Subject()
	if err != nil {
		subject = reader.Header.Get("Subject")
	}

	text, err := firstTextPart(reader)
	if err != nil {
		return domain.InboundEmail{}, err
	}

	return domain.InboundEmail{
		Sender:    sender,
		Subject:   subject,
		Body:      text,
		Timestamp: time.Now().UTC(),
	}, nil
}

// firstTextPart returns the first inline text part of the message,
// skipping attachments.
func firstTextPart(reader *mail.Reader) (string, error) {
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to read message part: %w", err)
		}

		switch header := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := header.ContentType()
			if contentType == "" || strings.HasPrefix(contentType, "text/plain") {
				content, err := io.ReadAll(part.Body)
				if err != nil {
					return "", fmt.Errorf("failed to read message body: %w", err)
				}
				return string(content), nil
			}
		}
	}
}
