package ticket

import (
	"sort"

	"helpdesk_server/core/domain"
)

// RankTickets returns the tickets in inbox display order: urgent before
// not-urgent before unrecognized priority, and newer before older within
// equal priority. Remaining ties keep input order.
//
// Pure function: the input slice is not mutated and repeated calls on the
// same input produce the same output.
func RankTickets(tickets []domain.Ticket) []domain.Ticket {
	ranked := make([]domain.Ticket, len(tickets))
	copy(ranked, tickets)

	sort.SliceStable(ranked, func(i, j int) bool {
		si := ranked[i].ExtractedInfo.Priority.Score()
		sj := ranked[j].ExtractedInfo.Priority.Score()
		if si != sj {
			return si > sj
		}
		return ranked[i].Timestamp.After(ranked[j].Timestamp)
	})

	return ranked
}
