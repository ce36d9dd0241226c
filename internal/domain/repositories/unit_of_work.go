package repositories

import "context"

// TxRepositories are the repositories bound to one transaction
type TxRepositories struct {
	Meetings     MeetingRepository
	HumeSessions HumeSessionRepository
}

// UnitOfWork runs fn in a single transaction. Returning an error from fn rolls
// back every write made through the provided repositories.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
