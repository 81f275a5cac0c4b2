package contact

import "context"

type ContactFinder interface {
	FindByEmail(ctx context.Context, email string) (*StoredContact, error)
}

// ContactUpserter must apply each call atomically with respect to concurrent
// readers and writers of the same email.
type ContactUpserter interface {
	UpsertByEmail(ctx context.Context, email, name, phone string) (created bool, err error)
}

type SummaryStore interface {
	Append(ctx context.Context, summary ImportSummary) error
}

type SummaryLister interface {
	List(ctx context.Context, filter SummaryFilter) ([]ImportSummary, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
