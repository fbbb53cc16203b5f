package ledger

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("no templates found for given user ID")

type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %q: %s", e.UserID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type LedgerInterface interface {
	Append(userID, url string) int
	ListFor(userID string) ([]string, error)
	Len(userID string) int
	Users() int
}

// Ledger keeps the generated poster URLs of every user for the lifetime of
// the process. Entries are append-only and created on first append.
type Ledger struct {
	mu   sync.RWMutex
	data map[string][]string
}

func NewLedger() LedgerInterface {
	return &Ledger{
		data: make(map[string][]string),
	}
}

// Append records url for the user and returns the new length of the list.
func (l *Ledger) Append(userID, url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data[userID] = append(l.data[userID], url)
	return len(l.data[userID])
}

// ListFor returns a copy of the user's URLs in insertion order.
func (l *Ledger) ListFor(userID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	urls, ok := l.data[userID]
	if !ok {
		return nil, &NotFoundError{UserID: userID}
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out, nil
}

// Len is the number of URLs recorded for the user, 0 for unknown users.
// Lists only grow, so a user and a length identify one list content.
func (l *Ledger) Len(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.data[userID])
}

func (l *Ledger) Users() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.data)
}
