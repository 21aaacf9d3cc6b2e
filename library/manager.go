package library

import (
	"errors"
	"fmt"
	"sync"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option configures a Manager.
type Option func(*Manager) error

// WithPermissions replaces the default role table.
func WithPermissions(p Permissions) Option {
	return func(m *Manager) error {
		m.perms = p
		return nil
	}
}

// WithClock sets the clock used for checkout and return timestamps.
func WithClock(c Clock) Option {
	return func(m *Manager) error {
		if c == nil {
			return errors.New("clock must not be nil")
		}
		m.clock = c
		return nil
	}
}

// WithLogger sets the logger. Denials go to Warn, mutations to Info and
// key misses to Debug.
func WithLogger(l Logger) Option {
	return func(m *Manager) error {
		m.logger = l
		return nil
	}
}

// WithStrictKeys controls whether AddBook and AddPatron reject keys that are
// already in use. Strict is the default; with strict off, duplicates are
// stored and lookups resolve to the earliest entry.
func WithStrictKeys(strict bool) Option {
	return func(m *Manager) error {
		m.strict = strict
		return nil
	}
}

// Manager is the library service: it owns the book, patron and transaction
// collections and gates every mutating operation on the acting user's role.
type Manager struct {
	mu sync.Mutex

	books        *collection[string, Book]
	patrons      *collection[string, Patron]
	transactions *collection[int, Transaction]

	perms  Permissions
	clock  Clock
	logger Logger
	strict bool
}

// NewManager returns an empty library.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		books:        newCollection(func(b *Book) string { return b.ISBN }),
		patrons:      newCollection(func(p *Patron) string { return p.ID }),
		transactions: newCollection(func(t *Transaction) int { return t.ID }),
		perms:        DefaultPermissions(),
		clock:        SystemClock{},
		strict:       true,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Permissions returns the role table the manager enforces.
func (m *Manager) Permissions() Permissions { return m.perms }

// authorize must be called with mu held.
func (m *Manager) authorize(user User, op Operation) error {
	if m.perms.IsAllowed(user.Role, op) {
		return nil
	}
	if m.logger != nil {
		m.logger.Warn("permission denied", "operation", string(op), "user", user.ID, "role", user.Role.String())
	}
	return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
}

func (m *Manager) logInfo(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

func (m *Manager) logMiss(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

// ------------------ Books ------------------

// AddBook appends b to the catalog.
func (m *Manager) AddBook(user User, b Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpAddBook); err != nil {
		return err
	}
	if b.Quantity < 0 {
		return fmt.Errorf("book %q: %w", b.ISBN, ErrInvalidQuantity)
	}
	if m.strict && m.books.has(b.ISBN) {
		return fmt.Errorf("isbn %q: %w", b.ISBN, ErrDuplicateKey)
	}
	m.books.add(&b)
	m.logInfo("book added", "isbn", b.ISBN, "title", b.Title, "quantity", b.Quantity)
	return nil
}

// RemoveBook drops the first book with the given ISBN. Transactions that
// reference it keep their handle.
func (m *Manager) RemoveBook(user User, isbn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpRemoveBook); err != nil {
		return err
	}
	if _, ok := m.books.remove(isbn); !ok {
		m.logMiss("book not found", "isbn", isbn)
		return fmt.Errorf("book %q: %w", isbn, ErrNotFound)
	}
	m.logInfo("book removed", "isbn", isbn)
	return nil
}

// FindBook looks a book up by ISBN.
func (m *Manager) FindBook(isbn string) (Book, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books.get(isbn)
	if !ok {
		return Book{}, false
	}
	return *b, true
}

// ------------------ Patrons ------------------

// AddPatron registers p.
func (m *Manager) AddPatron(user User, p Patron) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpAddPatron); err != nil {
		return err
	}
	if m.strict && m.patrons.has(p.ID) {
		return fmt.Errorf("patron %q: %w", p.ID, ErrDuplicateKey)
	}
	m.patrons.add(&p)
	m.logInfo("patron added", "patron", p.ID, "role", p.Role.String())
	return nil
}

// RemovePatron drops the first patron with the given ID.
func (m *Manager) RemovePatron(user User, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpRemovePatron); err != nil {
		return err
	}
	if _, ok := m.patrons.remove(id); !ok {
		m.logMiss("patron not found", "patron", id)
		return fmt.Errorf("patron %q: %w", id, ErrNotFound)
	}
	m.logInfo("patron removed", "patron", id)
	return nil
}

// FindPatron looks a patron up by ID.
func (m *Manager) FindPatron(id string) (Patron, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.patrons.get(id)
	if !ok {
		return Patron{}, false
	}
	return *p, true
}

// AccountInfo returns the acting user's own account details.
func (m *Manager) AccountInfo(user User) (Patron, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpDisplayAccountInfo); err != nil {
		return Patron{}, err
	}
	return user, nil
}

// ------------------ Circulation ------------------

// CheckoutBook lends one copy of isbn to patronID and returns the new
// transaction ID.
func (m *Manager) CheckoutBook(user User, isbn, patronID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpCheckoutBook); err != nil {
		return 0, err
	}
	book, okBook := m.books.get(isbn)
	patron, okPatron := m.patrons.get(patronID)
	if !okBook || !okPatron {
		m.logMiss("checkout lookup failed", "isbn", isbn, "patron", patronID, "book_found", okBook, "patron_found", okPatron)
		return 0, fmt.Errorf("book %q or patron %q: %w", isbn, patronID, ErrNotFound)
	}
	if book.Quantity <= 0 {
		return 0, fmt.Errorf("book %q: %w", isbn, ErrUnavailable)
	}

	book.Quantity--
	now := m.clock.Now()
	tx := &Transaction{
		ID:           m.transactions.len() + 1,
		ISBN:         book.ISBN,
		PatronID:     patron.ID,
		CheckoutDate: now,
		DueDate:      DueDate(now),
		book:         book,
		patron:       patron,
	}
	m.transactions.add(tx)
	m.logInfo("book checked out", "transaction", tx.ID, "isbn", isbn, "patron", patronID, "due", tx.DueDate)
	return tx.ID, nil
}

// ReturnBook closes an outstanding transaction, computes its fine and puts
// the copy back on the shelf. Unknown and already-returned transactions
// both yield ErrNotFound.
func (m *Manager) ReturnBook(user User, transactionID int) (Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpReturnBook); err != nil {
		return Transaction{}, err
	}
	tx, ok := m.transactions.get(transactionID)
	if !ok || !tx.Outstanding() {
		m.logMiss("no outstanding transaction", "transaction", transactionID)
		return Transaction{}, fmt.Errorf("transaction %d: %w", transactionID, ErrNotFound)
	}

	now := m.clock.Now()
	tx.ReturnDate = &now
	tx.Fine = CalculateFine(tx.DueDate, now)
	tx.book.Quantity++
	m.logInfo("book returned", "transaction", tx.ID, "isbn", tx.ISBN, "fine", tx.Fine)
	return tx.clone(), nil
}

// Transaction looks a transaction up by ID.
func (m *Manager) Transaction(id int) (Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions.get(id)
	if !ok {
		return Transaction{}, false
	}
	return tx.clone(), true
}

// PatronTransactions lists every transaction made by patronID, oldest first.
// It is not permission-gated.
func (m *Manager) PatronTransactions(patronID string) []TransactionSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := []TransactionSummary{}
	for _, tx := range m.transactions.items {
		if tx.PatronID == patronID {
			summaries = append(summaries, tx.Summary())
		}
	}
	return summaries
}

// ------------------ Reporting ------------------

// GenerateReport snapshots the three collections.
func (m *Manager) GenerateReport(user User) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpGenerateReports); err != nil {
		return Report{}, err
	}
	return Report{
		Books:        m.books.snapshot(),
		Patrons:      m.patrons.snapshot(),
		Transactions: m.transactionSnapshot(),
	}, nil
}

func (m *Manager) transactionSnapshot() []Transaction {
	out := make([]Transaction, 0, m.transactions.len())
	for _, tx := range m.transactions.items {
		out = append(out, tx.clone())
	}
	return out
}

// ExportBooks returns the catalog as CSV-ready rows. Writing them is the
// caller's job.
func (m *Manager) ExportBooks(user User) ([]ExportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(user, OpSaveBooksToCSV); err != nil {
		return nil, err
	}
	rows := make([]ExportRow, 0, m.books.len())
	for _, b := range m.books.items {
		rows = append(rows, ExportRow{Title: b.Title, Author: b.Author, ISBN: b.ISBN, Quantity: b.Quantity})
	}
	return rows, nil
}
