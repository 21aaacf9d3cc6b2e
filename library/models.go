package library

import (
	"strconv"
	"time"
)

const (
	// LoanDays is how many calendar days a checkout may stay out before
	// fines accrue.
	LoanDays = 14

	// FinePerDay is charged for each whole day past the due date.
	FinePerDay = 0.50
)

// Book is a catalog entry. Quantity counts the copies on the shelf.
type Book struct {
	Title    string `json:"title" yaml:"title"`
	Author   string `json:"author" yaml:"author"`
	ISBN     string `json:"isbn" yaml:"isbn"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Patron is a registered account. Staff acting users are patrons too, with
// an elevated role.
type Patron struct {
	Name    string `json:"name" yaml:"name"`
	ID      string `json:"id" yaml:"id"`
	Contact string `json:"contact" yaml:"contact"`
	Role    Role   `json:"role" yaml:"role"`
}

// User is the acting user on whose behalf an operation runs.
type User = Patron

// NewPatron creates a patron with the default Patron role.
func NewPatron(name, id, contact string) Patron {
	return Patron{Name: name, ID: id, Contact: contact, Role: RolePatron}
}

// Transaction records one checkout. The book and patron handles point at
// entries owned by the Manager; only the Manager mutates them.
type Transaction struct {
	ID           int        `json:"id" yaml:"id"`
	ISBN         string     `json:"isbn" yaml:"isbn"`
	PatronID     string     `json:"patron_id" yaml:"patron_id"`
	CheckoutDate time.Time  `json:"checkout_date" yaml:"checkout_date"`
	DueDate      time.Time  `json:"due_date" yaml:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty" yaml:"return_date,omitempty"`
	Fine         float64    `json:"fine" yaml:"fine"`

	book   *Book
	patron *Patron
}

// Outstanding reports whether the loan is still out.
func (t Transaction) Outstanding() bool { return t.ReturnDate == nil }

func (t Transaction) BookTitle() string {
	if t.book == nil {
		return ""
	}
	return t.book.Title
}

func (t Transaction) BookAuthor() string {
	if t.book == nil {
		return ""
	}
	return t.book.Author
}

func (t Transaction) PatronName() string {
	if t.patron == nil {
		return ""
	}
	return t.patron.Name
}

// clone copies t without sharing the return timestamp.
func (t Transaction) clone() Transaction {
	if t.ReturnDate != nil {
		rd := *t.ReturnDate
		t.ReturnDate = &rd
	}
	return t
}

// Summary condenses the transaction for a patron's history listing.
func (t Transaction) Summary() TransactionSummary {
	s := TransactionSummary{
		TransactionID: t.ID,
		BookTitle:     t.BookTitle(),
		BookAuthor:    t.BookAuthor(),
		CheckoutDate:  t.CheckoutDate,
		Fine:          t.Fine,
	}
	if t.ReturnDate != nil {
		rd := *t.ReturnDate
		s.ReturnDate = &rd
	}
	return s
}

// DueDate is checkout plus LoanDays on the calendar, at the same wall-clock
// time even across a daylight saving change.
func DueDate(checkout time.Time) time.Time {
	return checkout.AddDate(0, 0, LoanDays)
}

// CalculateFine charges FinePerDay for each whole day returned is past due.
// A return inside the first day after the due date is free. Days are counted
// on each instant's wall clock, so a DST shift never adds or drops an hour.
func CalculateFine(due, returned time.Time) float64 {
	late := wallClock(returned).Sub(wallClock(due))
	if late <= 0 {
		return 0
	}
	return float64(late/(24*time.Hour)) * FinePerDay
}

// wallClock reinterprets t's local date and time in UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// TransactionSummary is one line of a patron's transaction history.
type TransactionSummary struct {
	TransactionID int
	BookTitle     string
	BookAuthor    string
	CheckoutDate  time.Time
	ReturnDate    *time.Time
	Fine          float64
}

func (s TransactionSummary) Returned() bool { return s.ReturnDate != nil }

func (s TransactionSummary) HasFine() bool { return s.Fine > 0 }

// Report is an insertion-ordered snapshot of the three collections.
type Report struct {
	Books        []Book        `json:"books" yaml:"books"`
	Patrons      []Patron      `json:"patrons" yaml:"patrons"`
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
}

// ExportHeader is the header row of the catalog CSV.
var ExportHeader = []string{"Title", "Author", "ISBN", "Quantity"}

// ExportRow is one book in catalog export order.
type ExportRow struct {
	Title    string
	Author   string
	ISBN     string
	Quantity int
}

func (r ExportRow) Record() []string {
	return []string{r.Title, r.Author, r.ISBN, strconv.Itoa(r.Quantity)}
}
