// Package render turns catalog results into console output.
package render

import (
	"fmt"
	"io"

	"library-catalog/library"
)

// DateLayout is used for every date shown to staff.
const DateLayout = "2006-01-02"

func Book(b library.Book) string {
	return fmt.Sprintf("Title: %s, Author: %s, ISBN: %s, Quantity: %d", b.Title, b.Author, b.ISBN, b.Quantity)
}

func Patron(p library.Patron) string {
	return fmt.Sprintf("Name: %s, ID: %s, Contact: %s, Role: %s", p.Name, p.ID, p.Contact, p.Role)
}

// Transaction renders the two report lines of a transaction.
func Transaction(tx library.Transaction) string {
	head := fmt.Sprintf("Transaction ID: %d, Book: %s, Patron: %s", tx.ID, tx.BookTitle(), tx.PatronName())
	if tx.ReturnDate != nil {
		return head + fmt.Sprintf("\nReturned on: %s, Fine: $%.2f", tx.ReturnDate.Format(DateLayout), tx.Fine)
	}
	return head + fmt.Sprintf("\nDue Date: %s, Not yet returned", tx.DueDate.Format(DateLayout))
}

// Summary renders one line of a patron's history.
func Summary(s library.TransactionSummary) string {
	returned := "Not yet returned"
	if s.Returned() {
		returned = "Returned on: " + s.ReturnDate.Format(DateLayout)
	}
	fine := "No fine"
	if s.HasFine() {
		fine = fmt.Sprintf("Fine: $%.2f", s.Fine)
	}
	return fmt.Sprintf("- Book: %s by %s, Checked out on: %s, %s, %s",
		s.BookTitle, s.BookAuthor, s.CheckoutDate.Format(DateLayout), returned, fine)
}

// PatronTransactions writes a patron's history, or a note when it is empty.
func PatronTransactions(w io.Writer, patronID string, summaries []library.TransactionSummary) {
	fmt.Fprintf(w, "Transactions for Patron ID %s:\n", patronID)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No transactions found for this patron.")
		return
	}
	for _, s := range summaries {
		fmt.Fprintln(w, Summary(s))
	}
}

func AccountInfo(w io.Writer, p library.Patron) {
	fmt.Fprintln(w, "Account Information:")
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "ID: %s\n", p.ID)
	fmt.Fprintf(w, "Contact Info: %s\n", p.Contact)
	fmt.Fprintf(w, "Role: %s\n", p.Role)
}

// ReportText writes the plain report: books, patrons, then transactions.
func ReportText(w io.Writer, r library.Report) {
	fmt.Fprintln(w, "Library Report:")

	fmt.Fprintln(w, "\nBooks in Library:")
	if len(r.Books) == 0 {
		fmt.Fprintln(w, "No books available.")
	}
	for _, b := range r.Books {
		fmt.Fprintln(w, Book(b))
	}

	fmt.Fprintln(w, "\nLibrary Patrons:")
	if len(r.Patrons) == 0 {
		fmt.Fprintln(w, "No registered patrons.")
	}
	for _, p := range r.Patrons {
		fmt.Fprintln(w, Patron(p))
	}

	fmt.Fprintln(w, "\nTransactions Record:")
	if len(r.Transactions) == 0 {
		fmt.Fprintln(w, "No transactions to display.")
	}
	for _, tx := range r.Transactions {
		fmt.Fprintln(w, Transaction(tx))
	}
}
