package main

import (
	"errors"
	"fmt"
	"strconv"

	"library-catalog/export"
	"library-catalog/library"
	"library-catalog/render"
)

var menuOptions = []string{
	"Add Book",
	"Remove Book",
	"Checkout Book",
	"Return Book",
	"Generate Reports",
	"Save Books to CSV",
	"Add Patron",
	"Remove Patron",
	"View Account Info",
	"View Transactions",
	"Exit",
}

func (a *app) displayMenu() {
	fmt.Fprintln(a.out, "\nLibrary Management System")
	for i, opt := range menuOptions {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, opt)
	}
}

// runMenu loops until Exit or end of input.
func (a *app) runMenu() {
	for {
		a.displayMenu()
		choice, ok := a.prompt("Enter choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.handleAddBook()
		case "2":
			a.handleRemoveBook()
		case "3":
			a.handleCheckout()
		case "4":
			a.handleReturn()
		case "5":
			a.handleReport()
		case "6":
			a.handleSaveCSV()
		case "7":
			a.handleAddPatron()
		case "8":
			a.handleRemovePatron()
		case "9":
			a.handleAccountInfo()
		case "10":
			a.handleTransactions()
		case "11":
			fmt.Fprintln(a.out, "Exiting Library Management System.")
			return
		default:
			fmt.Fprintln(a.out, "Invalid choice or insufficient permissions.")
		}
	}
}

// allowed is the caller-side gate that skips prompting for input the
// manager would refuse anyway.
func (a *app) allowed(op library.Operation) bool {
	if a.mgr.Permissions().IsAllowed(a.user.Role, op) {
		return true
	}
	fmt.Fprintln(a.out, "Permission denied.")
	return false
}

// outcome prints the message for a manager error.
func (a *app) outcome(err error, notFound string) {
	switch {
	case errors.Is(err, library.ErrPermissionDenied):
		fmt.Fprintln(a.out, "Permission denied.")
	case errors.Is(err, library.ErrNotFound):
		fmt.Fprintln(a.out, notFound)
	case errors.Is(err, library.ErrUnavailable):
		fmt.Fprintln(a.out, "Book is not available.")
	case errors.Is(err, library.ErrDuplicateKey):
		fmt.Fprintf(a.out, "Already exists: %v\n", err)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *app) handleAddBook() {
	if !a.allowed(library.OpAddBook) {
		return
	}
	title, ok := a.prompt("Enter the book title: ")
	if !ok {
		return
	}
	author, ok := a.prompt("Enter the author's name: ")
	if !ok {
		return
	}
	isbn, ok := a.prompt("Enter the book ISBN: ")
	if !ok {
		return
	}
	qtyStr, ok := a.prompt("Enter the quantity: ")
	if !ok {
		return
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 0 {
		fmt.Fprintf(a.out, "Invalid quantity: %s\n", qtyStr)
		return
	}

	book := library.Book{Title: title, Author: author, ISBN: isbn, Quantity: qty}
	if err := a.mgr.AddBook(a.user, book); err != nil {
		a.outcome(err, "Book not found.")
		return
	}
	fmt.Fprintln(a.out, "Book added successfully.")
}

func (a *app) handleRemoveBook() {
	if !a.allowed(library.OpRemoveBook) {
		return
	}
	isbn, ok := a.prompt("Enter the book ISBN to remove: ")
	if !ok {
		return
	}
	if err := a.mgr.RemoveBook(a.user, isbn); err != nil {
		a.outcome(err, "Book not found.")
		return
	}
	fmt.Fprintln(a.out, "Book removed successfully.")
}

func (a *app) handleCheckout() {
	if !a.allowed(library.OpCheckoutBook) {
		return
	}
	isbn, ok := a.prompt("Enter book ISBN to checkout: ")
	if !ok {
		return
	}
	patronID, ok := a.prompt("Enter patron ID: ")
	if !ok {
		return
	}
	id, err := a.mgr.CheckoutBook(a.user, isbn, patronID)
	if err != nil {
		a.outcome(err, "Book or patron not found.")
		return
	}
	fmt.Fprintf(a.out, "Book checked out successfully. Transaction ID: %d\n", id)
}

func (a *app) handleReturn() {
	if !a.allowed(library.OpReturnBook) {
		return
	}
	idStr, ok := a.prompt("Enter transaction ID to return a book: ")
	if !ok {
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid transaction ID: %s\n", idStr)
		return
	}
	tx, err := a.mgr.ReturnBook(a.user, id)
	if err != nil {
		a.outcome(err, "Transaction not found.")
		return
	}
	fmt.Fprintln(a.out, "Book returned successfully.")
	if tx.Fine > 0 {
		fmt.Fprintf(a.out, "Fine due: $%.2f\n", tx.Fine)
	}
}

func (a *app) handleReport() {
	if !a.allowed(library.OpGenerateReports) {
		return
	}
	report, err := a.mgr.GenerateReport(a.user)
	if err != nil {
		a.outcome(err, "")
		return
	}
	if err := render.Report(a.out, a.cfg.ReportFormat, report); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *app) handleSaveCSV() {
	if !a.allowed(library.OpSaveBooksToCSV) {
		return
	}
	path, ok := a.prompt(fmt.Sprintf("Enter filepath for CSV [%s]: ", a.cfg.CSVPath))
	if !ok {
		return
	}
	if path == "" {
		path = a.cfg.CSVPath
	}
	rows, err := a.mgr.ExportBooks(a.user)
	if err != nil {
		a.outcome(err, "")
		return
	}
	if err := export.SaveBooks(path, rows); err != nil {
		a.logger.Error("csv export failed", "path", path, "error", err)
		fmt.Fprintf(a.out, "Error saving CSV: %v\n", err)
		return
	}
	a.logger.Info("catalog exported", "path", path, "books", len(rows))
	fmt.Fprintln(a.out, "Books saved to CSV successfully.")
}

func (a *app) handleAddPatron() {
	if !a.allowed(library.OpAddPatron) {
		return
	}
	name, ok := a.prompt("Enter the patron's name: ")
	if !ok {
		return
	}
	id, ok := a.prompt("Enter the patron ID: ")
	if !ok {
		return
	}
	contact, ok := a.prompt("Enter the patron's contact info: ")
	if !ok {
		return
	}
	if err := a.mgr.AddPatron(a.user, library.NewPatron(name, id, contact)); err != nil {
		a.outcome(err, "Patron not found.")
		return
	}
	fmt.Fprintln(a.out, "Patron added successfully.")
}

func (a *app) handleRemovePatron() {
	if !a.allowed(library.OpRemovePatron) {
		return
	}
	id, ok := a.prompt("Enter the patron ID to remove: ")
	if !ok {
		return
	}
	if err := a.mgr.RemovePatron(a.user, id); err != nil {
		a.outcome(err, "Patron not found.")
		return
	}
	fmt.Fprintln(a.out, "Patron removed successfully.")
}

func (a *app) handleAccountInfo() {
	info, err := a.mgr.AccountInfo(a.user)
	if err != nil {
		a.outcome(err, "")
		return
	}
	render.AccountInfo(a.out, info)
}

// handleTransactions lets staff look up any patron; everyone else sees
// their own history.
func (a *app) handleTransactions() {
	patronID := a.user.ID
	if a.mgr.Permissions().IsAllowed(a.user.Role, library.OpDisplayPatronTransactions) {
		var ok bool
		if patronID, ok = a.prompt("Enter the patron ID to view transactions: "); !ok {
			return
		}
	}
	render.PatronTransactions(a.out, patronID, a.mgr.PatronTransactions(patronID))
}
