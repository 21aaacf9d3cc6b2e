package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"library-catalog/library"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))

type bookView struct {
	Title    string `json:"title" yaml:"title"`
	Author   string `json:"author" yaml:"author"`
	ISBN     string `json:"isbn" yaml:"isbn"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

type patronView struct {
	Name    string `json:"name" yaml:"name"`
	ID      string `json:"id" yaml:"id"`
	Contact string `json:"contact" yaml:"contact"`
	Role    string `json:"role" yaml:"role"`
}

type transactionView struct {
	ID           int     `json:"id" yaml:"id"`
	ISBN         string  `json:"isbn" yaml:"isbn"`
	BookTitle    string  `json:"book_title" yaml:"book_title"`
	PatronID     string  `json:"patron_id" yaml:"patron_id"`
	PatronName   string  `json:"patron_name" yaml:"patron_name"`
	CheckoutDate string  `json:"checkout_date" yaml:"checkout_date"`
	DueDate      string  `json:"due_date" yaml:"due_date"`
	ReturnDate   string  `json:"return_date,omitempty" yaml:"return_date,omitempty"`
	Fine         float64 `json:"fine" yaml:"fine"`
}

type reportView struct {
	Books        []bookView        `json:"books" yaml:"books"`
	Patrons      []patronView      `json:"patrons" yaml:"patrons"`
	Transactions []transactionView `json:"transactions" yaml:"transactions"`
}

func newReportView(r library.Report) reportView {
	v := reportView{
		Books:        make([]bookView, 0, len(r.Books)),
		Patrons:      make([]patronView, 0, len(r.Patrons)),
		Transactions: make([]transactionView, 0, len(r.Transactions)),
	}
	for _, b := range r.Books {
		v.Books = append(v.Books, bookView(b))
	}
	for _, p := range r.Patrons {
		v.Patrons = append(v.Patrons, patronView{Name: p.Name, ID: p.ID, Contact: p.Contact, Role: p.Role.String()})
	}
	for _, tx := range r.Transactions {
		tv := transactionView{
			ID:           tx.ID,
			ISBN:         tx.ISBN,
			BookTitle:    tx.BookTitle(),
			PatronID:     tx.PatronID,
			PatronName:   tx.PatronName(),
			CheckoutDate: tx.CheckoutDate.Format(time.RFC3339),
			DueDate:      tx.DueDate.Format(time.RFC3339),
			Fine:         tx.Fine,
		}
		if tx.ReturnDate != nil {
			tv.ReturnDate = tx.ReturnDate.Format(time.RFC3339)
		}
		v.Transactions = append(v.Transactions, tv)
	}
	return v
}

// Report writes r in the named format: text, json, yaml or table.
func Report(w io.Writer, format string, r library.Report) error {
	switch format {
	case "", "text":
		ReportText(w, r)
		return nil
	case "json":
		return ReportJSON(w, r)
	case "yaml":
		return ReportYAML(w, r)
	case "table":
		ReportTable(w, r)
		return nil
	}
	return fmt.Errorf("unknown report format %q", format)
}

func ReportJSON(w io.Writer, r library.Report) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(newReportView(r), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func ReportYAML(w io.Writer, r library.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newReportView(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// ReportTable writes one bordered table per collection.
func ReportTable(w io.Writer, r library.Report) {
	v := newReportView(r)

	books := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Title", "Author", "ISBN", "Quantity")
	for _, b := range v.Books {
		books.Row(b.Title, b.Author, b.ISBN, strconv.Itoa(b.Quantity))
	}

	patrons := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "ID", "Contact", "Role")
	for _, p := range v.Patrons {
		patrons.Row(p.Name, p.ID, p.Contact, p.Role)
	}

	txs := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Book", "Patron", "Due", "Returned", "Fine")
	for i, tx := range v.Transactions {
		returned := "Not yet returned"
		if rd := r.Transactions[i].ReturnDate; rd != nil {
			returned = rd.Format(DateLayout)
		}
		txs.Row(
			strconv.Itoa(tx.ID),
			truncateString(tx.BookTitle, 30),
			truncateString(tx.PatronName, 20),
			r.Transactions[i].DueDate.Format(DateLayout),
			returned,
			fmt.Sprintf("$%.2f", tx.Fine),
		)
	}

	fmt.Fprintln(w, headingStyle.Render("Books in Library"))
	fmt.Fprintln(w, books.Render())
	fmt.Fprintln(w, headingStyle.Render("Library Patrons"))
	fmt.Fprintln(w, patrons.Render())
	fmt.Fprintln(w, headingStyle.Render("Transactions Record"))
	fmt.Fprintln(w, txs.Render())
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
