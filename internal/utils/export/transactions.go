package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/utils"
)

// dateLayout is used for transaction dates and export file names.
const dateLayout = "2006-01-02"

// TransactionColumns is the fixed export header, in order.
var TransactionColumns = []string{
	"source", "date", "orderNumber", "orderName", "billingCo", "billTo",
	"refCo", "referrer", "salesRep", "transactionType", "total", "direction",
}

// TransactionRecord flattens a transaction into export cells matching TransactionColumns.
func TransactionRecord(t domain.Transaction) []string {
	return []string{
		t.Source,
		t.Date.Format(dateLayout),
		t.OrderNumber,
		t.OrderName,
		t.BillingCo,
		t.BillTo,
		t.RefCo,
		t.Referrer,
		t.SalesRep,
		string(t.TransactionType),
		utils.FormatMoney(t.Total),
		string(t.Direction),
	}
}

// CSVFileName returns transactions_<YYYY-MM-DD>.csv for the given day.
func CSVFileName(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", now.Format(dateLayout))
}

// XLSXFileName returns transactions_<YYYY-MM-DD>.xlsx for the given day.
func XLSXFileName(now time.Time) string {
	return fmt.Sprintf("transactions_%s.xlsx", now.Format(dateLayout))
}

// TransactionsCSV renders the header plus one row per transaction. Rows are
// joined with "\n" and there is no trailing newline.
func TransactionsCSV(txns []domain.Transaction) string {
	lines := make([]string, 0, len(txns)+1)
	lines = append(lines, csvLine(TransactionColumns))
	for _, t := range txns {
		lines = append(lines, csvLine(TransactionRecord(t)))
	}
	return strings.Join(lines, "\n")
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = csvField(f)
	}
	return strings.Join(quoted, ",")
}

// csvField quotes a field only when it contains a comma, a double quote or a
// newline; embedded quotes are doubled.
func csvField(f string) string {
	if !strings.ContainsAny(f, ",\"\n") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}
