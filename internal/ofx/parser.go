// Package ofx converts OFX/QFX bank and credit card statements into expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"golang.org/x/sync/errgroup"

	"github.com/Akash50142/expense-tracker/internal/model"
)

const maxConcurrentFiles = 4

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// Leading "MM/DD " posting date some banks prepend to the name.
	leadingDateRegex = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger          *slog.Logger
	defaultCategory model.Category
}

// Result is the outcome of parsing one statement.
type Result struct {
	Source   string
	Accounts []string
	Expenses []model.ExpenseInput
	Skipped  int // credits and zero-amount entries
}

// NewParser creates a parser that files every imported expense under
// defaultCategory. OFX carries no category of its own.
func NewParser(defaultCategory model.Category, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{defaultCategory: defaultCategory, logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN, or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func parseResponse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX statement and returns its debits as expense inputs.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := parseResponse(reader)
	if err != nil {
		return nil, err
	}

	result := &Result{Accounts: accountIDs(resp)}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			p.collect(result, stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			p.collect(result, stmt.BankTranList)
		}
	}

	p.logger.Info("Parsed OFX file",
		"expenses", len(result.Expenses),
		"skipped", result.Skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return result, nil
}

// ParseFiles parses several statements concurrently. Results are returned
// in the order of paths; the first failure cancels the rest.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			res, err := p.ParseFile(ctx, f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res.Source = path
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Parser) collect(result *Result, list *ofxgo.TransactionList) {
	if list == nil {
		return
	}
	for _, tx := range list.Transactions {
		in, ok := p.convertTransaction(tx)
		if !ok {
			result.Skipped++
			continue
		}
		result.Expenses = append(result.Expenses, in)
	}
}

// convertTransaction maps a debit to an expense input. OFX reports debits
// as negative amounts; credits are not expenses and are rejected.
func (p *Parser) convertTransaction(tx ofxgo.Transaction) (model.ExpenseInput, bool) {
	amount, _ := tx.TrnAmt.Float64()
	if amount >= 0 {
		return model.ExpenseInput{}, false
	}

	description := extractMerchantName(tx)
	if description == "" {
		description = fmt.Sprintf("%v %s", tx.TrnType, tx.FiTID)
	}

	return model.ExpenseInput{
		Amount:      -amount,
		Category:    p.defaultCategory,
		Date:        tx.DtPosted.Time.Format(model.DateLayout),
		Description: description,
	}, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is the cleanest source when present.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	for _, prefix := range merchantPrefixes {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(leadingDateRegex.ReplaceAllString(name, ""))
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// accountIDs returns the sorted, unique account IDs in a statement.
func accountIDs(resp *ofxgo.Response) []string {
	accountMap := make(map[string]struct{})
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = struct{}{}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = struct{}{}
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts
}
