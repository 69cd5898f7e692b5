package ofx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240122120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012201
<NAME>PAYROLL DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedSkip  int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
			expectedSkip:  1,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "leading blank lines",
			ofxData:       "\n\n  " + sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(model.CategoryOther, nil)

			result, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, result.Expenses, tt.expectedCount)
			assert.Equal(t, tt.expectedSkip, result.Skipped)
		})
	}
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(model.CategoryOther, nil).ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(model.CategoryFood, nil)

	result, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, result.Expenses, 3)

	assert.Equal(t, model.ExpenseInput{
		Amount:      25.50,
		Category:    model.CategoryFood,
		Date:        "2024-01-15",
		Description: "STARBUCKS STORE #1234",
	}, result.Expenses[0])

	assert.Equal(t, "Whole Foods Market", result.Expenses[1].Description)
	assert.Equal(t, 125.00, result.Expenses[1].Amount)
	assert.Equal(t, "2024-01-20", result.Expenses[1].Date)

	assert.Equal(t, "CHECK #1234", result.Expenses[2].Description)
	assert.Equal(t, 500.00, result.Expenses[2].Amount)

	for _, in := range result.Expenses {
		assert.NoError(t, in.Validate(), "imported expenses are valid inputs")
	}
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(model.CategoryOther, nil)

	result, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, result.Expenses, 2)

	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", result.Expenses[0].Description)
	assert.Equal(t, 45.99, result.Expenses[0].Amount)
	assert.Equal(t, "2024-01-10", result.Expenses[0].Date)

	assert.Equal(t, "NETFLIX.COM", result.Expenses[1].Description)
	assert.Equal(t, 15.00, result.Expenses[1].Amount)
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	bank := filepath.Join(dir, "bank.ofx")
	card := filepath.Join(dir, "card.qfx")
	require.NoError(t, os.WriteFile(bank, []byte(sampleBankOFX), 0o600))
	require.NoError(t, os.WriteFile(card, []byte(sampleCreditCardOFX), 0o600))

	parser := NewParser(model.CategoryOther, nil)

	results, err := parser.ParseFiles(context.Background(), []string{card, bank})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, card, results[0].Source)
	assert.Len(t, results[0].Expenses, 2)
	assert.Equal(t, bank, results[1].Source)
	assert.Len(t, results[1].Expenses, 3)

	_, err = parser.ParseFiles(context.Background(), []string{bank, filepath.Join(dir, "missing.ofx")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ofx")
}

func TestExtractMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{
			name:     "remove POS prefix",
			tx:       ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"},
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			tx:       ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"},
			expected: "WHOLE FOODS",
		},
		{
			name:     "strip posting date",
			tx:       ofxgo.Transaction{Name: "PURCHASE AUTHORIZED ON 03/14 SHELL OIL"},
			expected: "SHELL OIL",
		},
		{
			name:     "keep clean name",
			tx:       ofxgo.Transaction{Name: "NETFLIX.COM"},
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			tx:       ofxgo.Transaction{Name: "  AMAZON.COM  "},
			expected: "AMAZON.COM",
		},
		{
			name:     "prefix matched case-insensitively",
			tx:       ofxgo.Transaction{Name: "pos purchase Corner Cafe"},
			expected: "Corner Cafe",
		},
		{
			name:     "multi-byte look-alike is not a prefix",
			tx:       ofxgo.Transaction{Name: "VIſA PURCHAſE KFC"},
			expected: "VIſA PURCHAſE KFC",
		},
		{
			name:     "generic name falls back to memo",
			tx:       ofxgo.Transaction{Name: "DEBIT", Memo: "City Parking Garage"},
			expected: "City Parking Garage",
		},
		{
			name:     "payee wins",
			tx:       ofxgo.Transaction{Name: "POS 1234", Payee: &ofxgo.Payee{Name: "Corner Bakery"}},
			expected: "Corner Bakery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMerchantName(tt.tx))
		})
	}
}

func TestDedupe(t *testing.T) {
	existing := []model.Expense{
		{ID: "a", Date: "2024-01-15", Amount: 25.5, Description: "Starbucks  Store"},
	}
	inputs := []model.ExpenseInput{
		{Date: "2024-01-15", Amount: 25.50, Description: "STARBUCKS STORE"},
		{Date: "2024-01-16", Amount: 25.50, Description: "STARBUCKS STORE"},
		{Date: "2024-01-16", Amount: 25.50, Description: "starbucks store"},
		{Date: "2024-01-16", Amount: 9.99, Description: "starbucks store"},
	}

	fresh, dropped := Dedupe(existing, inputs)
	assert.Equal(t, 2, dropped)
	require.Len(t, fresh, 2)
	assert.Equal(t, "2024-01-16", fresh[0].Date)
	assert.Equal(t, 9.99, fresh[1].Amount)
}

func TestParseFile_Accounts(t *testing.T) {
	parser := NewParser(model.CategoryOther, nil)

	res, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, res.Accounts)

	res, err = parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, res.Accounts)

	_, err = parser.ParseFile(context.Background(), strings.NewReader("garbage"))
	assert.Error(t, err)
}
