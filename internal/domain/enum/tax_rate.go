package enum

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TaxRate represents an IGIC tax rate applied to purchase order lines.
// The set is closed: exempt, reduced and general.
type TaxRate int

const (
	TaxRateExempt  TaxRate = 0
	TaxRateReduced TaxRate = 3
	TaxRateGeneral TaxRate = 7
)

// DefaultTaxRate is the rate preselected on new purchase order lines.
const DefaultTaxRate = TaxRateGeneral

func (t TaxRate) String() string {
	switch t {
	case TaxRateExempt:
		return "Exempt"
	case TaxRateReduced:
		return "Reduced"
	case TaxRateGeneral:
		return "General"
	}
	return "Unknown"
}

// Valid reports whether t is one of the enumerated rates.
func (t TaxRate) Valid() bool {
	switch t {
	case TaxRateExempt, TaxRateReduced, TaxRateGeneral:
		return true
	}
	return false
}

// Percent returns the rate as a decimal percentage (0.00, 3.00, 7.00).
func (t TaxRate) Percent() decimal.Decimal {
	return decimal.NewFromInt(int64(t))
}

func (t TaxRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

func (t *TaxRate) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return err
	}
	*t = TaxRate(i)
	return nil
}

func (t TaxRate) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxRate) Scan(value interface{}) error {
	if value == nil {
		*t = DefaultTaxRate
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxRate(v)
	case int:
		*t = TaxRate(v)
	}
	return nil
}
