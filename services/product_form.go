package services

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProductForm is the shape exchanged with the add/edit product form and
// produced by product import. RowID is set when editing an existing row.
type ProductForm struct {
	ProductName string `json:"productName"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	Discount    string `json:"discount"`
	RowID       string `json:"rowId,omitempty"`
}

// numeric accepts empty strings (defaults apply) or anything the cell
// parser can read as a non-negative number.
func numeric(kind NumericKind) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, ok := TryParseNumeric(s, kind); !ok {
			return errors.New("must be a non-negative number")
		}
		return nil
	})
}

// Validate checks the form before a row is built from it.
func (f ProductForm) Validate() error {
	f.ProductName = strings.TrimSpace(f.ProductName)
	return validation.ValidateStruct(&f,
		validation.Field(&f.ProductName, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Description, validation.Length(0, 1000)),
		validation.Field(&f.Quantity, numeric(KindQuantity)),
		validation.Field(&f.Price, numeric(KindPrice)),
		validation.Field(&f.Discount, numeric(KindDiscount)),
	)
}

// Normalized trims the text fields and fills omitted numbers with their
// defaults (quantity 1, price 0, discount 0).
func (f ProductForm) Normalized() ProductForm {
	f.ProductName = strings.TrimSpace(f.ProductName)
	f.Description = strings.TrimSpace(f.Description)
	f.Quantity = ParseNumeric(f.Quantity, KindQuantity).String()
	f.Price = ParseNumeric(f.Price, KindPrice).String()
	f.Discount = ParseNumeric(f.Discount, KindDiscount).String()
	return f
}

// FieldErrors validates the form and returns one message per invalid
// field, keyed by the form field name. A valid form yields an empty map.
func (f ProductForm) FieldErrors() map[string]string {
	errs := make(map[string]string)
	err := f.Validate()
	if err == nil {
		return errs
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		errs["productName"] = err.Error()
		return errs
	}
	for field, fieldErr := range fieldErrs {
		errs[field] = fieldErr.Error()
	}
	return errs
}
