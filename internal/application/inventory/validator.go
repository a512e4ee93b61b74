package inventory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Validation messages surfaced to clients. These are part of the API contract
// and must not be reworded.
const (
	MsgNameRequired     = "Item name is required."
	MsgSKURequired      = "SKU is required."
	MsgQuantityRequired = "Quantity is required."
	MsgQuantityNegative = "Quantity cannot be negative."
	MsgPriceRequired    = "Unit price is required."
	MsgPriceInvalid     = "Invalid price format."
	MsgPriceNegative    = "Price cannot be negative."
	MsgPriceTooLarge    = "Price exceeds maximum allowed value (99,999,999.99)."
	MsgDateInvalid      = "Invalid date format."
)

// MsgSKUConflict formats the duplicate-SKU message for a given SKU value
func MsgSKUConflict(sku string) string {
	return fmt.Sprintf("Inventory item with SKU '%s' already exists.", sku)
}

// expiryDateFormats are the accepted input shapes for expiry dates, tried in
// order. Output is always YYYY-MM-DD.
var expiryDateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Validate merges a normalized payload into a candidate record and accumulates
// per-field errors. For partial updates only supplied fields are validated;
// omitted fields retain the existing record's values. The candidate is always
// returned so callers can run cross-record checks (SKU uniqueness) and fold
// their findings into the same error set.
func Validate(payload map[string]any, existing *domain.Item, partial bool) (*domain.Item, *shared.ValidationError) {
	verr := shared.NewValidationError()

	var candidate domain.Item
	if existing != nil {
		candidate = *existing
	} else {
		candidate.ReorderLevel = domain.DefaultReorderLevel
	}

	validateName(payload, &candidate, partial, verr)
	validateSKU(payload, &candidate, partial, verr)
	validateQuantity(payload, &candidate, partial, verr)
	validateUnitPrice(payload, &candidate, partial, verr)
	validateReorderLevel(payload, &candidate, partial)
	validateExpiryDate(payload, &candidate, verr)
	applyOptionalText(payload, &candidate)

	return &candidate, verr
}

func validateName(payload map[string]any, candidate *domain.Item, partial bool, verr *shared.ValidationError) {
	value, supplied := payload[FieldName]
	if !supplied {
		if !partial {
			verr.Add(FieldName, MsgNameRequired)
		}
		return
	}
	name, ok := asString(value)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		verr.Add(FieldName, MsgNameRequired)
		return
	}
	candidate.Name = name
}

func validateSKU(payload map[string]any, candidate *domain.Item, partial bool, verr *shared.ValidationError) {
	value, supplied := payload[FieldSKU]
	if !supplied {
		if !partial {
			verr.Add(FieldSKU, MsgSKURequired)
		}
		return
	}
	sku, ok := asString(value)
	sku = strings.TrimSpace(sku)
	if !ok || sku == "" {
		verr.Add(FieldSKU, MsgSKURequired)
		return
	}
	candidate.SKU = sku
}

func validateQuantity(payload map[string]any, candidate *domain.Item, partial bool, verr *shared.ValidationError) {
	value, supplied := payload[FieldQuantity]
	if !supplied {
		if !partial {
			verr.Add(FieldQuantity, MsgQuantityRequired)
		}
		return
	}
	quantity, ok := asInt(value)
	if !ok {
		verr.Add(FieldQuantity, MsgQuantityRequired)
		return
	}
	if quantity < 0 {
		verr.Add(FieldQuantity, MsgQuantityNegative)
		return
	}
	candidate.Quantity = quantity
}

func validateUnitPrice(payload map[string]any, candidate *domain.Item, partial bool, verr *shared.ValidationError) {
	value, supplied := payload[FieldUnitPrice]
	if !supplied {
		if !partial {
			verr.Add(FieldUnitPrice, MsgPriceRequired)
		}
		return
	}
	if value == nil {
		verr.Add(FieldUnitPrice, MsgPriceRequired)
		return
	}
	price, ok := asDecimal(value)
	if !ok {
		verr.Add(FieldUnitPrice, MsgPriceInvalid)
		return
	}
	if price.IsNegative() {
		verr.Add(FieldUnitPrice, MsgPriceNegative)
		return
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(domain.MaxUnitPrice) {
		verr.Add(FieldUnitPrice, MsgPriceTooLarge)
		return
	}
	candidate.UnitPrice = price
}

// validateReorderLevel never raises; absent or null values silently take the
// default on create and full update, and are retained on partial update.
func validateReorderLevel(payload map[string]any, candidate *domain.Item, partial bool) {
	value, supplied := payload[FieldReorderLevel]
	if !supplied {
		if !partial {
			candidate.ReorderLevel = domain.DefaultReorderLevel
		}
		return
	}
	level, ok := asInt(value)
	if !ok || level < 0 {
		candidate.ReorderLevel = domain.DefaultReorderLevel
		return
	}
	candidate.ReorderLevel = level
}

func validateExpiryDate(payload map[string]any, candidate *domain.Item, verr *shared.ValidationError) {
	value, supplied := payload[FieldExpiryDate]
	if !supplied {
		return
	}
	if value == nil {
		candidate.ExpiryDate = nil
		return
	}
	raw, ok := asString(value)
	if !ok {
		verr.Add(FieldExpiryDate, MsgDateInvalid)
		return
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		candidate.ExpiryDate = nil
		return
	}
	parsed, ok := parseExpiryDate(raw)
	if !ok {
		verr.Add(FieldExpiryDate, MsgDateInvalid)
		return
	}
	candidate.ExpiryDate = &parsed
}

func applyOptionalText(payload map[string]any, candidate *domain.Item) {
	if value, supplied := payload[FieldCategory]; supplied {
		candidate.Category = optionalString(value)
	}
	if value, supplied := payload[FieldSupplier]; supplied {
		candidate.Supplier = optionalString(value)
	}
	if value, supplied := payload[FieldDescription]; supplied {
		candidate.Description = optionalString(value)
	}
}

// parseExpiryDate tries each accepted format and truncates to a calendar date
func parseExpiryDate(raw string) (time.Time, bool) {
	for _, format := range expiryDateFormats {
		parsed, err := time.Parse(format, raw)
		if err != nil {
			continue
		}
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func optionalString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// asInt accepts the shapes a JSON payload can carry an integer in: a number
// (float64 after decoding), a json.Number, a numeric string, or a native int.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func asDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}
