package inventory

// Canonical payload field names
const (
	FieldName         = "name"
	FieldSKU          = "sku"
	FieldCategory     = "category"
	FieldSupplier     = "supplier"
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unit_price"
	FieldReorderLevel = "reorder_level"
	FieldExpiryDate   = "expiry_date"
	FieldDescription  = "description"
)

// aliases maps canonical field names to the legacy names still accepted on
// input. The canonical key always wins when both are supplied.
var aliases = map[string]string{
	FieldCategory:  "category_name",
	FieldSupplier:  "supplier_name",
	FieldUnitPrice: "price",
}

// Normalize maps legacy client field names onto canonical payload keys before
// validation. Unrecognized keys pass through untouched; the validator ignores
// them.
func Normalize(payload map[string]any) map[string]any {
	normalized := make(map[string]any, len(payload))
	for key, value := range payload {
		normalized[key] = value
	}
	for canonical, alias := range aliases {
		if _, ok := normalized[canonical]; ok {
			continue
		}
		if value, ok := normalized[alias]; ok {
			normalized[canonical] = value
		}
	}
	return normalized
}
