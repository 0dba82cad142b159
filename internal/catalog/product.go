package catalog

import "strconv"

// PlaceholderImage is shown for products whose image field is absent or blank.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Sem+imagem"

// Product is a catalog entry after normalization. Every field carries a
// defined default, so consumers never have to null-check upstream data.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// normalizeProduct maps one raw upstream record onto a Product, applying the
// documented defaults for missing or mistyped fields. A nil record yields a
// fully defaulted Product.
func normalizeProduct(record map[string]any) Product {
	product := Product{
		ID:          int64(numberField(record, "id")),
		Title:       stringField(record, "title"),
		Price:       numberField(record, "price"),
		Description: stringField(record, "description"),
		Category:    stringField(record, "category"),
		Image:       stringField(record, "image"),
	}

	if product.Image == "" {
		product.Image = PlaceholderImage
	}

	if rating, ok := record["rating"].(map[string]any); ok {
		product.Rating = Rating{
			Rate:  numberField(rating, "rate"),
			Count: int(numberField(rating, "count")),
		}
	}

	return product
}

func stringField(record map[string]any, key string) string {
	if value, ok := record[key].(string); ok {
		return value
	}
	return ""
}

// numberField coerces a field to float64, accepting JSON numbers and numeric
// strings. Anything else defaults to 0.
func numberField(record map[string]any, key string) float64 {
	switch value := record[key].(type) {
	case float64:
		return value
	case string:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// coerceCategory turns one raw category entry into a string. Non-scalar
// entries are dropped by returning "".
func coerceCategory(entry any) string {
	switch value := entry.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}
	return ""
}
