package chatbot

import "strings"

// Inquiry categories tracked by the analytics counters. General is the
// catch-all when nothing else matches.
const (
	InquiryPrice          = "price"
	InquiryShipping       = "shipping"
	InquirySpecifications = "specifications"
	InquiryAvailability   = "availability"
	InquiryGeneral        = "general"
)

// inquiryKeywords is an ordered list; the first category with a
// matching substring wins.
var inquiryKeywords = []struct {
	category string
	keywords []string
}{
	{InquiryPrice, []string{"precio", "costo", "cuánto"}},
	{InquiryShipping, []string{"envío", "entrega", "delivery"}},
	{InquirySpecifications, []string{"características", "especificaciones"}},
	{InquiryAvailability, []string{"disponible", "stock", "hay"}},
}

// productTypeKeywords maps a product-type token (matched against
// product names) to the words a user might type for it.
var productTypeKeywords = []struct {
	productType string
	keywords    []string
}{
	{"laptop", []string{"laptop", "computadora", "computer"}},
	{"smartphone", []string{"smartphone", "phone", "celular", "telefono", "mobile"}},
	{"iphone", []string{"iphone", "apple"}},
	{"android", []string{"android"}},
	{"headphones", []string{"audífonos", "audifonos", "headphones", "auriculares"}},
	{"watch", []string{"reloj", "watch", "smartwatch"}},
	{"tablet", []string{"tablet", "tableta"}},
}

var showAllKeywords = []string{"todo", "todos", "productos", "catalogo", "catálogo"}

var addToCartKeywords = []string{"agregar", "añadir", "comprar"}

var cartKeywords = []string{"carrito", "cart", "compras"}

// classifyInquiry maps free text to exactly one inquiry category.
// Pure function, independent of any engine state.
func classifyInquiry(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range inquiryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return InquiryGeneral
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
