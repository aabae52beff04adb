package chatbot

import (
	"context"
	"fmt"
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testCatalog() []model.Product {
	return []model.Product{
		{ProductID: 1, Name: "Laptop Pro", Description: "Portátil de alto rendimiento", Price: money("1299.99")},
		{ProductID: 2, Name: "Smartphone X", Description: "Pantalla OLED", Price: money("899.00")},
		{ProductID: 3, Name: "Gaming Laptop", Description: "Para juegos exigentes", Price: money("1899.50")},
		{ProductID: 4, Name: "Wireless Headphones", Description: "Cancelación de ruido", Price: money("149.99")},
		{ProductID: 5, Name: "Mochila Urbana", Description: "Resistente al agua", Price: money("59.99")},
	}
}

// delay 0 so replies land synchronously
func newTestEngine() *Engine {
	return NewEngine(testCatalog(), 0)
}

func lastMessage(t *testing.T, e *Engine) Message {
	t.Helper()
	msgs := e.Messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func TestEngine_StartsWithGreeting(t *testing.T) {
	e := newTestEngine()
	msgs := e.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderBot, msgs[0].Sender)
	assert.Equal(t, greeting, msgs[0].Text)
}

func TestEngine_ShowAllProducts(t *testing.T) {
	e := newTestEngine()
	e.Submit("quiero ver todos los productos")

	reply := lastMessage(t, e)
	assert.Equal(t, SenderBot, reply.Sender)
	assert.Len(t, reply.Products, 5, "the full catalog rides on the reply")
	assert.Equal(t, 1, e.Analytics().ProductRecommendations)
}

func TestEngine_MatchesByProductType(t *testing.T) {
	e := newTestEngine()
	e.Submit("busco una laptop")

	reply := lastMessage(t, e)
	require.Len(t, reply.Products, 2)
	assert.Equal(t, "Laptop Pro", reply.Products[0].Name)
	assert.Equal(t, "Gaming Laptop", reply.Products[1].Name)
	assert.Contains(t, reply.Text, "Laptop Pro")
	assert.Contains(t, reply.Text, "Gaming Laptop")
}

func TestEngine_SingleTypeMatchIncludesPrice(t *testing.T) {
	e := newTestEngine()
	e.Submit("busco un celular")

	reply := lastMessage(t, e)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "Smartphone X", reply.Products[0].Name)
	assert.Contains(t, reply.Text, "$899.00")
}

// "auriculares" is a synonym for the headphones product type even
// though the catalog name is in English.
func TestEngine_SpanishSynonymsMatch(t *testing.T) {
	e := newTestEngine()
	e.Submit("tienen auriculares?")

	reply := lastMessage(t, e)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "Wireless Headphones", reply.Products[0].Name)
}

func TestEngine_UnrecognizedInputFallsBack(t *testing.T) {
	e := newTestEngine()
	e.Submit("xyzzy qwerty")

	reply := lastMessage(t, e)
	assert.Equal(t, fallbackReply, reply.Text)
	assert.Empty(t, reply.Products)
	assert.Equal(t, 0, e.Analytics().ProductRecommendations)
}

func TestEngine_AddByNameFromText(t *testing.T) {
	e := newTestEngine()
	e.Submit("quiero comprar la Mochila Urbana")

	reply := lastMessage(t, e)
	assert.Contains(t, reply.Text, "Mochila Urbana")
	require.Len(t, e.Cart(), 1)
	assert.Equal(t, int64(5), e.Cart()[0].ProductID)
	assert.Equal(t, 1, e.Analytics().AddToCartActions)
}

// The chat cart appends duplicates; it never merges lines the way the
// session cart does.
func TestEngine_CartAllowsDuplicates(t *testing.T) {
	e := newTestEngine()
	p := testCatalog()[0]
	e.AddToCart(p)
	e.AddToCart(p)

	cart := e.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, cart[0].ProductID, cart[1].ProductID)
	assert.Equal(t, 2, e.Analytics().AddToCartActions)
}

func TestEngine_CartStatusReply(t *testing.T) {
	e := newTestEngine()
	e.AddToCart(testCatalog()[0]) // 1299.99
	e.AddToCart(testCatalog()[3]) // 149.99
	e.Submit("ver mi carrito")

	reply := lastMessage(t, e)
	assert.Contains(t, reply.Text, "2 producto(s)")
	assert.Contains(t, reply.Text, "$1449.98")
}

func TestEngine_EmptyCartStatusReply(t *testing.T) {
	e := newTestEngine()
	e.Submit("carrito")

	reply := lastMessage(t, e)
	assert.Contains(t, reply.Text, "vacío")
}

func TestEngine_CheckoutClearsCartWithCannedReply(t *testing.T) {
	e := newTestEngine()
	e.AddToCart(testCatalog()[0])
	e.Checkout()

	assert.Empty(t, e.Cart())
	assert.Equal(t, checkoutReply, lastMessage(t, e).Text)

	// checkout again on the already-empty cart behaves the same
	e.Checkout()
	assert.Empty(t, e.Cart())
}

func TestEngine_BlankSubmitIgnored(t *testing.T) {
	e := newTestEngine()
	e.Submit("   ")

	assert.Len(t, e.Messages(), 1)
	assert.Equal(t, 0, e.Analytics().Interactions)
}

func TestEngine_AnalyticsCounters(t *testing.T) {
	e := newTestEngine()
	e.Submit("cuánto cuesta la laptop")
	e.Submit("hacen envío a Barcelona?")
	e.Submit("hola")

	a := e.Analytics()
	assert.Equal(t, 3, a.Interactions)
	assert.Equal(t, 1, a.Inquiries[InquiryPrice])
	assert.Equal(t, 1, a.Inquiries[InquiryShipping])
	assert.Equal(t, 1, a.Inquiries[InquiryGeneral])
}

func TestClassifyInquiry(t *testing.T) {
	cases := map[string]string{
		"¿Cuál es el precio?":       InquiryPrice,
		"costo de envío":            InquiryPrice, // price keywords win by order
		"tiempo de entrega":         InquiryShipping,
		"qué características tiene": InquirySpecifications,
		"¿hay stock disponible?":    InquiryAvailability,
		"hola, busco un regalo":     InquiryGeneral,
	}
	for text, want := range cases {
		assert.Equal(t, want, classifyInquiry(text), text)
	}
}

func TestEngine_MessagesReturnsCopy(t *testing.T) {
	e := newTestEngine()
	msgs := e.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, greeting, e.Messages()[0].Text)
}

type staticCatalog struct {
	products []model.Product
}

func (c staticCatalog) List(_ context.Context, _ int) ([]model.Product, error) {
	return c.products, nil
}

func TestRegistry_OneEnginePerSession(t *testing.T) {
	r := NewRegistry(staticCatalog{products: testCatalog()}, 0)
	ctx := context.Background()

	a, err := r.Engine(ctx, "sess-a")
	require.NoError(t, err)
	a2, err := r.Engine(ctx, "sess-a")
	require.NoError(t, err)
	b, err := r.Engine(ctx, "sess-b")
	require.NoError(t, err)

	assert.Same(t, a, a2, "same session gets the same engine")
	assert.NotSame(t, a, b, "sessions do not share conversations")

	a.AddToCart(testCatalog()[0])
	assert.Empty(t, b.Cart())
}

// pagedCatalog truncates like a paginated store read would.
type pagedCatalog struct {
	products []model.Product
}

func (c pagedCatalog) List(_ context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 || limit >= len(c.products) {
		return c.products, nil
	}
	return c.products[:limit], nil
}

// The engine snapshot must cover the whole catalog, not a default
// page. With a truncated snapshot "show all" silently lies and
// keyword matching never sees the later products.
func TestRegistry_SnapshotCoversWholeCatalog(t *testing.T) {
	products := make([]model.Product, 0, 120)
	for i := 1; i <= 120; i++ {
		products = append(products, model.Product{
			ProductID: int64(i),
			Name:      fmt.Sprintf("Producto %d", i),
			Price:     money("10.00"),
		})
	}
	products[len(products)-1].Name = "Laptop Última"

	r := NewRegistry(pagedCatalog{products: products}, 0)
	e, err := r.Engine(context.Background(), "sess-a")
	require.NoError(t, err)

	e.Submit("quiero ver todos los productos")
	assert.Len(t, lastMessage(t, e).Products, 120)

	// a product past the first page is still matchable by type
	e.Submit("busco una laptop")
	reply := lastMessage(t, e)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "Laptop Última", reply.Products[0].Name)
}
