package chatbot

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"StorefrontAPI/internal/model"

	"github.com/shopspring/decimal"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in the append-only transcript.
type Message struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Sender   string          `json:"sender"`
	Products []model.Product `json:"products,omitempty"`
}

// Analytics counts what happened during the chat session.
type Analytics struct {
	Interactions           int            `json:"interactions"`
	ProductRecommendations int            `json:"productRecommendations"`
	AddToCartActions       int            `json:"addToCartActions"`
	Inquiries              map[string]int `json:"inquiries"`
	SessionDuration        int64          `json:"sessionDuration"` // seconds, cumulative
}

const greeting = "¡Hola! Soy el asistente de compras virtual. ¿En qué puedo ayudarte hoy?"

const fallbackReply = "Lo siento no entendi, porfavor especificar tu pregunta, puedo ayudarte a encontrar productos, añadirlos al carrito y responder preguntas sobre nuestra tienda. ¿Qué te gustaría hacer?"

const checkoutReply = "¡Gracias por tu compra! Tu pedido ha sido procesado. Recibirás un correo de confirmación en breve."

// Engine is the rule-based dialogue engine behind the chat widget. It
// keeps its own local cart, deliberately separate from the session
// cart: repeated adds append duplicate entries instead of merging, and
// its checkout is a canned confirmation that never creates a real
// order. Callers must not treat the two carts as the same object.
type Engine struct {
	mu         sync.Mutex
	catalog    []model.Product
	messages   []Message
	cart       []model.Product
	analytics  Analytics
	replyDelay time.Duration
	openedAt   *time.Time
	nextID     int
}

// NewEngine builds an engine over a catalog snapshot. replyDelay is a
// cosmetic presentation pause before the bot answers; zero answers
// inline.
func NewEngine(catalog []model.Product, replyDelay time.Duration) *Engine {
	e := &Engine{
		catalog:    catalog,
		replyDelay: replyDelay,
		analytics:  Analytics{Inquiries: map[string]int{}},
	}
	e.messages = append(e.messages, Message{
		ID:     e.newID(),
		Text:   greeting,
		Sender: SenderBot,
	})
	return e
}

func (e *Engine) newID() string {
	e.nextID++
	return fmt.Sprintf("msg-%d", e.nextID)
}

// Open starts tracking session duration. Safe to call repeatedly.
func (e *Engine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.openedAt == nil {
		now := time.Now()
		e.openedAt = &now
	}
}

// Close stops tracking and adds the elapsed time to the cumulative
// session duration.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.openedAt != nil {
		e.analytics.SessionDuration += int64(time.Since(*e.openedAt).Seconds())
		e.openedAt = nil
	}
}

// Submit appends the user message immediately, classifies the inquiry,
// and schedules exactly one bot reply. With a reply delay configured
// the reply lands via a fire-and-forget timer; there is no
// cancellation, a reply may arrive after the chat closed.
func (e *Engine) Submit(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	e.mu.Lock()
	e.messages = append(e.messages, Message{
		ID:     e.newID(),
		Text:   text,
		Sender: SenderUser,
	})
	e.analytics.Interactions++
	e.analytics.Inquiries[classifyInquiry(text)]++
	e.mu.Unlock()

	if e.replyDelay > 0 {
		time.AfterFunc(e.replyDelay, func() { e.respond(text) })
		return
	}
	e.respond(text)
}

// respond resolves the intent. Precedence, first match wins:
// show-all, product type, add-by-name, cart status, fallback.
func (e *Engine) respond(input string) {
	lower := strings.ToLower(input)

	e.mu.Lock()
	defer e.mu.Unlock()

	if containsAny(lower, showAllKeywords) {
		e.analytics.ProductRecommendations++
		e.appendBot("Aquí están todos nuestros productos disponibles:", e.catalog)
		return
	}

	if found := e.matchByType(lower); len(found) > 0 {
		e.analytics.ProductRecommendations++
		if len(found) == 1 {
			p := found[0]
			e.appendBot(fmt.Sprintf(
				"Aquí tienes información sobre %s: %s. El precio es $%s. ¿Te gustaría agregarlo al carrito?",
				p.Name, p.Description, p.Price.StringFixed(2)), found)
		} else {
			names := make([]string, 0, len(found))
			for _, p := range found {
				names = append(names, p.Name)
			}
			e.appendBot("Encontré los siguientes productos: "+strings.Join(names, ", "), found)
		}
		return
	}

	if containsAny(lower, addToCartKeywords) {
		for _, p := range e.catalog {
			if strings.Contains(lower, strings.ToLower(p.Name)) {
				e.cart = append(e.cart, p)
				e.analytics.AddToCartActions++
				e.appendBot(fmt.Sprintf(
					"¡He agregado %s a tu carrito! Puedes ver tu carrito haciendo clic en el botón de carrito.",
					p.Name), nil)
				return
			}
		}
	}

	if containsAny(lower, cartKeywords) {
		if len(e.cart) == 0 {
			e.appendBot("Tu carrito está vacío. ¿Te gustaría ver nuestros productos?", nil)
		} else {
			total := decimal.Zero
			for _, p := range e.cart {
				total = total.Add(p.Price)
			}
			e.appendBot(fmt.Sprintf(
				"Tu carrito contiene %d producto(s) con un total de $%s. Puedes verlo haciendo clic en el botón de carrito.",
				len(e.cart), total.StringFixed(2)), nil)
		}
		return
	}

	e.appendBot(fallbackReply, nil)
}

// matchByType collects every catalog product whose name contains a
// matched type token, accumulating across all matched types rather
// than stopping at the first.
func (e *Engine) matchByType(lower string) []model.Product {
	var found []model.Product
	for _, entry := range productTypeKeywords {
		if !containsAny(lower, entry.keywords) {
			continue
		}
		for _, p := range e.catalog {
			if strings.Contains(strings.ToLower(p.Name), entry.productType) {
				found = append(found, p)
			}
		}
	}
	return found
}

func (e *Engine) appendBot(text string, products []model.Product) {
	e.messages = append(e.messages, Message{
		ID:       e.newID(),
		Text:     text,
		Sender:   SenderBot,
		Products: products,
	})
}

// AddToCart appends the product to the local chat cart. No merge or
// quantity logic: adding twice yields two entries.
func (e *Engine) AddToCart(p model.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = append(e.cart, p)
	e.analytics.AddToCartActions++
}

// Checkout appends the canned confirmation and empties the local cart
// unconditionally. This is a simulated checkout: it does not create an
// order and does not touch the session cart.
func (e *Engine) Checkout() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appendBot(checkoutReply, nil)
	e.cart = nil
}

// Messages returns a copy of the transcript.
func (e *Engine) Messages() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// Cart returns a copy of the local chat cart.
func (e *Engine) Cart() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Product, len(e.cart))
	copy(out, e.cart)
	return out
}

// Analytics returns a snapshot of the counters.
func (e *Engine) Analytics() Analytics {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.analytics
	snap.Inquiries = make(map[string]int, len(e.analytics.Inquiries))
	for k, v := range e.analytics.Inquiries {
		snap.Inquiries[k] = v
	}
	return snap
}
