package synthesis

import (
	"sync"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/language"
)

// MaxHistory bounds the dialogue history kept per session.
const MaxHistory = 10

// Turn is one exchange entry in the dialogue history.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// DialogueContext tracks per-session conversation history and the farm
// profile that backs entity defaults. Safe for concurrent use.
type DialogueContext struct {
	mu      sync.Mutex
	history []Turn

	Crop     string
	Location string
	Quantity string
	Tab      language.Tab
}

func NewDialogueContext() *DialogueContext {
	return &DialogueContext{
		Crop:     language.DefaultCrop,
		Location: language.DefaultLocation,
		Quantity: language.DefaultQuantity,
		Tab:      language.TabMarket,
	}
}

// Add appends a turn, evicting the oldest entry past MaxHistory.
func (c *DialogueContext) Add(role, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, Turn{Role: role, Text: text})
	if len(c.history) > MaxHistory {
		c.history = c.history[len(c.history)-MaxHistory:]
	}
}

// History returns a copy of the retained turns, oldest first.
func (c *DialogueContext) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.history))
	copy(out, c.history)
	return out
}

// Defaults merges extracted entities with the farm profile, applying the
// catalog defaults for anything still empty.
func (c *DialogueContext) Defaults(e classify.Entities) (crop, location, quantity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	crop = pick(e.Crop, c.Crop, language.DefaultCrop)
	location = pick(e.Location, c.Location, language.DefaultLocation)
	quantity = pick(e.Quantity, c.Quantity, language.DefaultQuantity)
	return crop, location, quantity
}

// Remember updates the farm profile with entities the farmer mentioned,
// so later utterances inherit them.
func (c *DialogueContext) Remember(e classify.Entities) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.Crop != "" {
		c.Crop = e.Crop
	}
	if e.Location != "" {
		c.Location = e.Location
	}
	if e.Quantity != "" {
		c.Quantity = e.Quantity
	}
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
