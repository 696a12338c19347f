package ingest

import (
	"fmt"
	"strings"
)

const (
	DefaultTone = "standard"

	generateSystem = "You write restaurant menus as JSON objects. Every price is in AED (United Arab Emirates Dirham)."
	extractSystem  = "You turn raw text taken from restaurant menus into structured JSON. Keep item names and prices exactly as written and express every price in AED."
)

const draftShape = `{
  "name": "Menu name",
  "description": "Menu description",
  "items": [
    {
      "name": "Item name",
      "description": "One line description",
      "price": "45.00",
      "category": "%s",
      "imageUrl": "https://source.unsplash.com/400x300/?dish-name",
      "isBestseller": false,
      "isChefsPick": false,
      "isTodaysSpecial": false
    }
  ]
}`

// GenerationPrompt builds the instruction for drafting a menu from a cuisine
// and tone.
func GenerationPrompt(cuisine, tone string) (system, user string) {
	if strings.TrimSpace(tone) == "" {
		tone = DefaultTone
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Create a menu for a %s restaurant with about 15 items across the categories Appetizer, Main, Dessert and Drink.\n", strings.TrimSpace(cuisine))
	fmt.Fprintf(&b, "Write in a %s tone.\n", strings.TrimSpace(tone))
	b.WriteString("Respond with one JSON object and nothing else, shaped like this:\n")
	fmt.Fprintf(&b, draftShape, "Appetizer | Main | Dessert | Drink")
	b.WriteString("\nRules:\n")
	b.WriteString("- Give every item a short one line description.\n")
	b.WriteString("- Prices are decimal strings in AED: appetizers 25-55, mains 45-120, desserts 25-50, drinks 15-40.\n")
	b.WriteString("- Mark 2 or 3 items as bestsellers, exactly 2 as chef's picks and 1 or 2 as today's specials.\n")
	b.WriteString("- imageUrl uses the Unsplash format above with the dish name joined by hyphens.\n")
	b.WriteString("- No markdown.\n")
	return generateSystem, b.String()
}

// ExtractionPrompt builds the instruction for structuring text pulled from an
// uploaded menu file. text must already be truncated.
func ExtractionPrompt(text string) (system, user string) {
	var b strings.Builder
	b.WriteString("Below is text extracted from a restaurant menu file. Turn it into a structured menu.\n\n")
	b.WriteString("--- EXTRACTED MENU TEXT ---\n")
	b.WriteString(text)
	b.WriteString("\n--- END ---\n\n")
	b.WriteString("Respond with one JSON object and nothing else, shaped like this:\n")
	fmt.Fprintf(&b, draftShape, "free text, e.g. Appetizer, Main, Dessert, Drink, Soup, Salad, Side")
	b.WriteString("\nRules:\n")
	b.WriteString("- Include every item you can identify in the text.\n")
	b.WriteString("- Use the menu's own name if it has one, otherwise \"Uploaded Menu\".\n")
	b.WriteString("- Prices are decimal strings in AED. Convert other currencies approximately; estimate a fair AED price when none is given.\n")
	b.WriteString("- Write a short description when the text has none.\n")
	b.WriteString("- Choose categories that fit the text.\n")
	b.WriteString("- Mark 2 or 3 items that look popular as bestsellers and 1 or 2 as chef's picks.\n")
	b.WriteString("- No markdown.\n")
	return extractSystem, b.String()
}
