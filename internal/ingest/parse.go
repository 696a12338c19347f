package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

const (
	msgUnparseable = "The AI service returned an unusable response. Please try again."
	msgNoItems     = "The AI service did not return any usable menu items. Please try again."
)

// ParsedMenu is a provider response after every item has been re-validated.
// Dropped counts items that could not be decoded or failed validation.
type ParsedMenu struct {
	Name        string
	Description string
	Items       []types.ItemDraft
	Dropped     int
}

// flexString accepts a JSON string, number, bool or null.
type flexString struct {
	Value string
	Set   bool
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = flexString{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString{Value: str, Set: true}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString{Value: num.String(), Set: true}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = flexString{Value: strconv.FormatBool(b), Set: true}
		return nil
	}
	return fmt.Errorf("expected a string, got %s", data)
}

func (s flexString) ptr() *string {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// flexBool accepts a JSON bool, the strings "true"/"false", or null.
type flexBool struct {
	Value *bool
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		b.Value = nil
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		b.Value = &v
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, perr := strconv.ParseBool(strings.TrimSpace(str))
		if perr != nil {
			return fmt.Errorf("expected a bool, got %q", str)
		}
		b.Value = &parsed
		return nil
	}
	return fmt.Errorf("expected a bool, got %s", data)
}

type wireItem struct {
	Name            flexString `json:"name"`
	Description     flexString `json:"description"`
	Price           flexString `json:"price"`
	Category        flexString `json:"category"`
	ImageURL        flexString `json:"imageUrl"`
	IsAvailable     flexBool   `json:"isAvailable"`
	IsBestseller    flexBool   `json:"isBestseller"`
	IsChefsPick     flexBool   `json:"isChefsPick"`
	IsTodaysSpecial flexBool   `json:"isTodaysSpecial"`
}

type wireMenu struct {
	Name        flexString        `json:"name"`
	Description flexString        `json:"description"`
	Items       []json.RawMessage `json:"items"`
}

// ParseDraft decodes untrusted provider text into a menu draft. Each item is
// decoded and validated on its own; items that fail are dropped, never
// repaired. defaultName is used when the response carries no menu name.
func ParseDraft(raw, defaultName string) (*ParsedMenu, error) {
	body, ok := jsonObject(raw)
	if !ok {
		return nil, apperr.New(apperr.KindProviderResponse, msgUnparseable)
	}

	var menu wireMenu
	if err := json.Unmarshal([]byte(body), &menu); err != nil {
		return nil, apperr.Wrap(apperr.KindProviderResponse, msgUnparseable, err)
	}

	parsed := &ParsedMenu{
		Name:        strings.TrimSpace(menu.Name.Value),
		Description: strings.TrimSpace(menu.Description.Value),
		Items:       make([]types.ItemDraft, 0, len(menu.Items)),
	}
	if parsed.Name == "" {
		parsed.Name = defaultName
	}

	for _, rawItem := range menu.Items {
		draft, ok := decodeItem(rawItem)
		if !ok {
			parsed.Dropped++
			continue
		}
		parsed.Items = append(parsed.Items, draft)
	}

	if len(parsed.Items) == 0 {
		return nil, apperr.New(apperr.KindProviderResponse, msgNoItems)
	}
	return parsed, nil
}

func decodeItem(raw json.RawMessage) (types.ItemDraft, bool) {
	var w wireItem
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.ItemDraft{}, false
	}
	draft := types.ItemDraft{
		Name:            w.Name.Value,
		Description:     w.Description.ptr(),
		Price:           w.Price.Value,
		Category:        w.Category.Value,
		ImageURL:        w.ImageURL.ptr(),
		IsAvailable:     w.IsAvailable.Value,
		IsBestseller:    w.IsBestseller.Value,
		IsChefsPick:     w.IsChefsPick.Value,
		IsTodaysSpecial: w.IsTodaysSpecial.Value,
	}
	return Revalidate(draft)
}

// Revalidate runs a draft through the item validator and returns it in
// normalised form.
func Revalidate(draft types.ItemDraft) (types.ItemDraft, bool) {
	item, err := validation.ValidateItemDraft(draft)
	if err != nil {
		return types.ItemDraft{}, false
	}
	draft.Name = item.Name
	draft.Description = item.Description
	draft.Price = item.Price
	draft.Category = item.Category
	draft.ImageURL = item.ImageURL
	return draft, true
}

// jsonObject returns the outermost {...} span of s, which tolerates a
// markdown fence or stray prose around the object.
func jsonObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
