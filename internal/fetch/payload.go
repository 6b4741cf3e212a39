package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
)

// puzzle mirrors the remote JSON document. Unknown fields are ignored.
type puzzle struct {
	Status     *string    `json:"status"`
	Categories []category `json:"categories"`
}

type category struct {
	Title string `json:"title"`
	Cards []card `json:"cards"`
}

type card struct {
	Position     *int    `json:"position"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"image_url"`
	ImageAltText *string `json:"image_alt_text"`
}

var (
	errMissingStatus     = errors.New("missing status")
	errMissingCategories = errors.New("missing categories")
)

// ParseTiles decodes a puzzle document into tiles ordered by card position.
// Tile identities are assigned 0..n-1 in that order.
func ParseTiles(body []byte) ([]connections.Tile, error) {
	var p puzzle
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding puzzle: %w", err)
	}
	if p.Status == nil {
		return nil, errMissingStatus
	}
	if p.Categories == nil {
		return nil, errMissingCategories
	}

	var cards []card
	for i, c := range p.Categories {
		if c.Cards == nil {
			return nil, fmt.Errorf("category %d: missing cards", i)
		}
		for j, cd := range c.Cards {
			if cd.Position == nil {
				return nil, fmt.Errorf("category %d card %d: missing position", i, j)
			}
			cards = append(cards, cd)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return *cards[i].Position < *cards[j].Position
	})

	tiles := make([]connections.Tile, 0, len(cards))
	for i, cd := range cards {
		content, err := cd.toContent()
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", *cd.Position, err)
		}
		tiles = append(tiles, connections.NewTile(i, content))
	}
	return tiles, nil
}

func (c card) toContent() (connections.Content, error) {
	switch {
	case c.ImageURL != nil:
		alt := ""
		if c.ImageAltText != nil {
			alt = *c.ImageAltText
		}
		return connections.ImageContent{URL: *c.ImageURL, AltText: alt}, nil
	case c.Content != nil:
		return connections.TextContent{Text: *c.Content}, nil
	default:
		return nil, errors.New("card has neither content nor image_url")
	}
}
