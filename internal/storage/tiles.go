package storage

import (
	"encoding/json"
	"fmt"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
)

// tileRecord is the stored form of a connections.Tile.
// Exactly one of Text and ImageURL is set.
type tileRecord struct {
	Initial  int    `json:"initial"`
	Current  int    `json:"current"`
	Selected bool   `json:"selected,omitempty"`
	Category string `json:"category,omitempty"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
}

func encodeTiles(tiles []connections.Tile) ([]byte, error) {
	records := make([]tileRecord, len(tiles))
	for i, t := range tiles {
		r := tileRecord{
			Initial:  t.InitialPosition,
			Current:  t.CurrentPosition,
			Selected: t.Selected,
		}
		if t.HasCategory() {
			r.Category = t.Category.String()
		}
		switch c := t.Content.(type) {
		case connections.TextContent:
			r.Text = c.Text
		case connections.ImageContent:
			r.ImageURL = c.URL
			r.AltText = c.AltText
		default:
			return nil, fmt.Errorf("tile %d: unsupported content %T", t.InitialPosition, t.Content)
		}
		records[i] = r
	}
	return json.Marshal(records)
}

func decodeTiles(data []byte) ([]connections.Tile, error) {
	var records []tileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	tiles := make([]connections.Tile, len(records))
	for i, r := range records {
		t := connections.Tile{
			InitialPosition: r.Initial,
			CurrentPosition: r.Current,
			Selected:        r.Selected,
		}
		if r.Category != "" {
			c, err := connections.ParseCategory(r.Category)
			if err != nil {
				return nil, fmt.Errorf("tile %d: %w", r.Initial, err)
			}
			t.Category = c
		}
		if r.ImageURL != "" {
			t.Content = connections.ImageContent{URL: r.ImageURL, AltText: r.AltText}
		} else {
			t.Content = connections.TextContent{Text: r.Text}
		}
		tiles[i] = t
	}
	return tiles, nil
}
