package bgg

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/bggtools/shelfsync/internal/models"
)

// ParseCollection extracts owned game ids from a /collection response
// body. Items are filtered to the boardgame subtype, ids that fail to
// parse are skipped, and duplicates are removed while preserving the
// order of first appearance.
func ParseCollection(body []byte) ([]int64, error) {
	var doc collectionDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("malformed collection response: %w", err)
	}

	seen := make(map[int64]struct{}, len(doc.Items))
	ids := make([]int64, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item.Subtype != "boardgame" {
			continue
		}
		id, err := strconv.ParseInt(item.ObjectID, 10, 64)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseThings extracts normalized records from a /thing response body.
// Items without a usable id or name are dropped; a bad item never fails
// the batch.
func ParseThings(body []byte) ([]models.Thing, error) {
	var doc thingDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("malformed thing response: %w", err)
	}

	things := make([]models.Thing, 0, len(doc.Items))
	for _, item := range doc.Items {
		if thing := normalizeThing(item); thing != nil {
			things = append(things, *thing)
		}
	}
	return things, nil
}

// normalizeThing flattens one detail item, or returns nil when the item
// lacks a parseable id or a name.
func normalizeThing(item thingItem) *models.Thing {
	id, err := strconv.ParseInt(strings.TrimSpace(item.ID), 10, 64)
	if err != nil {
		return nil
	}

	name := displayName(item.Names)
	if name == "" {
		return nil
	}

	return &models.Thing{
		BGGID:         id,
		Name:          name,
		YearPublished: intValue(item.YearPublished),
		MinPlayers:    intValue(item.MinPlayers),
		MaxPlayers:    intValue(item.MaxPlayers),
		PlayingTime:   intValue(item.PlayingTime),
		ThumbnailURL:  textValue(item.Thumbnail),
	}
}

// displayName selects the name flagged primary, falling back to the
// first listed name.
func displayName(names []thingName) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

// intValue parses a numeric attribute slot. Missing or unparseable
// values are absent, never zero.
func intValue(node *valueAttr) *int {
	if node == nil {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(node.Value))
	if err != nil {
		return nil
	}
	return &v
}

func textValue(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
