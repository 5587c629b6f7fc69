package bgg

import "encoding/xml"

// XML documents returned by the BGG API. Every value of interest lives
// in an attribute slot; ids and numbers arrive as strings and are
// validated during normalization, not decoding.

// collectionDoc is the body of /collection responses.
type collectionDoc struct {
	XMLName xml.Name         `xml:"items"`
	Items   []collectionItem `xml:"item"`
}

type collectionItem struct {
	ObjectID string `xml:"objectid,attr"`
	Subtype  string `xml:"subtype,attr"`
}

// thingDoc is the body of /thing responses.
type thingDoc struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

type thingItem struct {
	ID            string      `xml:"id,attr"`
	Names         []thingName `xml:"name"`
	YearPublished *valueAttr  `xml:"yearpublished"`
	MinPlayers    *valueAttr  `xml:"minplayers"`
	MaxPlayers    *valueAttr  `xml:"maxplayers"`
	PlayingTime   *valueAttr  `xml:"playingtime"`
	Thumbnail     string      `xml:"thumbnail"`
}

// thingName is one localized name; the one flagged type="primary" is
// the display name.
type thingName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// valueAttr is the typed-node encoding BGG uses for numeric fields:
// <minplayers value="2"/>.
type valueAttr struct {
	Value string `xml:"value,attr"`
}
