package bgg

import "testing"

func TestParseCollection(t *testing.T) {
	t.Run("filters, dedupes and preserves order", func(t *testing.T) {
		body := []byte(`<items totalitems="5">
			<item objecttype="thing" objectid="174430" subtype="boardgame"/>
			<item objecttype="thing" objectid="68448" subtype="boardgameexpansion"/>
			<item objecttype="thing" objectid="224517" subtype="boardgame"/>
			<item objecttype="thing" objectid="174430" subtype="boardgame"/>
			<item objecttype="thing" objectid="notanid" subtype="boardgame"/>
		</items>`)

		ids, err := ParseCollection(body)
		if err != nil {
			t.Fatalf("ParseCollection() error = %v", err)
		}

		want := []int64{174430, 224517}
		if len(ids) != len(want) {
			t.Fatalf("got %d ids, want %d: %v", len(ids), len(want), ids)
		}
		for i, id := range want {
			if ids[i] != id {
				t.Errorf("ids[%d] = %d, want %d", i, ids[i], id)
			}
		}
	})

	t.Run("empty collection yields no ids", func(t *testing.T) {
		ids, err := ParseCollection([]byte(`<items totalitems="0"></items>`))
		if err != nil {
			t.Fatalf("ParseCollection() error = %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("got %v, want empty", ids)
		}
	})

	t.Run("malformed XML fails", func(t *testing.T) {
		if _, err := ParseCollection([]byte(`<items><item`)); err == nil {
			t.Error("expected error for malformed XML")
		}
	})
}

func TestParseThings(t *testing.T) {
	t.Run("prefers the primary name", func(t *testing.T) {
		body := []byte(`<items>
			<item type="boardgame" id="174430">
				<thumbnail>https://example.test/thumb.jpg</thumbnail>
				<name type="alternate" sortindex="1" value="Gloomy Haven"/>
				<name type="primary" sortindex="1" value="Gloomhaven"/>
				<yearpublished value="2017"/>
				<minplayers value="1"/>
				<maxplayers value="4"/>
				<playingtime value="120"/>
			</item>
		</items>`)

		things, err := ParseThings(body)
		if err != nil {
			t.Fatalf("ParseThings() error = %v", err)
		}
		if len(things) != 1 {
			t.Fatalf("got %d things, want 1", len(things))
		}

		got := things[0]
		if got.BGGID != 174430 {
			t.Errorf("BGGID = %d, want 174430", got.BGGID)
		}
		if got.Name != "Gloomhaven" {
			t.Errorf("Name = %q, want Gloomhaven", got.Name)
		}
		if got.YearPublished == nil || *got.YearPublished != 2017 {
			t.Errorf("YearPublished = %v, want 2017", got.YearPublished)
		}
		if got.MinPlayers == nil || *got.MinPlayers != 1 {
			t.Errorf("MinPlayers = %v, want 1", got.MinPlayers)
		}
		if got.MaxPlayers == nil || *got.MaxPlayers != 4 {
			t.Errorf("MaxPlayers = %v, want 4", got.MaxPlayers)
		}
		if got.PlayingTime == nil || *got.PlayingTime != 120 {
			t.Errorf("PlayingTime = %v, want 120", got.PlayingTime)
		}
		if got.ThumbnailURL == nil || *got.ThumbnailURL != "https://example.test/thumb.jpg" {
			t.Errorf("ThumbnailURL = %v, want thumb url", got.ThumbnailURL)
		}
	})

	t.Run("falls back to the first name without a primary", func(t *testing.T) {
		body := []byte(`<items>
			<item id="42">
				<name type="alternate" value="Erster Name"/>
				<name type="alternate" value="Second Name"/>
			</item>
		</items>`)

		things, err := ParseThings(body)
		if err != nil {
			t.Fatalf("ParseThings() error = %v", err)
		}
		if len(things) != 1 || things[0].Name != "Erster Name" {
			t.Fatalf("got %+v, want one thing named Erster Name", things)
		}
	})

	t.Run("absent numeric fields stay absent", func(t *testing.T) {
		body := []byte(`<items>
			<item id="7"><name type="primary" value="Sparse"/></item>
		</items>`)

		things, err := ParseThings(body)
		if err != nil {
			t.Fatalf("ParseThings() error = %v", err)
		}
		got := things[0]
		if got.YearPublished != nil || got.MinPlayers != nil || got.MaxPlayers != nil || got.PlayingTime != nil {
			t.Errorf("expected nil numeric fields, got %+v", got)
		}
		if got.ThumbnailURL != nil {
			t.Errorf("ThumbnailURL = %v, want nil", got.ThumbnailURL)
		}
	})

	t.Run("present zero is kept as zero", func(t *testing.T) {
		body := []byte(`<items>
			<item id="7"><name type="primary" value="Zeroes"/><yearpublished value="0"/></item>
		</items>`)

		things, err := ParseThings(body)
		if err != nil {
			t.Fatalf("ParseThings() error = %v", err)
		}
		if things[0].YearPublished == nil || *things[0].YearPublished != 0 {
			t.Errorf("YearPublished = %v, want 0", things[0].YearPublished)
		}
	})

	t.Run("drops items without a usable id or name", func(t *testing.T) {
		body := []byte(`<items>
			<item id="oops"><name type="primary" value="Bad ID"/></item>
			<item id="9"></item>
			<item id="10"><name type="primary" value="Kept"/></item>
		</items>`)

		things, err := ParseThings(body)
		if err != nil {
			t.Fatalf("ParseThings() error = %v", err)
		}
		if len(things) != 1 || things[0].Name != "Kept" {
			t.Fatalf("got %+v, want only Kept", things)
		}
	})
}
