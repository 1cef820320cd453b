package tcgdex

import "github.com/SergioXp/holostack/internal/core/domain"

// Wire types mirror the TCGdex v2 JSON payloads.

type cardCountJSON struct {
	Total    int `json:"total"`
	Official int `json:"official"`
}

type serieRefJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type setBriefJSON struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Logo      string        `json:"logo"`
	Symbol    string        `json:"symbol"`
	CardCount cardCountJSON `json:"cardCount"`
}

type setJSON struct {
	setBriefJSON
	ReleaseDate string          `json:"releaseDate"`
	Serie       serieRefJSON    `json:"serie"`
	Cards       []cardBriefJSON `json:"cards"`
}

type serieJSON struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Sets []setBriefJSON `json:"sets"`
}

type cardBriefJSON struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`
	Image   string `json:"image"`
}

type cardJSON struct {
	cardBriefJSON
	Category    string       `json:"category"`
	Rarity      string       `json:"rarity"`
	Illustrator string       `json:"illustrator"`
	HP          int          `json:"hp"`
	Types       []string     `json:"types"`
	Set         setBriefJSON `json:"set"`
}

func (b cardBriefJSON) toDomain() domain.CardBrief {
	return domain.CardBrief{
		ID:      b.ID,
		LocalID: b.LocalID,
		Name:    b.Name,
		Image:   b.Image,
	}
}

func (s setBriefJSON) toDomain(series string) domain.Set {
	return domain.Set{
		ID:                s.ID,
		Name:              s.Name,
		Series:            series,
		CardCountOfficial: s.CardCount.Official,
		CardCountTotal:    s.CardCount.Total,
		Symbol:            s.Symbol,
		Logo:              s.Logo,
	}
}

func (s setJSON) toDomain() domain.Set {
	set := s.setBriefJSON.toDomain(s.Serie.Name)
	set.ReleaseDate = s.ReleaseDate
	set.Cards = briefsToDomain(s.Cards)
	return set
}

func (c cardJSON) toDomain() domain.Card {
	return domain.Card{
		ID:          c.ID,
		LocalID:     c.LocalID,
		Name:        c.Name,
		Category:    c.Category,
		Rarity:      c.Rarity,
		Types:       c.Types,
		HP:          c.HP,
		Illustrator: c.Illustrator,
		Image:       c.Image,
		Set: domain.SetRef{
			ID:                c.Set.ID,
			Name:              c.Set.Name,
			Logo:              c.Set.Logo,
			Symbol:            c.Set.Symbol,
			CardCountOfficial: c.Set.CardCount.Official,
			CardCountTotal:    c.Set.CardCount.Total,
		},
	}
}

func briefsToDomain(in []cardBriefJSON) []domain.CardBrief {
	out := make([]domain.CardBrief, 0, len(in))
	for _, b := range in {
		out = append(out, b.toDomain())
	}
	return out
}
