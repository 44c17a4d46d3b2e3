package hanablive

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/hanabarena/hanab-arena/internal/domain/replay"
)

// exportPayload is the wire shape of GET /export/{matchID}. Older deployments
// emit playerNames, newer ones players.
type exportPayload struct {
	ID          int64    `json:"id"`
	Players     []string `json:"players"`
	PlayerNames []string `json:"playerNames"`
	Seed        string   `json:"seed"`
}

func (p exportPayload) playerList() []string {
	if len(p.Players) > 0 {
		return p.Players
	}
	return p.PlayerNames
}

type historyOptions struct {
	VariantName           string `json:"variantName"`
	CardCycle             bool   `json:"cardCycle"`
	DeckPlays             bool   `json:"deckPlays"`
	EmptyClues            bool   `json:"emptyClues"`
	OneExtraCard          bool   `json:"oneExtraCard"`
	OneLessCard           bool   `json:"oneLessCard"`
	AllOrNothing          bool   `json:"allOrNothing"`
	DetrimentalCharacters bool   `json:"detrimentalCharacters"`
}

type historyGame struct {
	ID               int64          `json:"id"`
	Variant          string         `json:"variant"`
	Score            int            `json:"score"`
	EndCondition     int            `json:"endCondition"`
	DatetimeFinished string         `json:"datetimeFinished"`
	Options          historyOptions `json:"options"`
}

func (g historyGame) toDomain() replay.HistoryGame {
	out := replay.HistoryGame{
		ID:           g.ID,
		Variant:      strings.TrimSpace(g.Variant),
		Score:        g.Score,
		EndCondition: g.EndCondition,
		Options: replay.GameOptions{
			CardCycle:             g.Options.CardCycle,
			DeckPlays:             g.Options.DeckPlays,
			EmptyClues:            g.Options.EmptyClues,
			OneExtraCard:          g.Options.OneExtraCard,
			OneLessCard:           g.Options.OneLessCard,
			AllOrNothing:          g.Options.AllOrNothing,
			DetrimentalCharacters: g.Options.DetrimentalCharacters,
		},
	}
	if out.Variant == "" {
		out.Variant = strings.TrimSpace(g.Options.VariantName)
	}
	if parsed := parseFinishedAt(g.DatetimeFinished); parsed != nil {
		out.PlayedAt = *parsed
	}
	return out
}

func parseFinishedAt(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

// decodeHistory normalizes the two shapes the history endpoint is known to
// return: a bare array, or an object wrapping the array in a games field.
func decodeHistory(raw []byte) ([]historyGame, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var games []historyGame
		if err := sonic.Unmarshal(raw, &games); err != nil {
			return nil, err
		}
		return games, nil
	}

	var envelope struct {
		Games []historyGame `json:"games"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	return envelope.Games, nil
}
