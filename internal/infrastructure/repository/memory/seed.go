package memory

import (
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/event"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
)

const (
	EventIDSpringArena = "arena-spring-2026"
	StageIDThrees      = "spring-2026-3p"
	TeamIDFireworks    = "team-fireworks"
	TeamIDRainbows     = "team-rainbows"
)

func SeedEvents() []event.Event {
	return []event.Event{
		{
			ID:       EventIDSpringArena,
			Name:     "Spring Arena 2026",
			StartsAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, time.April, 30, 23, 59, 59, 0, time.UTC),
		},
	}
}

func SeedStages() []event.Stage {
	return []event.Stage{
		{ID: StageIDThrees, EventID: EventIDSpringArena, Name: "3-player bracket", TeamSize: 3, Ordering: 1},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDFireworks, EventID: EventIDSpringArena, StageID: StageIDThrees, Name: "Fireworks", TeamSize: 3},
		{ID: TeamIDRainbows, EventID: EventIDSpringArena, StageID: StageIDThrees, Name: "Rainbows", TeamSize: 3},
	}
}

func SeedMembers() []team.Member {
	return []team.Member{
		{TeamID: TeamIDFireworks, UserID: "u-alice", DisplayName: "alice"},
		{TeamID: TeamIDFireworks, UserID: "u-bob", DisplayName: "bob"},
		{TeamID: TeamIDFireworks, UserID: "u-carol", DisplayName: "carol"},
		{TeamID: TeamIDRainbows, UserID: "u-dave", DisplayName: "dave"},
		{TeamID: TeamIDRainbows, UserID: "u-erin", DisplayName: "erin"},
		{TeamID: TeamIDRainbows, UserID: "u-frank", DisplayName: "frank"},
	}
}

func SeedTemplates() []template.Template {
	return []template.Template{
		{ID: "tpl-1", EventID: EventIDSpringArena, StageID: StageIDThrees, Name: "Game 1", Variant: "No Variant", SeedSuffix: "4a9X2", Ordering: 1},
		{ID: "tpl-2", EventID: EventIDSpringArena, StageID: StageIDThrees, Name: "Game 2", Variant: "No Variant", SeedSuffix: "b7Qk1", Ordering: 2},
	}
}
