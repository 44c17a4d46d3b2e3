package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hanabarena/hanab-arena/internal/domain/replay"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
)

// MatchServiceClient is the slice of the game service the validator needs.
type MatchServiceClient interface {
	FetchExport(ctx context.Context, matchID string) (replay.Export, error)
	FetchHistory(ctx context.Context, player, matchID string) ([]replay.HistoryGame, error)
}

// ReplayValidator cross-checks a submitted replay reference against the team
// roster, the assigned seed, and upstream match history. It performs no
// persistence writes: a validation is read-only apart from the outbound
// HTTP calls, so callers can retry it freely.
type ReplayValidator struct {
	teamRepo     team.Repository
	templateRepo template.Repository
	matchClient  MatchServiceClient
	logger       *slog.Logger
}

func NewReplayValidator(
	teamRepo team.Repository,
	templateRepo template.Repository,
	matchClient MatchServiceClient,
	logger *slog.Logger,
) *ReplayValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReplayValidator{
		teamRepo:     teamRepo,
		templateRepo: templateRepo,
		matchClient:  matchClient,
		logger:       logger,
	}
}

// ValidateReplay runs the full pipeline for one submission. Integrity
// findings come back as *replay.ValidationError; upstream and storage
// failures propagate with the pipeline step attached.
func (v *ReplayValidator) ValidateReplay(ctx context.Context, teamID, templateID, rawRef string) (replay.ValidationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ReplayValidator.ValidateReplay")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	templateID = strings.TrimSpace(templateID)
	if teamID == "" {
		return replay.ValidationResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if templateID == "" {
		return replay.ValidationResult{}, fmt.Errorf("%w: template id is required", ErrInvalidInput)
	}

	log := v.logger.With("team_id", teamID, "template_id", templateID)

	matchID := replay.ParseMatchID(strings.TrimSpace(rawRef))
	if matchID == "" {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepParseReference, "raw_ref", rawRef)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeBadReference,
			Step:   replay.StepParseReference,
			Detail: "reference is neither a replay URL nor a match id",
		}
	}
	log = log.With("match_id", matchID)

	teamItem, exists, err := v.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return replay.ValidationResult{}, fmt.Errorf("%s: get team: %w", replay.StepLoadTeam, err)
	}
	if !exists {
		return replay.ValidationResult{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	templateItem, exists, err := v.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return replay.ValidationResult{}, fmt.Errorf("%s: get template: %w", replay.StepLoadTemplate, err)
	}
	if !exists {
		return replay.ValidationResult{}, fmt.Errorf("%w: template=%s", ErrNotFound, templateID)
	}
	if templateItem.EventID != teamItem.EventID || templateItem.StageID != teamItem.StageID {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepLoadTemplate,
			"team_event", teamItem.EventID, "template_event", templateItem.EventID)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeCrossEventMismatch,
			Step:   replay.StepLoadTemplate,
			Detail: fmt.Sprintf("template %s does not belong to the team's bracket", templateID),
		}
	}

	members, err := v.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return replay.ValidationResult{}, fmt.Errorf("%s: list team members: %w", replay.StepLoadRoster, err)
	}
	roster := make(map[string]struct{}, len(members))
	for _, m := range members {
		roster[m.DisplayName] = struct{}{}
	}

	export, err := v.matchClient.FetchExport(ctx, matchID)
	if err != nil {
		log.WarnContext(ctx, "replay validation upstream failure", "step", replay.StepFetchExport, "error", err)
		return replay.ValidationResult{}, fmt.Errorf("%s: %w", replay.StepFetchExport, err)
	}

	var foreign []string
	for _, name := range export.Players {
		if _, ok := roster[name]; !ok {
			foreign = append(foreign, name)
		}
	}
	if len(foreign) > 0 {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepCheckRoster, "foreign_players", foreign)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeForeignPlayers,
			Step:   replay.StepCheckRoster,
			Detail: strings.Join(foreign, ", "),
		}
	}

	seed, err := replay.ParseSeed(export.Seed)
	if err != nil {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepParseSeed, "seed", export.Seed)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeMalformedSeed,
			Step:   replay.StepParseSeed,
			Detail: export.Seed,
		}
	}

	if seed.PlayerCount != teamItem.TeamSize {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepCheckSize,
			"seed_players", seed.PlayerCount, "team_size", teamItem.TeamSize)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeSizeMismatch,
			Step:   replay.StepCheckSize,
			Detail: fmt.Sprintf("seed is for %d players, bracket is %d", seed.PlayerCount, teamItem.TeamSize),
		}
	}

	if templateItem.SeedSuffix != "" && templateItem.SeedSuffix != seed.Suffix {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepCheckSeed,
			"expected_suffix", templateItem.SeedSuffix, "got_suffix", seed.Suffix)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeSeedMismatch,
			Step:   replay.StepCheckSeed,
			Detail: fmt.Sprintf("expected seed %s, replay played %s", templateItem.SeedSuffix, seed.Suffix),
		}
	}

	result := replay.ValidationResult{
		MatchID:     matchID,
		Players:     export.Players,
		Seed:        export.Seed,
		SeedSuffix:  seed.Suffix,
		PlayerCount: seed.PlayerCount,
	}

	if len(export.Players) == 0 {
		log.DebugContext(ctx, "replay validation passed without history", "reason", "export has no players")
		return result, nil
	}

	// History is fetched for the first exported player only; the roster
	// check already proved team identity, so one player's history is
	// authoritative for variant, flags and score.
	games, err := v.matchClient.FetchHistory(ctx, export.Players[0], matchID)
	if err != nil {
		log.WarnContext(ctx, "replay validation upstream failure", "step", replay.StepFetchHistory, "error", err)
		return replay.ValidationResult{}, fmt.Errorf("%s: %w", replay.StepFetchHistory, err)
	}

	game, found := findGame(games, matchID)
	if !found {
		// Best-effort enrichment: a missing history entry leaves the derived
		// fields empty but does not fail the validation.
		log.DebugContext(ctx, "match absent from player history", "player", export.Players[0])
		return result, nil
	}

	if game.Variant != "" && !strings.EqualFold(game.Variant, templateItem.Variant) {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepCheckVariant,
			"expected_variant", templateItem.Variant, "got_variant", game.Variant)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeVariantMismatch,
			Step:   replay.StepCheckVariant,
			Detail: fmt.Sprintf("expected variant %s, replay played %s", templateItem.Variant, game.Variant),
		}
	}

	if violations := game.Options.Violations(); len(violations) > 0 {
		log.DebugContext(ctx, "replay validation rejected", "step", replay.StepCheckRules, "flags", violations)
		return replay.ValidationResult{}, &replay.ValidationError{
			Code:   replay.CodeUnsupportedRules,
			Step:   replay.StepCheckRules,
			Detail: strings.Join(violations, ", "),
		}
	}

	result.Variant = game.Variant
	score := game.Score
	endCondition := game.EndCondition
	result.Score = &score
	result.EndCondition = &endCondition
	if !game.PlayedAt.IsZero() {
		playedAt := game.PlayedAt
		result.PlayedAt = &playedAt
	}

	log.DebugContext(ctx, "replay validation passed", "score", game.Score, "variant", game.Variant)
	return result, nil
}

func findGame(games []replay.HistoryGame, matchID string) (replay.HistoryGame, bool) {
	id, err := strconv.ParseInt(matchID, 10, 64)
	if err != nil {
		return replay.HistoryGame{}, false
	}
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return replay.HistoryGame{}, false
}
