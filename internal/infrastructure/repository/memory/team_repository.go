package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hanabarena/hanab-arena/internal/domain/team"
)

type TeamRepository struct {
	mu        sync.RWMutex
	teamsByID map[string]team.Team
	members   map[string][]team.Member
}

func NewTeamRepository(teams []team.Team, members []team.Member) *TeamRepository {
	teamsByID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		teamsByID[item.ID] = item
	}
	membersByTeam := make(map[string][]team.Member)
	for _, item := range members {
		membersByTeam[item.TeamID] = append(membersByTeam[item.TeamID], item)
	}

	return &TeamRepository{teamsByID: teamsByID, members: membersByTeam}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teamsByID[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListMembers(_ context.Context, teamID string) ([]team.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.members[teamID]
	out := make([]team.Member, 0, len(members))
	out = append(out, members...)
	return out, nil
}

func (r *TeamRepository) IsMember(_ context.Context, teamID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.members[teamID] {
		if item.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepository) AddMember(_ context.Context, member team.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teamsByID[member.TeamID]; !ok {
		return fmt.Errorf("team %s does not exist", member.TeamID)
	}
	for _, item := range r.members[member.TeamID] {
		if item.UserID == member.UserID {
			return fmt.Errorf("user %s is already on team %s", member.UserID, member.TeamID)
		}
	}
	r.members[member.TeamID] = append(r.members[member.TeamID], member)
	return nil
}
