package domain

import (
	"fmt"
	"strings"
)

type TeamLeader struct {
	ID        int    `json:"id,omitempty"  csv:"-"`
	TeamName  string `json:"team_name"     csv:"team_name"`
	AccountID string `json:"account_id"    csv:"account_id"`
	Name      string `json:"name"          csv:"name"`
}

func (l *TeamLeader) Normalize() {
	l.TeamName = strings.TrimSpace(l.TeamName)
	l.AccountID = strings.TrimSpace(l.AccountID)
	l.Name = strings.TrimSpace(l.Name)
}

func (l *TeamLeader) Validate() error {
	if l.TeamName == "" {
		return fmt.Errorf("team_name is required")
	}

	if l.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}

	if l.Name == "" {
		return fmt.Errorf("name is required")
	}

	return nil
}
