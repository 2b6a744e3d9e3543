package pipeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// resolveAssignee matches a free-text name against the roster using
// case-insensitive substring containment: the extracted name must appear
// within (or equal) a member's display name. No match or an ambiguous match
// leaves the item unassigned rather than failing the batch.
func resolveAssignee(name string, roster []entities.Member) *uuid.UUID {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var match *uuid.UUID
	for i := range roster {
		if strings.Contains(strings.ToLower(roster[i].DisplayName), needle) {
			if match != nil {
				// two candidates contain the name: ambiguous
				return nil
			}
			id := roster[i].ID
			match = &id
		}
	}
	return match
}
