package sweep

import (
	"context"
	"fmt"
)

// Recipient is one organization member with the preference flags already
// default-filled: a user without a stored preference record has both flags
// true. Nobody is ever skipped purely for lack of a stored preference.
type Recipient struct {
	UserId                    int
	UserName                  string
	UserEmail                 string
	Role                      Role
	MissingEntryAlertsEnabled bool
	EscalationEnabled         bool
}

// ResolveMembers loads the full membership of an organization. Tier selection
// is the orchestrator's job; this returns every member with role intact.
func (e *Engine) ResolveMembers(ctx context.Context, organizationId int) ([]Recipient, error) {
	members, err := e.Store.ListOrganizationMembers(ctx, organizationId)
	if err != nil {
		return nil, fmt.Errorf("list members of organization %d: %w", organizationId, err)
	}

	recipients := make([]Recipient, 0, len(members))
	for _, m := range members {
		r := Recipient{
			UserId:                    m.UserId,
			UserName:                  m.User.Name,
			UserEmail:                 m.User.Email,
			Role:                      ParseRole(m.Role),
			MissingEntryAlertsEnabled: true,
			EscalationEnabled:         true,
		}
		if pref := m.User.NotificationPreference; pref != nil {
			r.MissingEntryAlertsEnabled = pref.MissingEntryAlertsEnabled
			r.EscalationEnabled = pref.EscalationEnabled
		}
		recipients = append(recipients, r)
	}
	return recipients, nil
}
