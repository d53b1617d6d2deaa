package profile

import (
	"context"
	"fmt"

	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/models"
)

// ApplySettings returns p with the settings screen's edits applied.
// A blank postal code clears the field; an empty interest selection keeps the old interests.
func ApplySettings(p models.UserProfile, postalCode string, interests []models.Interest) models.UserProfile {
	p.PostalCode = geocoding.NormalizePostalCode(postalCode)
	if len(interests) > 0 {
		p.Interests = append([]models.Interest(nil), interests...)
	}
	return p
}

// UpdateSettings applies settings edits to the stored profile and saves it.
// The returned profile reflects the next read, so a cleared postal code comes back as the default.
func (s *Store) UpdateSettings(ctx context.Context, postalCode string, interests []models.Interest) (*models.UserProfile, error) {
	current, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no profile to update")
	}

	updated := ApplySettings(*current, postalCode, interests)
	if err := s.SaveProfile(ctx, updated); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx)
}
