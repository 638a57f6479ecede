// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package gateway

import (
	"context"

	"github.com/l3montree-dev/supplyguard/dtos"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/l3montree-dev/supplyguard/transformer"
)

// SettingsGateway reads and upserts the settings and the profile of a single user.
// A user without a stored row gets the defaults.
type SettingsGateway struct {
	settings    shared.UserSettingsRepository
	profiles    shared.ProfileRepository
	defaultRole string
}

func NewSettingsGateway(settings shared.UserSettingsRepository, profiles shared.ProfileRepository) *SettingsGateway {
	return &SettingsGateway{
		settings:    settings,
		profiles:    profiles,
		defaultRole: shared.GetEnvOr("DEFAULT_ROLE", "Manager"),
	}
}

func (g *SettingsGateway) GetSettings(ctx context.Context, userID string) (dtos.UserSettingsDTO, error) {
	rows, err := g.settings.Select(ctx, []shared.Filter{shared.Eq("user_id", userID)}, nil)
	if err != nil {
		return dtos.UserSettingsDTO{}, err
	}

	switch len(rows) {
	case 0:
		return dtos.DefaultUserSettings(userID), nil
	case 1:
		return transformer.UserSettingsModelToDTO(rows[0]), nil
	default:
		return dtos.UserSettingsDTO{}, &shared.AmbiguousError{Entity: "Settings", Count: len(rows)}
	}
}

func (g *SettingsGateway) SaveSettings(ctx context.Context, userID string, patch dtos.UserSettingsPatchRequest) (dtos.UserSettingsDTO, error) {
	if err := Validate(patch); err != nil {
		return dtos.UserSettingsDTO{}, err
	}

	current, err := g.GetSettings(ctx, userID)
	if err != nil {
		return current, err
	}

	settings := transformer.ApplyUserSettingsPatch(current, patch)
	if err := Validate(settings); err != nil {
		return current, err
	}

	row := transformer.UserSettingsDTOToModel(settings)
	if err := g.settings.Upsert(ctx, &row, []string{"user_id"}, []string{
		"notifications_enabled", "language", "region", "theme", "updated_at",
	}); err != nil {
		return current, err
	}
	return g.GetSettings(ctx, userID)
}

func (g *SettingsGateway) GetProfile(ctx context.Context, userID string) (dtos.UserProfileDTO, error) {
	rows, err := g.profiles.Select(ctx, []shared.Filter{shared.Eq("id", userID)}, nil)
	if err != nil {
		return dtos.UserProfileDTO{}, err
	}

	switch len(rows) {
	case 0:
		return dtos.UserProfileDTO{ID: userID, Role: g.defaultRole}, nil
	case 1:
		return transformer.UserProfileModelToDTO(rows[0]), nil
	default:
		return dtos.UserProfileDTO{}, &shared.AmbiguousError{Entity: "Profile", Count: len(rows)}
	}
}

func (g *SettingsGateway) SaveProfile(ctx context.Context, userID string, patch dtos.UserProfilePatchRequest) (dtos.UserProfileDTO, error) {
	if err := Validate(patch); err != nil {
		return dtos.UserProfileDTO{}, err
	}

	current, err := g.GetProfile(ctx, userID)
	if err != nil {
		return current, err
	}

	profile := transformer.ApplyUserProfilePatch(current, patch)
	if err := Validate(profile); err != nil {
		return current, err
	}

	row := transformer.UserProfileDTOToModel(profile)
	if err := g.profiles.Upsert(ctx, &row, []string{"id"}, []string{
		"full_name", "email", "role", "organization", "logo_url", "updated_at",
	}); err != nil {
		return current, err
	}
	return g.GetProfile(ctx, userID)
}
