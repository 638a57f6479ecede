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

package commands

import (
	"github.com/l3montree-dev/supplyguard/database"
	"github.com/l3montree-dev/supplyguard/shared"
)

// openDatabase connects to the database configured by the POSTGRES_* variables.
// The returned func releases the connection pool.
var openDatabase = func() (shared.DB, func(), error) {
	db, pool, err := database.DatabaseFactory()
	if err != nil {
		return nil, nil, err
	}
	return db, pool.Close, nil
}
