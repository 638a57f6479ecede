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

package monitoring

import (
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
)

// Alert reports err to sentry and logs it. attrs are slog style key value
// pairs; they end up in the log line and as extras on the sentry event.
func Alert(message string, err error, attrs ...any) {
	if err == nil {
		err = errors.New(message)
	} else {
		err = errors.Wrap(err, message)
	}

	var evID *sentry.EventID
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetExtras(extras(attrs))
		evID = sentry.CurrentHub().CaptureException(err)
	})
	slog.Error("critical error encountered", append([]any{"msg", message, "err", err, "sentryEvent", evID}, attrs...)...)
}

// RecoverAndAlert reports a recovered panic value.
func RecoverAndAlert(message string, recovered any) {
	evID := sentry.CurrentHub().Recover(recovered)
	slog.Error("recovered from panic", "msg", message, "panic", recovered, "sentryEvent", evID)
}

func extras(attrs []any) map[string]any {
	res := make(map[string]any, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		res[fmt.Sprint(attrs[i])] = attrs[i+1]
	}
	return res
}
