package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado nas configurações do negócio
// --------------------------------------------------

func businessTimezone(settings *store.SettingsStore, fallback string) string {
	if tz := settings.Current().Timezone; timezone.IsValid(tz) {
		return tz
	}
	return fallback
}

// dateQuery reads an optional "2006-01-02" query parameter. It writes the
// error response and returns false when the value is malformed.
func dateQuery(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := dto.ParseDate(v)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Data inválida.")
		return time.Time{}, false
	}
	return t, true
}

// monthRange is the first and last day of the month containing day.
func monthRange(day time.Time) (time.Time, time.Time) {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
