package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abm32/Neuroshift/internal/service"
)

var errNotOnboarded = errors.New("complete onboarding before using the dashboard")

func PostCheckin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		var req service.CheckinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCheckinRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		checkin, err := st.AddCheckin(c.Request.Context(), req.ToCheckin())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save checkin")
			return
		}
		if checkin == nil {
			HandleError(c, app.Logger(), errNotOnboarded, 400, "No profile")
			return
		}

		HandleCreated(c, app.Logger(), checkin, nil)
	}
}

func GetCheckins(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		if err := st.FetchUserData(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch checkins")
			return
		}

		HandleSuccess(c, app.Logger(), st.Checkins(), nil)
	}
}

func GetCheckinStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		if err := st.FetchUserData(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch checkins for stats")
			return
		}

		stats := service.CalculateCheckinStats(st.Checkins())
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}
