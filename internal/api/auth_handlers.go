package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/service"
)

func SignUp(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCredentialsRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		sess, err := app.Auth().SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Sign-up failed")
			return
		}

		HandleCreated(c, app.Logger(), gin.H{"token": sess.Token, "user_id": sess.UserID}, nil)
	}
}

func SignIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCredentialsRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		sess, err := app.Auth().SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				HandleError(c, app.Logger(), err, 401, "Invalid email or password")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Sign-in failed")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"token": sess.Token, "user_id": sess.UserID}, nil)
	}
}

func SignOut(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		app.Auth().SignOut(sess.Token)
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}

// Me returns the signed-in account plus whether onboarding has completed,
// which is what the client needs to pick between the onboarding and
// dashboard routes.
func Me(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)

		account, err := app.Repos().Accounts.GetAccountByID(c.Request.Context(), sess.UserID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load account")
			return
		}

		st := storeFrom(c)
		HandleSuccess(c, app.Logger(), gin.H{"account": account, "onboarded": st.User() != nil}, nil)
	}
}
