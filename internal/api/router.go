package api

import "github.com/gin-gonic/gin"

func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.POST("/auth/signup", SignUp(app))
	r.POST("/auth/signin", SignIn(app))

	// Protected routes
	authed := r.Group("/")
	authed.Use(AuthMiddleware(app))
	authed.POST("/auth/signout", SignOut(app))
	authed.GET("/auth/me", Me(app))
	authed.POST("/onboarding", PostOnboarding(app))
	authed.GET("/checkins", GetCheckins(app))
	authed.POST("/checkins", PostCheckin(app))
	authed.GET("/checkins/stats", GetCheckinStats(app))
	authed.GET("/tasks", GetTasks(app))
	authed.POST("/tasks", PostTask(app))
	authed.PATCH("/tasks/:id", PatchTask(app))
	authed.GET("/content", GetEducationalContent(app))

	return r
}
