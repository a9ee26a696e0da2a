package api

import "github.com/gin-gonic/gin"

func GetEducationalContent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		if err := st.FetchEducationalContent(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch educational content")
			return
		}

		HandleSuccess(c, app.Logger(), st.Content(), nil)
	}
}
