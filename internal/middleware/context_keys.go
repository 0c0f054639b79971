package middleware

import "github.com/gin-gonic/gin"

const userIDKey = contextKey("userID")
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. The boolean reports whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the authenticated user's company scope.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyIDVal := c.Request.Context().Value(companyIDKey)
	if companyIDVal == nil {
		return "", false
	}
	companyID, ok := companyIDVal.(string)
	return companyID, ok
}
