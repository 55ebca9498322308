package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// userEmailKey holds the email claim of the session token.
const userEmailKey = contextKey("userEmail")

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	val, exists := c.Get(string(key))
	if !exists {
		// check in the request context as well
		if s, ok := c.Request.Context().Value(key).(string); ok && s != "" {
			return s, true
		}
		return "", false
	}
	s, ok := val.(string)
	return s, ok && s != ""
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetUserEmailFromContext retrieves the authenticated user's email.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userEmailKey)
}
