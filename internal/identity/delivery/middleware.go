package delivery

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnlog-backend/internal/identity/domain"
	"learnlog-backend/internal/identity/repository"
)

// IdentityMiddleware resolves the acting user from the X-User-Email header,
// falling back to the configured default identity. The user row is created
// on first sight so downstream handlers always have a valid userID.
func IdentityMiddleware(userRepo repository.UserRepository, defaultEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			email = defaultEmail
		}

		user, err := userRepo.FindByEmail(email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		if user == nil {
			user = &domain.User{Email: email}
			if err := userRepo.Create(user); err != nil {
				// Another request may have created the row concurrently
				user, err = userRepo.FindByEmail(email)
				if err != nil || user == nil {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
					return
				}
			} else {
				log.Printf("[Identity] Created user %s (%s)", user.ID, email)
			}
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}
