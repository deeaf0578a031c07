package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaPro/agenda-core/internal/models"
)

const ContextEstablishment = "establishment"

// BotAuthMiddleware autentica o canal automatizado: o bot envia o
// token de integração do estabelecimento no header X-Bot-Token.
func BotAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		token := c.GetHeader("X-Bot-Token")

		if slug == "" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_bot_token"})
			return
		}

		var est models.Establishment
		if err := db.Where("slug = ?", slug).First(&est).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_bot_token"})
			return
		}

		if est.BotToken == "" ||
			subtle.ConstantTimeCompare([]byte(est.BotToken), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_bot_token"})
			return
		}

		c.Set(ContextEstablishment, &est)
		c.Next()
	}
}
