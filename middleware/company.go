package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AnTengye/saasledger/pkg/logger"
)

const (
	CompanyHeader  = "X-Company-ID"
	DefaultCompany = "default"
	companyKey     = "company"
)

var validCompany = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Company scopes the request to one organization's records. The id comes from
// the X-Company-ID header, lowercased; an absent header selects the default
// company and a malformed one is rejected.
func Company() gin.HandlerFunc {
	return func(c *gin.Context) {
		company := strings.ToLower(strings.TrimSpace(c.GetHeader(CompanyHeader)))
		if company == "" {
			company = DefaultCompany
		}
		if !validCompany.MatchString(company) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid company id",
			})
			return
		}

		c.Set(companyKey, company)
		ctx := context.WithValue(c.Request.Context(), logger.CompanyKey, company)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCompany returns the company set by Company, falling back to the default.
func GetCompany(c *gin.Context) string {
	if company := c.GetString(companyKey); company != "" {
		return company
	}
	return DefaultCompany
}
