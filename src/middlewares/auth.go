package middlewares

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"ems/src/db"
	"ems/src/models"
	"ems/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func tokenFromRequest(ctx *gin.Context) string {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.Split(bearerToken, " ")[1]
	}
	if cookie, err := ctx.Cookie("session"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates the session token, loads the user behind it and
// attaches the caller's identity to the request context.
func AuthMiddleware(ctx *gin.Context) {
	reqToken := tokenFromRequest(ctx)
	if reqToken == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	db := db.GetDb()
	var user models.User
	db.Model(&models.User{}).Where(&models.User{ID: uint(uid)}).Find(&user)
	if uint(uid) != user.ID || user.ID < 1 || !user.IsActive {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var orgID uint
	if user.OrganizationID != nil {
		orgID = *user.OrganizationID
	}
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("org", orgID)
	ctx.Set("role", user.Role)
}

// GetPrincipal rebuilds the caller identity from the request context.
func GetPrincipal(ctx *gin.Context) types.Principal {
	role, _ := ctx.Get("role")
	userRole, _ := role.(types.UserRole)
	return types.Principal{
		UserID:         ctx.GetUint("id"),
		Role:           userRole,
		OrganizationID: ctx.GetUint("org"),
	}
}

// RequireRoles rejects callers whose role is not in the allow list.
func RequireRoles(roles ...types.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := GetPrincipal(ctx)
		for _, role := range roles {
			if p.Role == role {
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
