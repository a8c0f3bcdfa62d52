package auth

import (
	"errors"
	"time"

	"SDRAdmin/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// ContextKey is where the JWT middleware stores *JWTClaims on the echo context.
const ContextKey = "admin"

type JWTClaims struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"` // consumed by the casbin middleware
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

// NewTokenIssuer creates a TokenIssuer from the JWT settings.
func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{key: []byte(cfg.JWTKey), ttl: cfg.JWTTTL}
}

// Generate signs a token carrying the admin's claims.
func (t *TokenIssuer) Generate(admin *Admin) (string, error) {
	claims := &JWTClaims{
		AdminID: admin.ID.Hex(),
		Name:    admin.Name,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Parse verifies tokenString and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ClaimsFrom returns the claims set by the JWT middleware, or nil.
func ClaimsFrom(c echo.Context) *JWTClaims {
	claims, _ := c.Get(ContextKey).(*JWTClaims)
	return claims
}

// AdminIDFrom resolves the authenticated admin id carried by the request.
func AdminIDFrom(c echo.Context) (primitive.ObjectID, error) {
	claims := ClaimsFrom(c)
	if claims == nil {
		return primitive.NilObjectID, errors.New("missing admin claims")
	}
	return primitive.ObjectIDFromHex(claims.AdminID)
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
