package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken токен не прошел проверку
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims полезная нагрузка токена: sub - ID аккаунта, idn - номер документа,
// role - CLIENT | COLLABORATOR | ADMIN
type Claims struct {
	IDNumber string `json:"idn"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer подписывает и проверяет HS256 токены
type Issuer struct {
	secret []byte
}

// NewIssuer создает Issuer с секретом из конфигурации
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// CreateAccessToken выпускает токен для аккаунта
func (i *Issuer) CreateAccessToken(sub, idNumber, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		IDNumber: idNumber,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseValidate проверяет подпись и срок действия токена
func (i *Issuer) ParseValidate(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
