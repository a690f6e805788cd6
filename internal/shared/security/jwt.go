package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// SeatTTL 座位令牌有效期，覆盖一局的正常时长。
const SeatTTL = 24 * time.Hour

// SeatClaims 座位令牌：断线重连时凭它找回 (room, player)。
type SeatClaims struct {
	RoomID   string `json:"room_id"`
	PlayerID int    `json:"player_id"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// SeatTokenEnabled 没配密钥时不签发令牌，room.resume 不可用。
func SeatTokenEnabled() bool {
	return os.Getenv("JWT_SECRET") != ""
}

// AwardSeat 签发座位令牌。
func AwardSeat(roomID string, playerID int) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &SeatClaims{
		RoomID:   roomID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   roomID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SeatTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseSeat 解析并验证座位令牌。
func ParseSeat(tokenStr string) (*SeatClaims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	claims := &SeatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if token == nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.RoomID == "" || claims.PlayerID <= 0 {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
