package security

import "testing"

func TestAwardSeat_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if SeatTokenEnabled() {
		t.Fatalf("没有密钥时不应启用令牌")
	}
	if _, err := AwardSeat("001AB", 1); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 AwardSeat 返回错误")
	}
}

func TestAwardParseSeat_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := AwardSeat("042QZ", 3)
	if err != nil {
		t.Fatalf("AwardSeat err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	claims, err := ParseSeat(token)
	if err != nil {
		t.Fatalf("ParseSeat err=%v", err)
	}
	if claims.RoomID != "042QZ" || claims.PlayerID != 3 {
		t.Fatalf("期望座位 042QZ/3, got=%+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("期望带 jti")
	}
}

func TestParseSeat_密钥不同应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := AwardSeat("001AB", 1)
	if err != nil {
		t.Fatalf("AwardSeat err=%v", err)
	}
	t.Setenv("JWT_SECRET", "secret-b")
	if _, err := ParseSeat(token); err == nil {
		t.Fatalf("期望换密钥后解析失败")
	}
}

func TestAwardSeat_每次jti不同(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	a, _ := AwardSeat("001AB", 1)
	b, _ := AwardSeat("001AB", 1)
	ca, err := ParseSeat(a)
	if err != nil {
		t.Fatalf("parse a err=%v", err)
	}
	cb, err := ParseSeat(b)
	if err != nil {
		t.Fatalf("parse b err=%v", err)
	}
	if ca.ID == cb.ID {
		t.Fatalf("期望两次签发 jti 不同")
	}
}
