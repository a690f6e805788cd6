package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestProvider_快照按属性区分序列(t *testing.T) {
	p := NewProvider()
	defer func() { _ = p.Shutdown(context.Background()) }()

	c, err := p.Meter("test").Int64Counter("room.turns.resolved")
	if err != nil {
		t.Fatalf("counter err=%v", err)
	}
	ctx := context.Background()
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("trigger", "deadline")))
	c.Add(ctx, 2, metric.WithAttributes(attribute.String("trigger", "all_ready")))
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("trigger", "all_ready")))

	got, ok := p.Value(ctx, "room.turns.resolved", attribute.String("trigger", "all_ready"))
	if !ok || got != 3 {
		t.Fatalf("all_ready 期望 3, got=%d ok=%v", got, ok)
	}
	got, ok = p.Value(ctx, "room.turns.resolved", attribute.String("trigger", "deadline"))
	if !ok || got != 1 {
		t.Fatalf("deadline 期望 1, got=%d ok=%v", got, ok)
	}

	points, err := p.Snapshot(ctx)
	if err != nil || len(points) != 2 {
		t.Fatalf("期望两条序列, got=%v err=%v", points, err)
	}
	if points[0].Attributes["trigger"] != "all_ready" {
		t.Fatalf("期望按属性排序, got=%v", points)
	}
}

func TestProvider_没有数据时Value返回false(t *testing.T) {
	p := NewProvider()
	if _, ok := p.Value(context.Background(), "nope"); ok {
		t.Fatalf("期望不存在")
	}
}

func TestAttrKey_与插入顺序无关(t *testing.T) {
	a := map[string]string{"reason": "NO_MOVES_LEFT", "room": "123AB"}
	b := map[string]string{"room": "123AB", "reason": "NO_MOVES_LEFT"}
	if attrKey(a) != attrKey(b) {
		t.Fatalf("同一组属性编码不同: %q vs %q", attrKey(a), attrKey(b))
	}
	if attrKey(nil) != "" {
		t.Fatalf("空属性期望空串, got=%q", attrKey(nil))
	}
	if attrKey(map[string]string{"trigger": "all_ready"}) >= attrKey(map[string]string{"trigger": "deadline"}) {
		t.Fatalf("期望按编码字典序")
	}
}

func TestSnapshot_多属性序列可排序(t *testing.T) {
	p := NewProvider()
	defer func() { _ = p.Shutdown(context.Background()) }()

	c, err := p.Meter("test").Int64Counter("room.commands.rejected")
	if err != nil {
		t.Fatalf("counter err=%v", err)
	}
	ctx := context.Background()
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "UNIT_NOT_FOUND"), attribute.String("route", "unit.move")))
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "INSUFFICIENT_RESOURCES"), attribute.String("route", "unit.produce")))

	points, err := p.Snapshot(ctx)
	if err != nil || len(points) != 2 {
		t.Fatalf("期望两条序列, got=%v err=%v", points, err)
	}
	if points[0].Attributes["reason"] != "INSUFFICIENT_RESOURCES" {
		t.Fatalf("期望按属性编码排序, got=%v", points)
	}
}
