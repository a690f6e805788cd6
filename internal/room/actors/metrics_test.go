package actors

import (
	"context"
	"testing"

	"IslandConquest/internal/shared/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

func TestMetrics_计数器按属性累加(t *testing.T) {
	p := telemetry.NewProvider()
	m := NewMetricsFrom(p.Meter(instrumentationName))
	ctx := context.Background()

	m.TurnResolved("deadline")
	m.TurnResolved("all_ready")
	m.TurnResolved("all_ready")
	m.CommandRejected("move", "NO_MOVES_LEFT")
	m.RoomSpawned()
	m.RoomSpawned()
	m.RoomStopped()

	if v, _ := p.Value(ctx, "room.turns.resolved", attribute.String("trigger", "all_ready")); v != 2 {
		t.Fatalf("all_ready 期望 2, got=%d", v)
	}
	if v, _ := p.Value(ctx, "room.commands.rejected",
		attribute.String("command", "move"), attribute.String("reason", "NO_MOVES_LEFT")); v != 1 {
		t.Fatalf("rejected 期望 1, got=%d", v)
	}
	if v, _ := p.Value(ctx, "room.spawned"); v != 2 {
		t.Fatalf("spawned 期望 2, got=%d", v)
	}
	if v, _ := p.Value(ctx, "room.active"); v != 1 {
		t.Fatalf("active 期望 1, got=%d", v)
	}
}

func TestMetrics_nil安全(t *testing.T) {
	var m *Metrics
	m.TurnResolved("deadline")
	m.CommandRejected("move", "x")
	m.RoomSpawned()
	m.RoomStopped()
}
