package actors

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "IslandConquest/internal/room/actors"

// Metrics 房间相关计数器，未配置 MeterProvider 时为 no-op。
type Metrics struct {
	turnsResolved    metric.Int64Counter
	commandsRejected metric.Int64Counter
	roomsSpawned     metric.Int64Counter
	roomsActive      metric.Int64UpDownCounter
}

func NewMetrics() *Metrics {
	return NewMetricsFrom(otel.Meter(instrumentationName))
}

// NewMetricsFrom 用指定 Meter 建计数器，测试里接 ManualReader。
func NewMetricsFrom(m metric.Meter) *Metrics {
	fallback := noop.NewMeterProvider().Meter(instrumentationName)
	counter := func(name, desc string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}
	active, err := m.Int64UpDownCounter("room.active", metric.WithDescription("Rooms currently alive"))
	if err != nil {
		active, _ = fallback.Int64UpDownCounter("room.active")
	}
	return &Metrics{
		turnsResolved:    counter("room.turns.resolved", "Turn resolutions by trigger"),
		commandsRejected: counter("room.commands.rejected", "Rejected player commands by reason"),
		roomsSpawned:     counter("room.spawned", "Rooms created"),
		roomsActive:      active,
	}
}

func (m *Metrics) TurnResolved(trigger string) {
	if m == nil {
		return
	}
	m.turnsResolved.Add(context.Background(), 1, metric.WithAttributes(attribute.String("trigger", trigger)))
}

func (m *Metrics) CommandRejected(command, reason string) {
	if m == nil {
		return
	}
	m.commandsRejected.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("reason", reason),
	))
}

func (m *Metrics) RoomSpawned() {
	if m == nil {
		return
	}
	m.roomsSpawned.Add(context.Background(), 1)
	m.roomsActive.Add(context.Background(), 1)
}

func (m *Metrics) RoomStopped() {
	if m == nil {
		return
	}
	m.roomsActive.Add(context.Background(), -1)
}
