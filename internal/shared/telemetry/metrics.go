package telemetry

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider 进程内 MeterProvider，按需拉取快照。
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

func NewProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	return &Provider{
		mp:     sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader: reader,
	}
}

// Install 设为全局 MeterProvider，之后 otel.Meter 都走它。
func (p *Provider) Install() {
	otel.SetMeterProvider(p.mp)
}

func (p *Provider) Meter(name string) metric.Meter {
	return p.mp.Meter(name)
}

// Point 一个计数器时间序列的当前值。
type Point struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Value      int64             `json:"value"`
}

// Snapshot 只导出 int64 的 Sum，按名称和属性排序。
func (p *Provider) Snapshot(ctx context.Context) ([]Point, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	var out []Point
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out = append(out, Point{Name: m.Name, Attributes: attrs(dp.Attributes), Value: dp.Value})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return attrKey(out[i].Attributes) < attrKey(out[j].Attributes)
	})
	return out, nil
}

// Value 取某个序列的值，attrs 需完全匹配。
func (p *Provider) Value(ctx context.Context, name string, kv ...attribute.KeyValue) (int64, bool) {
	points, err := p.Snapshot(ctx)
	if err != nil {
		return 0, false
	}
	want := attrs(attribute.NewSet(kv...))
	for _, pt := range points {
		if pt.Name == name && sameAttrs(pt.Attributes, want) {
			return pt.Value, true
		}
	}
	return 0, false
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}

func attrs(set attribute.Set) map[string]string {
	if set.Len() == 0 {
		return nil
	}
	out := make(map[string]string, set.Len())
	for _, kv := range set.ToSlice() {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

// attrKey 属性的规范编码，与 map 遍历顺序无关。
func attrKey(m map[string]string) string {
	set := attribute.NewSet(toKVs(m)...)
	return set.Encoded(attribute.DefaultEncoder())
}

func toKVs(m map[string]string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(m))
	for k, v := range m {
		out = append(out, attribute.String(k, v))
	}
	return out
}

func sameAttrs(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// GinHandler 以 json 输出当前计数器，挂在 /debug/metrics。
func (p *Provider) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		points, err := p.Snapshot(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"metrics": points})
	}
}
