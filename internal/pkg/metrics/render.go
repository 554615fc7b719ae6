package metrics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Renderer serialises a registry snapshot into the prometheus text
// exposition format. Each call renders from a fresh snapshot so scrapes are
// never blocked by in-flight updates.
type Renderer struct {
	registry *Registry
}

func NewRenderer(registry *Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render produces one # HELP/# TYPE block per family that has samples,
// followed by its sample lines. Output ordering is stable: families in kind
// order, samples by device then sub. An empty registry renders to an empty,
// grammar-valid document.
func (r *Renderer) Render() string {
	snapshot := r.registry.Snapshot()
	grouped := lo.GroupBy(lo.Keys(snapshot), func(id Identity) Kind {
		return id.Kind
	})

	var b strings.Builder
	for _, kind := range Kinds() {
		ids := grouped[kind]
		if len(ids) == 0 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool {
			if ids[i].Device != ids[j].Device {
				return ids[i].Device < ids[j].Device
			}
			return ids[i].Sub < ids[j].Sub
		})

		b.WriteString("# HELP " + kind.Family() + " " + kind.Help() + "\n")
		b.WriteString("# TYPE " + kind.Family() + " " + kind.MetricType() + "\n")
		for _, id := range ids {
			writeSample(&b, id, snapshot[id])
		}
	}
	return b.String()
}

func writeSample(b *strings.Builder, id Identity, v Value) {
	b.WriteString(id.Kind.Family())
	b.WriteString(`{device="`)
	b.WriteString(escapeLabel(id.Device))
	b.WriteString(`",name="`)
	b.WriteString(escapeLabel(v.Name))
	b.WriteString(`"`)
	if sub := id.Kind.SubLabel(); sub != "" && id.Sub != "" {
		b.WriteString(`,` + sub + `="`)
		b.WriteString(escapeLabel(id.Sub))
		b.WriteString(`"`)
	}
	b.WriteString(`} `)
	b.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	b.WriteString("\n")
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(value string) string {
	return labelEscaper.Replace(value)
}
