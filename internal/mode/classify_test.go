package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JulianBMW/fensterchef/internal/window"
)

func TestPredictPriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		prep func(p *window.Properties)
		want window.Mode
	}{
		{"fullscreen state wins over everything", func(p *window.Properties) {
			p.States = []string{window.StateFullscreen}
			p.WindowTypes = []string{window.WindowTypeDock}
		}, window.ModeFullscreen},
		{"dock window type", func(p *window.Properties) {
			p.WindowTypes = []string{window.WindowTypeDock}
		}, window.ModeDock},
		{"nonempty strut implies dock", func(p *window.Properties) {
			p.Strut.Reserved.Top = 10
		}, window.ModeDock},
		{"transient is popup", func(p *window.Properties) {
			p.TransientFor = 42
		}, window.ModePopup},
		{"normal window type is tiling", func(p *window.Properties) {
			p.WindowTypes = []string{window.WindowTypeNormal}
		}, window.ModeTiling},
		{"equal min/max width is popup", func(p *window.Properties) {
			p.SizeHints = window.SizeHints{HasMinSize: true, HasMaxSize: true, MinWidth: 300, MaxWidth: 300, MinHeight: 200, MaxHeight: 400}
		}, window.ModePopup},
		{"equal min/max height is popup", func(p *window.Properties) {
			p.SizeHints = window.SizeHints{HasMinSize: true, HasMaxSize: true, MinWidth: 100, MaxWidth: 300, MinHeight: 200, MaxHeight: 200}
		}, window.ModePopup},
		{"any explicit window type list is popup", func(p *window.Properties) {
			p.WindowTypes = []string{"_NET_WM_WINDOW_TYPE_UTILITY"}
		}, window.ModePopup},
		{"default is tiling", func(p *window.Properties) {}, window.ModeTiling},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := window.New(1)
			c.prep(&w.Properties)
			assert.Equal(t, c.want, Predict(w), c.name)
		})
	}
}
