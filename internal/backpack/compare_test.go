package backpack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

func TestComparators(t *testing.T) {
	rifle := types.Item{Name: "rifle", Type: "weapon", Priority: 5}
	ammo := types.Item{Name: "ammo", Type: "weapon", Priority: 2}
	medkit := types.Item{Name: "medkit", Type: "heal", Priority: 3}
	bandage := types.Item{Name: "bandage", Type: "heal", Priority: 3}

	tests := []struct {
		name    string
		compare compareFunc
		a, b    types.Item
		want    int
	}{
		{name: "name ascending", compare: compareByName, a: ammo, b: rifle, want: -1},
		{name: "name equal", compare: compareByName, a: ammo, b: ammo, want: 0},
		{name: "type ascending", compare: compareByType, a: medkit, b: ammo, want: -1},
		{name: "type tie broken by name", compare: compareByType, a: rifle, b: ammo, want: 1},
		{name: "priority descending", compare: compareByPriority, a: rifle, b: medkit, want: -1},
		{name: "priority lower sorts later", compare: compareByPriority, a: ammo, b: medkit, want: 1},
		{name: "priority tie broken by name", compare: compareByPriority, a: bandage, b: medkit, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.compare(tt.a, tt.b)
			switch {
			case tt.want < 0:
				assert.Negative(t, got)
			case tt.want > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestComparatorFor(t *testing.T) {
	for _, c := range allCriteria {
		f, ok := comparatorFor(c)
		assert.True(t, ok, c.String())
		assert.NotNil(t, f)
	}

	_, ok := comparatorFor(types.Criterion(99))
	assert.False(t, ok)
}
