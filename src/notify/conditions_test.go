package notify

import (
	"testing"

	"hros/src/types"

	"github.com/stretchr/testify/assert"
)

func TestRouteMatchesNoCondition(t *testing.T) {
	employee := testEmployee()

	assert.True(t, RouteMatches(nil, employee, nil))

	empty := types.JSONB{}
	assert.True(t, RouteMatches(&empty, employee, nil))
}

func TestRouteMatchesDepartment(t *testing.T) {
	employee := testEmployee()

	byName := types.JSONB{"department": "engineering"}
	assert.True(t, RouteMatches(&byName, employee, nil))

	byCode := types.JSONB{"department": "eng"}
	assert.True(t, RouteMatches(&byCode, employee, nil))

	other := types.JSONB{"department": "Finance"}
	assert.False(t, RouteMatches(&other, employee, nil))

	noDept := testEmployee()
	noDept.Department = nil
	assert.False(t, RouteMatches(&byName, noDept, nil))
}

func TestRouteMatchesPosition(t *testing.T) {
	employee := testEmployee()

	match := types.JSONB{"position": "engineer"}
	assert.True(t, RouteMatches(&match, employee, nil))

	miss := types.JSONB{"position": "manager"}
	assert.False(t, RouteMatches(&miss, employee, nil))
}

func TestRouteMatchesMetadata(t *testing.T) {
	employee := testEmployee()

	cond := types.JSONB{"metadata": map[string]any{"severity": "sev1"}}
	assert.True(t, RouteMatches(&cond, employee, types.Metadata{"severity": "sev1", "extra": true}))
	assert.False(t, RouteMatches(&cond, employee, types.Metadata{"severity": "sev2"}))
	assert.False(t, RouteMatches(&cond, employee, types.Metadata{}))

	// Numeric values survive a JSON round trip as float64; compare by rendering.
	numeric := types.JSONB{"metadata": map[string]any{"level": float64(3)}}
	assert.True(t, RouteMatches(&numeric, employee, types.Metadata{"level": 3}))
}

func TestRouteMatchesCombined(t *testing.T) {
	employee := testEmployee()

	cond := types.JSONB{"department": "ENG", "position": "engineer"}
	assert.True(t, RouteMatches(&cond, employee, nil))

	cond["position"] = "director"
	assert.False(t, RouteMatches(&cond, employee, nil))
}
