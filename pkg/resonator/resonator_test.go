package resonator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ringstack/pkg/errors"
)

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"reference", Spec{50, 4, 6, Top}, false},
		{"smallest sampled", Spec{7, 2, 3, Left}, false},
		{"gap equals frame", Spec{50, 4, 4, Top}, true},
		{"gap narrower than frame", Spec{50, 4, 3, Top}, true},
		{"gap at half side", Spec{50, 4, 25, Bottom}, true},
		{"gap just under half", Spec{51, 4, 25, Bottom}, false},
		{"frame fills square", Spec{8, 4, 5, Right}, true},
		{"gap wider than side", Spec{50, 4, 60, Top}, true},
		{"zero size", Spec{0, 1, 2, Top}, true},
		{"negative frame", Spec{50, -1, 6, Top}, true},
		{"unknown side", Spec{50, 4, 6, Side(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeDegenerateGeometry), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckGeometryIsWeakerThanValidate(t *testing.T) {
	// Gap narrower than the frame still has a drawable contour.
	spec := Spec{50, 4, 3, Top}
	assert.NoError(t, spec.CheckGeometry())
	assert.Error(t, spec.Validate())

	assert.Error(t, Spec{50, 4, 50, Top}.CheckGeometry())
	assert.Error(t, Spec{50, 25, 30, Top}.CheckGeometry())
}

func TestParseSide(t *testing.T) {
	for _, side := range Sides {
		got, err := ParseSide(side.String())
		require.NoError(t, err)
		assert.Equal(t, side, got)
	}

	got, err := ParseSide("  TOP ")
	require.NoError(t, err)
	assert.Equal(t, Top, got)

	_, err = ParseSide("north")
	assert.Error(t, err)
	assert.Equal(t, "side(7)", Side(7).String())
}

func TestSpecJSON(t *testing.T) {
	data, err := json.Marshal(Spec{50, 4, 6, Top})
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":50,"frame_width":4,"gap_size":6,"gap_side":"top"}`, string(data))

	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`{"size":40,"frame_width":3,"gap_size":5,"gap_side":"Right"}`), &spec))
	assert.Equal(t, Spec{40, 3, 5, Right}, spec)

	assert.Error(t, json.Unmarshal([]byte(`{"gap_side":"middle"}`), &spec))
	_, err = json.Marshal(Spec{Side: Side(-1)})
	assert.Error(t, err)
}

func TestStackValidate(t *testing.T) {
	good := []Spec{{100, 5, 8, Top}, {85, 4, 6, Left}, {70, 3, 5, Right}}
	s, err := ValidStack(good...)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 100, s.MaxSize())

	_, err = ValidStack(Spec{50, 4, 6, Top}, Spec{50, 3, 5, Top})
	assert.True(t, errors.Is(err, errors.ErrCodeDegenerateGeometry))

	_, err = ValidStack(Spec{50, 4, 6, Top}, Spec{60, 3, 5, Top})
	assert.Error(t, err)

	_, err = ValidStack(Spec{50, 4, 60, Top})
	assert.True(t, errors.Is(err, errors.ErrCodeDegenerateGeometry))

	empty, err := ValidStack()
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
	assert.Zero(t, empty.MaxSize())
}

func TestStackIsImmutable(t *testing.T) {
	specs := []Spec{{50, 4, 6, Top}, {30, 2, 3, Left}}
	s := NewStack(specs...)

	specs[0].Size = 999
	assert.Equal(t, 50, s.At(0).Size)

	out := s.Specs()
	out[1].Side = Right
	assert.Equal(t, Left, s.At(1).Side)

	rev := s.Reversed()
	assert.Equal(t, 30, rev.At(0).Size)
	assert.Equal(t, 50, s.At(0).Size)
}

func TestStackAll(t *testing.T) {
	s := NewStack(Spec{50, 4, 6, Top}, Spec{30, 2, 3, Left}, Spec{15, 2, 3, Right})

	var sizes []int
	for i, spec := range s.All() {
		if i == 2 {
			break
		}
		sizes = append(sizes, spec.Size)
	}
	assert.Equal(t, []int{50, 30}, sizes)
}

func TestStackOverlapping(t *testing.T) {
	// 100 with a 9-unit frame reaches in to 82; an 85 resonator overlaps it.
	s := NewStack(Spec{100, 9, 12, Top}, Spec{85, 4, 6, Top}, Spec{60, 2, 3, Top})
	assert.Equal(t, []int{0}, s.Overlapping())

	assert.Empty(t, NewStack(Spec{100, 5, 8, Top}, Spec{90, 4, 6, Top}).Overlapping())
}

func TestStackJSON(t *testing.T) {
	s := NewStack(Spec{50, 4, 6, Top}, Spec{30, 2, 3, Bottom})
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Stack
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Specs(), back.Specs())

	data, err = json.Marshal(Stack{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
